package ipc

import (
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

// Client provides RPC access to the daemon.
type Client struct {
	conn   net.Conn
	client *rpc.Client
}

// Dial connects to the IPC server at the given socket path.
func Dial(path string) (*Client, error) {
	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return nil, err
	}
	rpcClient := rpc.NewClientWithCodec(jsonrpc.NewClientCodec(conn))
	return &Client{conn: conn, client: rpcClient}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	if c.client != nil {
		_ = c.client.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Status retrieves the daemon status.
func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.client.Call("Cutline.Status", StatusRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Edit retrieves the current built document.
func (c *Client) Edit() (*EditResponse, error) {
	var resp EditResponse
	if err := c.client.Call("Cutline.Edit", EditRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Play starts playback.
func (c *Client) Play() (*PlayResponse, error) {
	var resp PlayResponse
	if err := c.client.Call("Cutline.Play", PlayRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Pause halts playback in place.
func (c *Client) Pause() (*PauseResponse, error) {
	var resp PauseResponse
	if err := c.client.Call("Cutline.Pause", PauseRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Seek jumps the playhead.
func (c *Client) Seek(position float64) (*SeekResponse, error) {
	var resp SeekResponse
	if err := c.client.Call("Cutline.Seek", SeekRequest{Position: position}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Reorder moves the clip at index from in front of index to.
func (c *Client) Reorder(from, to int) (*ReorderResponse, error) {
	var resp ReorderResponse
	if err := c.client.Call("Cutline.Reorder", ReorderRequest{From: from, To: to}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Render submits the current edit to the render service.
func (c *Client) Render() (*RenderResponse, error) {
	var resp RenderResponse
	if err := c.client.Call("Cutline.Render", RenderRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Stop requests daemon shutdown.
func (c *Client) Stop() (*StopResponse, error) {
	var resp StopResponse
	if err := c.client.Call("Cutline.Stop", StopRequest{}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
