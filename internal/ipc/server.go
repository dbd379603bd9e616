package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"os"
	"sync"

	"log/slog"

	"cutline/internal/daemon"
	"cutline/internal/logging"
)

// Server exposes daemon control via JSON-RPC over a Unix domain socket.
type Server struct {
	path      string
	logger    *slog.Logger
	listener  net.Listener
	rpcServer *rpc.Server

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewServer configures the IPC server at the given socket path. onStop, when
// non-nil, runs after a Stop request so the process hosting the daemon can
// shut itself down.
func NewServer(ctx context.Context, path string, d *daemon.Daemon, onStop func(), logger *slog.Logger) (*Server, error) {
	if d == nil {
		return nil, errors.New("ipc server requires daemon")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	if err := os.RemoveAll(path); err != nil {
		return nil, fmt.Errorf("remove existing socket: %w", err)
	}
	listener, err := net.Listen("unix", path)
	if err != nil {
		return nil, fmt.Errorf("listen on socket: %w", err)
	}

	rpcServer := rpc.NewServer()
	svc := &service{daemon: d, onStop: onStop, logger: logger.With(logging.String(logging.FieldComponent, "ipc"))}
	if err := rpcServer.RegisterName("Cutline", svc); err != nil {
		listener.Close()
		return nil, fmt.Errorf("register rpc service: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	return &Server{
		path:      path,
		logger:    logger,
		listener:  listener,
		rpcServer: rpcServer,
		ctx:       serverCtx,
		cancel:    cancel,
	}, nil
}

// Serve starts accepting RPC connections until Close.
func (s *Server) Serve() {
	s.logger.Debug("ipc server listening", logging.String("socket", s.path))
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			conn, err := s.listener.Accept()
			if err != nil {
				select {
				case <-s.ctx.Done():
					return
				default:
				}
				s.logger.Warn("accept failed", logging.Error(err))
				continue
			}
			s.wg.Add(1)
			go func(c net.Conn) {
				defer s.wg.Done()
				s.rpcServer.ServeCodec(jsonrpc.NewServerCodec(c))
			}(conn)
		}
	}()
}

// Close stops the server and removes the socket file.
func (s *Server) Close() {
	s.cancel()
	if s.listener != nil {
		_ = s.listener.Close()
	}
	s.wg.Wait()
	if err := os.RemoveAll(s.path); err != nil {
		s.logger.Warn("failed to remove socket",
			logging.String("socket", s.path),
			logging.Error(err))
	}
}

type service struct {
	daemon *daemon.Daemon
	onStop func()
	logger *slog.Logger
}

func (s *service) Status(_ StatusRequest, resp *StatusResponse) error {
	resp.Status = s.daemon.Status()
	return nil
}

func (s *service) Edit(_ EditRequest, resp *EditResponse) error {
	resp.Edit = s.daemon.Edit()
	return nil
}

func (s *service) Play(_ PlayRequest, resp *PlayResponse) error {
	sess := s.daemon.Session()
	if err := sess.Play(); err != nil {
		st := sess.Status()
		resp.State = string(st.State)
		resp.Position = st.Position
		resp.Message = err.Error()
		return nil
	}
	st := sess.Status()
	resp.State = string(st.State)
	resp.Position = st.Position
	return nil
}

func (s *service) Pause(_ PauseRequest, resp *PauseResponse) error {
	sess := s.daemon.Session()
	sess.Pause()
	st := sess.Status()
	resp.State = string(st.State)
	resp.Position = st.Position
	return nil
}

func (s *service) Seek(req SeekRequest, resp *SeekResponse) error {
	sess := s.daemon.Session()
	if err := sess.SeekTo(req.Position); err != nil {
		return err
	}
	st := sess.Status()
	resp.State = string(st.State)
	resp.Position = st.Position
	return nil
}

func (s *service) Reorder(req ReorderRequest, resp *ReorderResponse) error {
	sess := s.daemon.Session()
	if err := sess.ReorderClip(req.From, req.To); err != nil {
		return err
	}
	track := sess.Edit().VideoTrack()
	if track != nil {
		resp.Order = make([]int64, 0, len(track.Clips))
		for _, clip := range track.Clips {
			resp.Order = append(resp.Order, clip.SceneID)
		}
	}
	s.logger.Info("clips reordered",
		logging.Int("from", req.From),
		logging.Int("to", req.To))
	return nil
}

func (s *service) Render(_ RenderRequest, resp *RenderResponse) error {
	job, err := s.daemon.SubmitRender(context.Background())
	if err != nil {
		return err
	}
	resp.Job = job
	return nil
}

func (s *service) Stop(_ StopRequest, resp *StopResponse) error {
	s.logger.Info("daemon stop requested")
	s.daemon.Stop()
	resp.Stopped = true
	if s.onStop != nil {
		go s.onStop()
	}
	return nil
}
