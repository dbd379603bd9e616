package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// marshalDocument encodes v as two-space-indented JSON with a trailing
// newline, the shape both stdout output and `build --output` files use.
func marshalDocument(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// writeJSON prints v as an indented JSON document on the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	data, err := marshalDocument(v)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
