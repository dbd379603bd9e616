package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var projectPath string
	var outputPath string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the edit document and emit it as JSON",
		Long: "Build the edit document for a project from its file and any stored " +
			"settings, without a running daemon. The output is the same document the " +
			"render service consumes.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				return fmt.Errorf("--project is required")
			}
			edit, err := buildLocalEdit(ctx, projectPath)
			if err != nil {
				return err
			}
			if outputPath == "" {
				return writeJSON(cmd, edit)
			}

			data, err := marshalDocument(edit)
			if err != nil {
				return fmt.Errorf("encode edit: %w", err)
			}
			if err := os.WriteFile(outputPath, data, 0o644); err != nil {
				return fmt.Errorf("write edit: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote edit document to %s\n", outputPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "Project file to build from")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write the document to a file instead of stdout")
	return cmd
}
