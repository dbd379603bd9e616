package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cutline/internal/ipc"
)

func newDaemonCommand(ctx *commandContext) *cobra.Command {
	daemonCmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run and control the cutline daemon",
	}

	var projectPath string
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the daemon in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				return fmt.Errorf("--project is required")
			}
			return runDaemonProcess(cmd.Context(), ctx, projectPath)
		},
	}
	runCmd.Flags().StringVarP(&projectPath, "project", "p", "", "Project file to host")

	stopCmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Stop()
				if err != nil {
					return fmt.Errorf("stop daemon: %w", err)
				}
				if resp.Stopped {
					fmt.Fprintln(cmd.OutOrStdout(), "Daemon stopping")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Stop request sent")
				}
				return nil
			})
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon process status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return fmt.Errorf("fetch status: %w", err)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Running:  %s\n", yesNo(resp.Status.Running))
				fmt.Fprintf(out, "PID:      %d\n", resp.Status.PID)
				fmt.Fprintf(out, "Lock:     %s\n", resp.Status.LockPath)
				fmt.Fprintf(out, "Settings: %s\n", resp.Status.SettingsDBPath)
				return nil
			})
		},
	}

	daemonCmd.AddCommand(runCmd)
	daemonCmd.AddCommand(stopCmd)
	daemonCmd.AddCommand(statusCmd)

	return daemonCmd
}
