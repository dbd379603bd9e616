package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cutline/internal/ipc"
	"cutline/internal/render"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Submit and track render jobs",
	}

	renderCmd.AddCommand(newRenderSubmitCommand(ctx))
	renderCmd.AddCommand(newRenderStatusCommand(ctx))
	renderCmd.AddCommand(newRenderAwaitCommand(ctx))

	return renderCmd
}

func newRenderSubmitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Submit the daemon's current edit to the render service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Render()
				if err != nil {
					return fmt.Errorf("submit render: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Render job %s queued\n", resp.Job.ID)
				return nil
			})
		},
	}
}

func newRenderStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Short: "Show the status of a render job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := renderClient(ctx)
			if err != nil {
				return err
			}
			job, err := client.Status(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("fetch render status: %w", err)
			}
			printJob(cmd, job)
			return nil
		},
	}
}

func newRenderAwaitCommand(ctx *commandContext) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "await <job-id>",
		Short: "Poll a render job until it completes or fails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := renderClient(ctx)
			if err != nil {
				return err
			}
			job, err := client.Await(cmd.Context(), args[0], interval)
			if err != nil {
				return fmt.Errorf("await render: %w", err)
			}
			printJob(cmd, job)
			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Polling interval")
	return cmd
}

func renderClient(ctx *commandContext) (*render.Client, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return render.NewClient(
		cfg.Render.BaseURL,
		cfg.Render.APIKey,
		render.WithTimeout(time.Duration(cfg.Render.TimeoutSeconds)*time.Second),
	), nil
}

func printJob(cmd *cobra.Command, job render.Job) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job:      %s\n", job.ID)
	fmt.Fprintf(out, "Status:   %s\n", job.Status)
	fmt.Fprintf(out, "Progress: %.0f%%\n", job.Progress*100)
	if job.OutputURL != "" {
		fmt.Fprintf(out, "Output:   %s\n", job.OutputURL)
	}
	if job.Error != "" {
		fmt.Fprintf(out, "Error:    %s\n", job.Error)
	}
}
