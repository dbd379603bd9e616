package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cutline/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon and playback status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return fmt.Errorf("fetch status: %w", err)
				}
				if asJSON {
					return writeJSON(cmd, resp.Status)
				}

				st := resp.Status
				rows := [][]string{
					{"Running", yesNo(st.Running)},
					{"PID", strconv.Itoa(st.PID)},
					{"Project", st.Session.ProjectID},
					{"State", string(st.Session.State)},
					{"Position", formatSeconds(st.Session.Position)},
					{"Duration", formatSeconds(st.Session.Duration)},
					{"Active clip", strconv.Itoa(st.Session.ActiveClip)},
					{"Muted", yesNo(st.Session.Muted)},
				}
				if st.Session.Fault != "" {
					rows = append(rows, []string{"Fault", st.Session.Fault})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderFieldTable(rows))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit status as JSON")
	return cmd
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start playback from the current position",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Play()
				if err != nil {
					return fmt.Errorf("play: %w", err)
				}
				if resp.Message != "" {
					return fmt.Errorf("play: %s", resp.Message)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Playing from %s\n", formatSeconds(resp.Position))
				return nil
			})
		},
	}
}

func newPauseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause playback",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Pause()
				if err != nil {
					return fmt.Errorf("pause: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Paused at %s\n", formatSeconds(resp.Position))
				return nil
			})
		},
	}
}

func newSeekCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seek <seconds>",
		Short: "Move the playhead to a timeline position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			position, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("parse position %q: %w", args[0], err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Seek(position)
				if err != nil {
					return fmt.Errorf("seek: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Playhead at %s (%s)\n", formatSeconds(resp.Position), resp.State)
				return nil
			})
		},
	}
}

func newReorderCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <from> <to>",
		Short: "Move a clip to a new timeline slot",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("parse from index %q: %w", args[0], err)
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse to index %q: %w", args[1], err)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Reorder(from, to)
				if err != nil {
					return fmt.Errorf("reorder: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Clip order: %v\n", resp.Order)
				return nil
			})
		},
	}
}

func formatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64) + "s"
}
