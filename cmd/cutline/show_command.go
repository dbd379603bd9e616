package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"cutline/internal/ipc"
	"cutline/internal/project"
	"cutline/internal/session"
	"cutline/internal/settings"
	"cutline/internal/timeline"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var projectPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the composed timeline",
		Long: "Display the composed timeline. With --project the edit is built locally " +
			"from the project file and stored settings; otherwise it is fetched from " +
			"the running daemon.",
		RunE: func(cmd *cobra.Command, args []string) error {
			edit, err := resolveEdit(ctx, projectPath)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd, edit)
			}
			renderEdit(cmd.OutOrStdout(), edit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectPath, "project", "p", "", "Build locally from a project file instead of asking the daemon")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the edit document as JSON")
	return cmd
}

func resolveEdit(ctx *commandContext, projectPath string) (timeline.Edit, error) {
	if projectPath == "" {
		var edit timeline.Edit
		err := ctx.withClient(func(client *ipc.Client) error {
			resp, err := client.Edit()
			if err != nil {
				return fmt.Errorf("fetch edit: %w", err)
			}
			edit = resp.Edit
			return nil
		})
		return edit, err
	}
	return buildLocalEdit(ctx, projectPath)
}

func buildLocalEdit(ctx *commandContext, projectPath string) (timeline.Edit, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return timeline.Edit{}, err
	}
	proj, err := project.Load(projectPath)
	if err != nil {
		return timeline.Edit{}, err
	}
	store, err := settings.Open(cfg)
	if err != nil {
		return timeline.Edit{}, fmt.Errorf("open settings store: %w", err)
	}
	defer store.Close()
	snap, _, err := store.Load(context.Background(), proj.ID)
	if err != nil {
		return timeline.Edit{}, fmt.Errorf("load settings: %w", err)
	}
	return session.Compose(cfg, proj, snap)
}

func clipRows(track *timeline.Track) [][]string {
	if track == nil {
		return nil
	}
	rows := make([][]string, 0, len(track.Clips))
	for i, clip := range track.Clips {
		in, out := "-", "-"
		if clip.Transition != nil {
			if clip.Transition.In != "" {
				in = string(clip.Transition.In)
			}
			if clip.Transition.Out != "" {
				out = string(clip.Transition.Out)
			}
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			clip.Asset.Src,
			formatSeconds(clip.Start),
			formatSeconds(clip.Length),
			formatSeconds(clip.Trim),
			in,
			out,
		})
	}
	return rows
}
