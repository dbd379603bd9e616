package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cutline/internal/timeline"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

var trackTitle = cases.Title(language.English)

func renderEdit(w io.Writer, edit timeline.Edit) {
	colorize := shouldColorize(w)

	for _, line := range renderSectionHeader(editSummary(edit), colorize) {
		fmt.Fprintln(w, line)
	}

	video := edit.VideoTrack()
	if video == nil || len(video.Clips) == 0 {
		fmt.Fprintln(w, "Timeline is empty")
		return
	}

	fmt.Fprintln(w, renderTable(
		[]string{"#", "Source", "Start", "Length", "Trim", "In", "Out"},
		clipRows(video),
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
	))

	for _, kind := range []timeline.TrackKind{timeline.TrackVoiceover, timeline.TrackMusic} {
		track := edit.AudioTrack(kind)
		if track == nil || len(track.Clips) == 0 {
			continue
		}
		clip := track.Clips[0]
		fmt.Fprintf(w, "%s: %s (start %s, length %s, trim %s, volume %s)\n",
			trackTitle.String(string(kind)),
			clip.Asset.Src,
			formatSeconds(clip.Start),
			formatSeconds(clip.Length),
			formatSeconds(clip.Trim),
			strconv.FormatFloat(clip.Asset.Volume, 'f', 2, 64),
		)
	}
}

func editSummary(edit timeline.Edit) string {
	clips := 0
	if track := edit.VideoTrack(); track != nil {
		clips = len(track.Clips)
	}
	return fmt.Sprintf("Timeline: %d clips, %s", clips, formatSeconds(edit.Duration()))
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
