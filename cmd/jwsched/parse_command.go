package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"jwsched/internal/schedule"
)

func newParseCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a publication file and print its schedules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := ctx.newParser()
			if err != nil {
				return err
			}

			result, err := p.ParseFile(args[0])
			if err != nil {
				return err
			}

			if jsonFlag || !isatty.IsTerminal(os.Stdout.Fd()) {
				return writeJSON(cmd, result)
			}
			return renderResult(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Emit the full result as JSON")

	return cmd
}

func renderResult(cmd *cobra.Command, result *schedule.Result) error {
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %04d-%02d (schema %s)\n",
		result.PublicationType, result.Language, result.Year, result.Month, result.SchemaVersion)

	switch result.PublicationType {
	case schedule.PublicationMWB:
		rows := make([][]string, 0, len(result.MWBSchedules))
		for _, w := range result.MWBSchedules {
			rows = append(rows, []string{
				deref(w.WeekDate),
				deref(w.WeeklyBibleReading),
				songText(w.SongFirst),
				songText(w.SongMiddle),
				songText(w.SongConclude),
				fmt.Sprintf("%d", w.AYFCount),
				fmt.Sprintf("%d", w.LCCount),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Week", "Bible Reading", "Song 1", "Song 2", "Song 3", "AYF", "LC"}, rows))
	case schedule.PublicationWatchtower:
		rows := make([][]string, 0, len(result.WSchedules))
		for _, s := range result.WSchedules {
			rows = append(rows, []string{
				deref(s.StudyDate),
				deref(s.StudyTitle),
				songInt(s.OpeningSong),
				songInt(s.ConcludingSong),
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderTable(
			[]string{"Study Date", "Title", "Opening Song", "Concluding Song"}, rows))
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func songText(s *schedule.SongRef) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func songInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
