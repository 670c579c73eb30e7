package ctl

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/fredjean/fredjean-net-contact/internal/recorder"
)

func listCommandBuilder(d deps) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "list blocked submissions, newest first",
		UsageText: "contactctl list [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "maximum submissions returned",
				Value:   50,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "emit JSON instead of a table",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			store, err := d.store(ctx)
			if err != nil {
				return err
			}

			items, err := store.List(ctx, cmd.Int("limit"))
			if err != nil {
				return err
			}

			if cmd.Bool("json") {
				return writeJSON(cmd.Writer, items)
			}
			if len(items) == 0 {
				_, err := fmt.Fprintln(cmd.Writer, "no blocked submissions")
				return err
			}
			_, err = fmt.Fprintln(cmd.Writer, renderTable(items))
			return err
		},
	}
}

// renderTable formats submissions as a table for terminal output.
func renderTable(items []recorder.BlockedSubmission) string {
	headerStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Left)

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			item.SubmissionID,
			blockedAgo(item.Timestamp),
			item.Email,
			item.Classification,
			fmt.Sprintf("%.1f%%", item.Confidence*100),
			item.IPAddress,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("ID", "BLOCKED", "EMAIL", "CLASSIFICATION", "CONFIDENCE", "SOURCE IP").
		Rows(rows...)

	return t.Render()
}

// blockedAgo renders an epoch-millisecond timestamp as a relative time.
func blockedAgo(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return humanize.Time(time.UnixMilli(ms))
}
