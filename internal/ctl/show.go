package ctl

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func showCommandBuilder(d deps) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show one blocked submission in full",
		UsageText: "contactctl show <submission-id>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			id := cmd.Args().First()
			if id == "" {
				return fmt.Errorf("missing submission id, see: %s", cmd.UsageText)
			}

			store, err := d.store(ctx)
			if err != nil {
				return err
			}

			item, err := store.Get(ctx, id)
			if err != nil {
				return err
			}
			return writeJSON(cmd.Writer, item)
		},
	}
}
