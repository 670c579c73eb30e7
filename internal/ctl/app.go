// Package ctl implements the contactctl command tree. It gives operators
// read access to the blocked submission table and a way to exercise a
// running endpoint with test submissions.
package ctl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/urfave/cli/v3"

	"github.com/fredjean/fredjean-net-contact/internal/awsx"
	"github.com/fredjean/fredjean-net-contact/internal/config"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

// deps carries the shared state every command builder needs.
type deps struct {
	cfg    *config.Config
	logger logging.Logger
}

// store builds a table-backed Store on first use. Commands that never
// touch DynamoDB (send) skip the AWS config load entirely.
func (d deps) store(ctx context.Context) (*Store, error) {
	awsCfg, err := awsx.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}
	return NewStore(dynamodb.NewFromConfig(awsCfg), d.cfg.BlockedTable), nil
}

// InitApp assembles the contactctl command with all subcommands attached.
func InitApp(logger logging.Logger) (*cli.Command, error) {
	d := deps{
		cfg:    config.LoadConfig(),
		logger: logger.With("module", "contactctl"),
	}

	app := &cli.Command{
		Name:  "contactctl",
		Usage: "inspect blocked contact form submissions and send test ones",
	}

	app.Commands = append(app.Commands,
		listCommandBuilder(d),
		showCommandBuilder(d),
		sendCommandBuilder(d),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
