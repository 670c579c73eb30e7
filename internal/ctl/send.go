package ctl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/urfave/cli/v3"
)

func sendCommandBuilder(d deps) *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "post a test submission to a running endpoint",
		UsageText: "contactctl send [options]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "URL accepting submissions",
				Value: "http://localhost:8080",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "sender name",
				Value: "Test Sender",
			},
			&cli.StringFlag{
				Name:  "email",
				Usage: "sender email",
				Value: "test@example.com",
			},
			&cli.StringFlag{
				Name:  "phone",
				Usage: "sender phone",
				Value: "+1 (555) 000-0000",
			},
			&cli.StringFlag{
				Name:  "message",
				Usage: "message body",
				Value: "This is a test submission from contactctl.",
			},
			&cli.BoolFlag{
				Name:  "form",
				Usage: "send form-urlencoded instead of JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			fields := map[string]string{
				"name":    cmd.String("name"),
				"email":   cmd.String("email"),
				"phone":   cmd.String("phone"),
				"message": cmd.String("message"),
			}

			endpoint := cmd.String("endpoint")
			status, body, err := postSubmission(ctx, endpoint, fields, cmd.Bool("form"))
			if err != nil {
				return err
			}
			d.logger.Info(ctx, "test submission posted", "endpoint", endpoint, "status", status)

			_, err = fmt.Fprintf(cmd.Writer, "%s\n%s\n", status, body)
			return err
		},
	}
}

// postSubmission encodes the fields as JSON or form data and posts them to
// the endpoint. The response is returned as-is so the caller can inspect
// what a browser would have seen.
func postSubmission(ctx context.Context, endpoint string, fields map[string]string, asForm bool) (string, string, error) {
	var payload []byte
	contentType := "application/json"

	if asForm {
		values := url.Values{}
		for k, v := range fields {
			values.Set(k, v)
		}
		payload = []byte(values.Encode())
		contentType = "application/x-www-form-urlencoded"
	} else {
		var err error
		payload, err = json.Marshal(fields)
		if err != nil {
			return "", "", fmt.Errorf("encoding submission: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", contentType)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("reading response: %w", err)
	}
	return resp.Status, string(body), nil
}
