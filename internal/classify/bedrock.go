package classify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/tidwall/gjson"

	"github.com/fredjean/fredjean-net-contact/internal/contact"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

// ErrEmptyResponse is returned when the model reply carries no text block.
var ErrEmptyResponse = errors.New("model response contains no text")

// BedrockClient is the subset of the Bedrock runtime API used by the
// classifier.
type BedrockClient interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

var _ BedrockClient = (*bedrockruntime.Client)(nil)

// Classifier labels submissions by invoking an Anthropic model through
// Bedrock. Any failure along the way degrades to a fail-open result
// instead of an error.
type Classifier struct {
	client  BedrockClient
	modelID string
	logger  logging.Logger
}

func NewClassifier(client BedrockClient, modelID string, logger logging.Logger) *Classifier {
	return &Classifier{client: client, modelID: modelID, logger: logger}
}

type modelRequest struct {
	AnthropicVersion string         `json:"anthropic_version"`
	MaxTokens        int            `json:"max_tokens"`
	Messages         []modelMessage `json:"messages"`
}

type modelMessage struct {
	Role    string         `json:"role"`
	Content []modelContent `json:"content"`
}

type modelContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Classify labels one submission. It never returns an error: when the
// model cannot be reached or its output cannot be parsed, the result
// falls open to Legitimate with zero confidence and FailedOpen set.
func (c *Classifier) Classify(ctx context.Context, sub *contact.Submission) *Result {
	result, err := c.invoke(ctx, sub)
	if err != nil {
		c.logger.Error(ctx, "classification failed open", "error", err.Error())
		return failOpen(err)
	}
	c.logger.Info(ctx, "submission classified",
		"classification", result.Classification, "confidence", result.Confidence)
	return result
}

func (c *Classifier) invoke(ctx context.Context, sub *contact.Submission) (*Result, error) {
	body, err := json.Marshal(modelRequest{
		AnthropicVersion: "bedrock-2023-05-31",
		MaxTokens:        256,
		Messages: []modelMessage{{
			Role:    "user",
			Content: []modelContent{{Type: "text", Text: buildPrompt(sub)}},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal model request: %w", err)
	}

	out, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke model: %w", err)
	}

	text := gjson.GetBytes(out.Body, "content.0.text").String()
	if text == "" {
		return nil, ErrEmptyResponse
	}
	return parseResult(text)
}

// parseResult extracts the JSON verdict from the model's textual output,
// tolerating a surrounding code fence.
func parseResult(text string) (*Result, error) {
	cleaned := stripFences(text)

	var r Result
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("parse model output: %w", err)
	}

	r.Classification = strings.ToUpper(strings.TrimSpace(r.Classification))
	switch r.Classification {
	case Legitimate, Spam, Sales, Gibberish:
	default:
		return nil, fmt.Errorf("unexpected classification %q", r.Classification)
	}

	if r.Confidence < 0 {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	return &r, nil
}

func stripFences(text string) string {
	t := strings.TrimSpace(text)
	if strings.HasPrefix(t, "```") {
		t = strings.TrimPrefix(t, "```json")
		t = strings.TrimPrefix(t, "```")
		t = strings.TrimSuffix(strings.TrimSpace(t), "```")
	}
	return strings.TrimSpace(t)
}

func failOpen(err error) *Result {
	return &Result{
		Classification: Legitimate,
		Confidence:     0,
		Reason:         "Classification error: " + err.Error(),
		FailedOpen:     true,
	}
}
