package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/config"
	"github.com/fredjean/fredjean-net-contact/internal/contact"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
	"github.com/fredjean/fredjean-net-contact/internal/notify"
	"github.com/fredjean/fredjean-net-contact/internal/recorder"
)

// Classifier labels a validated submission, falling open instead of
// returning an error.
type Classifier interface {
	Classify(ctx context.Context, sub *contact.Submission) *classify.Result
}

// Recorder persists a blocked submission. Implementations swallow their
// own failures and return an empty id instead.
type Recorder interface {
	Record(ctx context.Context, sub *contact.Submission, result *classify.Result, ip string) string
}

// Notifier delivers an accepted submission and returns the provider
// message id.
type Notifier interface {
	Send(ctx context.Context, sub *contact.Submission, result *classify.Result) (string, error)
}

var (
	_ Classifier = (*classify.Classifier)(nil)
	_ Recorder   = (*recorder.DynamoRecorder)(nil)
	_ Notifier   = (*notify.Notifier)(nil)
)

// Handler owns one request's walk through the pipeline. Instances are
// stateless and safe for concurrent invocations.
type Handler struct {
	cfg        *config.Config
	validator  *contact.Validator
	classifier Classifier
	recorder   Recorder
	notifier   Notifier
	logger     logging.Logger
}

func New(cfg *config.Config, classifier Classifier, rec Recorder, notifier Notifier, logger logging.Logger) *Handler {
	return &Handler{
		cfg: cfg,
		validator: contact.NewValidator(contact.Limits{
			Email:   cfg.MaxEmailLength,
			Name:    cfg.MaxNameLength,
			Phone:   cfg.MaxPhoneLength,
			Message: cfg.MaxMessageLength,
		}),
		classifier: classifier,
		recorder:   rec,
		notifier:   notifier,
		logger:     logger.With("module", "handler"),
	}
}

// Handle processes one API Gateway event. It never returns an error:
// every outcome is folded into the response contract.
func (h *Handler) Handle(ctx context.Context, req *Request) events.APIGatewayProxyResponse {
	if strings.EqualFold(req.Method(), http.MethodOptions) {
		return h.respond(http.StatusOK, map[string]any{"message": "OK"})
	}

	fields, err := h.decodeFields(ctx, req)
	if err != nil {
		h.logger.Warn(ctx, "request decoding failed", "error", err.Error())
		return h.respond(http.StatusBadRequest, map[string]any{"error": "Invalid request format"})
	}

	sub, verr := h.validator.Validate(fields)
	if verr != nil {
		h.logger.Info(ctx, "validation failed", "field", verr.Field)
		return h.respond(http.StatusBadRequest, map[string]any{
			"error": verr.Message,
			"field": verr.Field,
		})
	}

	var result *classify.Result
	if h.cfg.SpamCheckEnabled {
		result = h.classifier.Classify(ctx, sub)
	}

	if classify.ShouldBlock(result, h.cfg.SpamThreshold) {
		id := h.recorder.Record(ctx, sub, result, req.SourceIP())
		h.logger.Info(ctx, "submission blocked",
			"classification", result.Classification,
			"confidence", result.Confidence,
			"submission_id", id)
		return h.respondSuccess()
	}

	if _, err := h.notifier.Send(ctx, sub, result); err != nil {
		h.logger.Error(ctx, "notification failed", "error", err.Error())
		return h.respond(http.StatusInternalServerError, map[string]any{"error": sendFailureMessage})
	}

	h.logger.Info(ctx, "submission forwarded", "email", sub.Email)
	return h.respondSuccess()
}
