package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/config"
	"github.com/fredjean/fredjean-net-contact/internal/contact"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

// ---- test logger ----

type nopLogger struct{}

func (n nopLogger) Info(context.Context, string, ...any)  {}
func (n nopLogger) Warn(context.Context, string, ...any)  {}
func (n nopLogger) Error(context.Context, string, ...any) {}
func (n nopLogger) With(...any) logging.Logger            { return n }

// ---- fakes ----

type fakeClassifier struct {
	result *classify.Result

	called bool
	gotSub *contact.Submission
}

func (f *fakeClassifier) Classify(ctx context.Context, sub *contact.Submission) *classify.Result {
	f.called = true
	f.gotSub = sub
	return f.result
}

type fakeRecorder struct {
	id string

	called    bool
	gotSub    *contact.Submission
	gotResult *classify.Result
	gotIP     string
}

func (f *fakeRecorder) Record(ctx context.Context, sub *contact.Submission, result *classify.Result, ip string) string {
	f.called = true
	f.gotSub = sub
	f.gotResult = result
	f.gotIP = ip
	return f.id
}

type fakeNotifier struct {
	id  string
	err error

	called    bool
	gotSub    *contact.Submission
	gotResult *classify.Result
}

func (f *fakeNotifier) Send(ctx context.Context, sub *contact.Submission, result *classify.Result) (string, error) {
	f.called = true
	f.gotSub = sub
	f.gotResult = result
	if f.err != nil {
		return "", f.err
	}
	return f.id, nil
}

// ---- helpers ----

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func newHandler(cfg *config.Config, c Classifier, r Recorder, n Notifier) *Handler {
	return New(cfg, c, r, n, nopLogger{})
}

func validPayload() map[string]any {
	return map[string]any{
		"name":    "John Doe",
		"email":   "john@example.com",
		"phone":   "555-1234",
		"message": "Hello, I would like to talk about your site.",
	}
}

func jsonRequest(t *testing.T, payload map[string]any) *Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return &Request{
		HTTPMethod: "POST",
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
		RequestContext: RequestContext{
			Identity: Identity{SourceIP: "203.0.113.7"},
		},
	}
}

func legitResult() *classify.Result {
	return &classify.Result{Classification: classify.Legitimate, Confidence: 0.98, Reason: "genuine"}
}

// ---- tests ----

func TestHandle_OptionsShortCircuits(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"legacy method field", &Request{HTTPMethod: "OPTIONS"}},
		{"nested method field", &Request{RequestContext: RequestContext{HTTP: HTTPContext{Method: "OPTIONS"}}}},
		{"lowercase", &Request{HTTPMethod: "options"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r, n := &fakeClassifier{}, &fakeRecorder{}, &fakeNotifier{}
			h := newHandler(testConfig(), c, r, n)

			resp := h.Handle(context.Background(), tc.req)

			if resp.StatusCode != 200 {
				t.Fatalf("unexpected status: %d", resp.StatusCode)
			}
			if resp.Body != `{"message":"OK"}` {
				t.Fatalf("unexpected body: %q", resp.Body)
			}
			if c.called || r.called || n.called {
				t.Fatalf("preflight must not reach the pipeline")
			}
		})
	}
}

func TestHandle_ForwardsValidJSONSubmission(t *testing.T) {
	c := &fakeClassifier{result: legitResult()}
	r := &fakeRecorder{}
	n := &fakeNotifier{id: "msg-1"}
	h := newHandler(testConfig(), c, r, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d (body %s)", resp.StatusCode, resp.Body)
	}
	if !n.called {
		t.Fatalf("notifier was not called")
	}
	if r.called {
		t.Fatalf("recorder must not run for forwarded submissions")
	}
	if n.gotSub.Name != "John Doe" || n.gotSub.Email != "john@example.com" ||
		n.gotSub.Phone != "555-1234" || n.gotSub.Message != "Hello, I would like to talk about your site." {
		t.Fatalf("submission fields altered: %+v", n.gotSub)
	}
	if n.gotResult != c.result {
		t.Fatalf("classification not handed to notifier")
	}
}

func TestHandle_DecodesFormEncodedBody(t *testing.T) {
	c := &fakeClassifier{result: legitResult()}
	n := &fakeNotifier{id: "msg-1"}
	h := newHandler(testConfig(), c, &fakeRecorder{}, n)

	values := url.Values{}
	values.Set("name", "John Doe")
	values.Set("email", "john@example.com")
	values.Set("phone", "555-1234")
	values.Set("message", "Heard about you from a friend")

	req := &Request{
		HTTPMethod: "POST",
		Headers:    map[string]string{"content-type": "application/x-www-form-urlencoded; charset=UTF-8"},
		Body:       values.Encode(),
	}

	resp := h.Handle(context.Background(), req)

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d (body %s)", resp.StatusCode, resp.Body)
	}
	if !n.called || n.gotSub.Message != "Heard about you from a friend" {
		t.Fatalf("form fields not decoded: %+v", n.gotSub)
	}
}

func TestHandle_DecodesBase64WrappedBody(t *testing.T) {
	c := &fakeClassifier{result: legitResult()}
	n := &fakeNotifier{id: "msg-1"}
	h := newHandler(testConfig(), c, &fakeRecorder{}, n)

	body, err := json.Marshal(validPayload())
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := &Request{
		HTTPMethod:      "POST",
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            base64.StdEncoding.EncodeToString(body),
		IsBase64Encoded: true,
	}

	resp := h.Handle(context.Background(), req)

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d (body %s)", resp.StatusCode, resp.Body)
	}
	if !n.called || n.gotSub.Email != "john@example.com" {
		t.Fatalf("base64 body not decoded: %+v", n.gotSub)
	}
}

func TestHandle_MalformedBodyIs400(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"bad json", &Request{HTTPMethod: "POST", Body: "{not json"}},
		{"empty body", &Request{HTTPMethod: "POST", Body: ""}},
		{"bad base64", &Request{HTTPMethod: "POST", Body: "%%%", IsBase64Encoded: true}},
		{"bad form", &Request{
			HTTPMethod: "POST",
			Headers:    map[string]string{"Content-Type": "application/x-www-form-urlencoded"},
			Body:       "a=%zz",
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, r, n := &fakeClassifier{}, &fakeRecorder{}, &fakeNotifier{}
			h := newHandler(testConfig(), c, r, n)

			resp := h.Handle(context.Background(), tc.req)

			if resp.StatusCode != 400 {
				t.Fatalf("unexpected status: %d", resp.StatusCode)
			}
			if resp.Body != `{"error":"Invalid request format"}` {
				t.Fatalf("unexpected body: %q", resp.Body)
			}
			if c.called || r.called || n.called {
				t.Fatalf("pipeline must stop at decoding")
			}
		})
	}
}

func TestHandle_ValidationFailureIs400WithField(t *testing.T) {
	c, r, n := &fakeClassifier{}, &fakeRecorder{}, &fakeNotifier{}
	h := newHandler(testConfig(), c, r, n)

	payload := validPayload()
	payload["name"] = "John123"

	resp := h.Handle(context.Background(), jsonRequest(t, payload))

	if resp.StatusCode != 400 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	var body struct {
		Error string `json:"error"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Field != "name" {
		t.Fatalf("unexpected field: %q", body.Field)
	}
	if body.Error != "name contains invalid characters" {
		t.Fatalf("unexpected error: %q", body.Error)
	}
	if c.called {
		t.Fatalf("classification must not run on invalid input")
	}
}

func TestHandle_BlocksConfidentSpam(t *testing.T) {
	c := &fakeClassifier{result: &classify.Result{Classification: classify.Spam, Confidence: 0.95, Reason: "bulk ad"}}
	r := &fakeRecorder{id: "rec-1"}
	n := &fakeNotifier{}
	h := newHandler(testConfig(), c, r, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 200 {
		t.Fatalf("blocked response must be 200, got %d", resp.StatusCode)
	}
	if resp.Body != `{"message":"Thank you for contacting us! Your message has been sent.","success":true}` {
		t.Fatalf("unexpected body: %q", resp.Body)
	}
	if !r.called {
		t.Fatalf("recorder was not called")
	}
	if n.called {
		t.Fatalf("notifier must not run for blocked submissions")
	}
	if r.gotIP != "203.0.113.7" {
		t.Fatalf("unexpected ip: %q", r.gotIP)
	}
	if r.gotResult.Classification != classify.Spam {
		t.Fatalf("classification not handed to recorder: %+v", r.gotResult)
	}
}

func TestHandle_ForwardsBelowThresholdAndSales(t *testing.T) {
	tests := []struct {
		name   string
		result *classify.Result
	}{
		{"low-confidence spam", &classify.Result{Classification: classify.Spam, Confidence: 0.5, Reason: "maybe"}},
		{"confident sales", &classify.Result{Classification: classify.Sales, Confidence: 0.99, Reason: "pitch"}},
		{"gibberish below threshold", &classify.Result{Classification: classify.Gibberish, Confidence: 0.7, Reason: "odd"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &fakeClassifier{result: tc.result}
			r := &fakeRecorder{}
			n := &fakeNotifier{id: "msg-1"}
			h := newHandler(testConfig(), c, r, n)

			resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

			if resp.StatusCode != 200 {
				t.Fatalf("unexpected status: %d", resp.StatusCode)
			}
			if r.called {
				t.Fatalf("recorder must not run for forwarded submissions")
			}
			if !n.called {
				t.Fatalf("notifier was not called")
			}
		})
	}
}

func TestHandle_BlockedAndSentResponsesAreIdentical(t *testing.T) {
	blockedClassifier := &fakeClassifier{result: &classify.Result{Classification: classify.Spam, Confidence: 0.95, Reason: "ad"}}
	blockedHandler := newHandler(testConfig(), blockedClassifier, &fakeRecorder{id: "rec-1"}, &fakeNotifier{})
	blocked := blockedHandler.Handle(context.Background(), jsonRequest(t, validPayload()))

	sentHandler := newHandler(testConfig(), &fakeClassifier{result: legitResult()}, &fakeRecorder{}, &fakeNotifier{id: "msg-1"})
	sent := sentHandler.Handle(context.Background(), jsonRequest(t, validPayload()))

	if diff := cmp.Diff(sent, blocked); diff != "" {
		t.Fatalf("blocked and sent responses differ (-sent +blocked):\n%s", diff)
	}
}

func TestHandle_RecorderFailureStillReturnsSuccess(t *testing.T) {
	c := &fakeClassifier{result: &classify.Result{Classification: classify.Gibberish, Confidence: 1, Reason: "mash"}}
	r := &fakeRecorder{id: ""} // empty id signals a swallowed store failure
	n := &fakeNotifier{}
	h := newHandler(testConfig(), c, r, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if resp.Body != `{"message":"Thank you for contacting us! Your message has been sent.","success":true}` {
		t.Fatalf("unexpected body: %q", resp.Body)
	}
	if n.called {
		t.Fatalf("notifier must not run when blocked, even if recording failed")
	}
}

func TestHandle_NotifierFailureIs500Generic(t *testing.T) {
	c := &fakeClassifier{result: legitResult()}
	n := &fakeNotifier{err: errors.New("ses unavailable: credentials expired at 2025-06-01")}
	h := newHandler(testConfig(), c, &fakeRecorder{}, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 500 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if resp.Body != `{"error":"Unable to send message. Please try again later."}` {
		t.Fatalf("unexpected body: %q", resp.Body)
	}
}

func TestHandle_ClassificationDisabledSkipsClassifier(t *testing.T) {
	cfg := testConfig()
	cfg.SpamCheckEnabled = false

	c := &fakeClassifier{result: &classify.Result{Classification: classify.Spam, Confidence: 1, Reason: "x"}}
	r := &fakeRecorder{}
	n := &fakeNotifier{id: "msg-1"}
	h := newHandler(cfg, c, r, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if c.called {
		t.Fatalf("classifier must not run when disabled")
	}
	if r.called {
		t.Fatalf("nothing can be blocked without classification")
	}
	if !n.called || n.gotResult != nil {
		t.Fatalf("notifier should receive no classification, got %+v", n.gotResult)
	}
}

func TestHandle_FailedOpenClassificationStillForwards(t *testing.T) {
	c := &fakeClassifier{result: &classify.Result{
		Classification: classify.Legitimate,
		Confidence:     0,
		Reason:         "Classification error: model timeout",
		FailedOpen:     true,
	}}
	r := &fakeRecorder{}
	n := &fakeNotifier{id: "msg-1"}
	h := newHandler(testConfig(), c, r, n)

	resp := h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if r.called {
		t.Fatalf("fail-open must never block")
	}
	if !n.called {
		t.Fatalf("fail-open submission must still be delivered")
	}
	if !n.gotResult.FailedOpen {
		t.Fatalf("fail-open flag lost on the way to the notifier")
	}
}

func TestHandle_EveryOutcomeCarriesCORSHeaders(t *testing.T) {
	cfg := testConfig()
	cfg.AllowedOrigin = "https://example.org"

	outcomes := map[string]*Request{
		"preflight":  {HTTPMethod: "OPTIONS"},
		"bad body":   {HTTPMethod: "POST", Body: "{"},
		"validation": jsonRequest(t, map[string]any{"name": "John"}),
		"success":    jsonRequest(t, validPayload()),
	}

	for name, req := range outcomes {
		t.Run(name, func(t *testing.T) {
			h := newHandler(cfg, &fakeClassifier{result: legitResult()}, &fakeRecorder{}, &fakeNotifier{id: "m"})

			resp := h.Handle(context.Background(), req)

			want := map[string]string{
				"Content-Type":                 "application/json",
				"Access-Control-Allow-Origin":  "https://example.org",
				"Access-Control-Allow-Headers": "Content-Type",
				"Access-Control-Allow-Methods": "OPTIONS,POST",
			}
			if diff := cmp.Diff(want, resp.Headers); diff != "" {
				t.Fatalf("unexpected headers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHandle_MissingSourceIPRecordsUnknown(t *testing.T) {
	c := &fakeClassifier{result: &classify.Result{Classification: classify.Spam, Confidence: 0.99, Reason: "ad"}}
	r := &fakeRecorder{id: "rec-1"}
	h := newHandler(testConfig(), c, r, &fakeNotifier{})

	body, err := json.Marshal(validPayload())
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := &Request{HTTPMethod: "POST", Body: string(body)}

	h.Handle(context.Background(), req)

	if !r.called || r.gotIP != "unknown" {
		t.Fatalf("expected ip to default to unknown, got %q", r.gotIP)
	}
}

func TestHandle_ThresholdBoundaryBlocks(t *testing.T) {
	cfg := testConfig()
	cfg.SpamThreshold = 0.8

	c := &fakeClassifier{result: &classify.Result{Classification: classify.Spam, Confidence: 0.8, Reason: "ad"}}
	r := &fakeRecorder{id: "rec-1"}
	n := &fakeNotifier{}
	h := newHandler(cfg, c, r, n)

	h.Handle(context.Background(), jsonRequest(t, validPayload()))

	if !r.called {
		t.Fatalf("confidence equal to the threshold must block")
	}
	if n.called {
		t.Fatalf("notifier must not run at the blocking boundary")
	}
}
