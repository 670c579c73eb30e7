package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrDecode marks a request body that could not be parsed.
var ErrDecode = errors.New("invalid request format")

// decodeFields extracts the loosely-typed form fields from the event
// body, undoing base64 transport wrapping and accepting either JSON or
// URL-encoded form content. Validation narrows the result afterwards.
func (h *Handler) decodeFields(ctx context.Context, req *Request) (map[string]any, error) {
	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		body = string(raw)
	}

	contentType := strings.ToLower(req.header("Content-Type"))
	if strings.Contains(contentType, "application/x-www-form-urlencoded") {
		values, err := url.ParseQuery(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		fields := make(map[string]any, len(values))
		for k := range values {
			fields[k] = values.Get(k)
		}
		h.logger.Info(ctx, "request decoded", "format", "form")
		return fields, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	h.logger.Info(ctx, "request decoded", "format", "json")
	return fields, nil
}
