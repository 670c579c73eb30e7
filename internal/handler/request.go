// Package handler runs the contact-form pipeline for one API Gateway
// event: decode, validate, classify, decide, then record or notify.
package handler

import "strings"

// Request is the API Gateway event shape the handler accepts. It carries
// both the REST (v1) and HTTP API (v2) field locations so the same
// handler serves either integration.
type Request struct {
	HTTPMethod      string            `json:"httpMethod,omitempty"`
	Headers         map[string]string `json:"headers,omitempty"`
	Body            string            `json:"body,omitempty"`
	IsBase64Encoded bool              `json:"isBase64Encoded,omitempty"`
	RequestContext  RequestContext    `json:"requestContext,omitempty"`
}

type RequestContext struct {
	Identity Identity    `json:"identity,omitempty"`
	HTTP     HTTPContext `json:"http,omitempty"`
}

type Identity struct {
	SourceIP string `json:"sourceIp,omitempty"`
}

type HTTPContext struct {
	Method   string `json:"method,omitempty"`
	SourceIP string `json:"sourceIp,omitempty"`
}

// Method returns the HTTP method, preferring the legacy top-level field
// and falling back to the v2 location.
func (r *Request) Method() string {
	if r.HTTPMethod != "" {
		return r.HTTPMethod
	}
	return r.RequestContext.HTTP.Method
}

// SourceIP returns the caller address, or "unknown" when the event
// carries none.
func (r *Request) SourceIP() string {
	if ip := r.RequestContext.Identity.SourceIP; ip != "" {
		return ip
	}
	if ip := r.RequestContext.HTTP.SourceIP; ip != "" {
		return ip
	}
	return "unknown"
}

// header performs a case-insensitive header lookup.
func (r *Request) header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
