package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// successMessage is returned for both delivered and blocked submissions
// so a sender cannot probe which of the two happened.
const successMessage = "Thank you for contacting us! Your message has been sent."

const sendFailureMessage = "Unable to send message. Please try again later."

// respond shapes one pipeline outcome into the uniform JSON-with-CORS
// contract every response follows.
func (h *Handler) respond(status int, payload any) events.APIGatewayProxyResponse {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error"}`)
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":                 "application/json",
			"Access-Control-Allow-Origin":  h.cfg.AllowedOrigin,
			"Access-Control-Allow-Headers": "Content-Type",
			"Access-Control-Allow-Methods": "OPTIONS,POST",
		},
		Body: string(body),
	}
}

// respondSuccess is the single terminal success path. Both the blocked
// and the delivered branch end here, which keeps the two responses
// byte-identical.
func (h *Handler) respondSuccess() events.APIGatewayProxyResponse {
	return h.respond(http.StatusOK, map[string]any{
		"message": successMessage,
		"success": true,
	})
}
