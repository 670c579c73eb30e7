// Package notify formats accepted submissions and dispatches them to the
// site owner through SES.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/contact"
)

const attentionMarker = "⚠️"

// Subject builds the notification subject from the first wordCount words
// of the whitespace-normalized message. A trailing ellipsis marks
// truncation, and a leading marker flags submissions that are not an
// obviously clean pass.
func Subject(sub *contact.Submission, result *classify.Result, wordCount int) string {
	words := strings.Fields(sub.Message)
	subject := strings.Join(words, " ")
	if len(words) > wordCount {
		subject = strings.Join(words[:wordCount], " ") + "..."
	}
	if needsAttention(result) {
		subject = attentionMarker + " " + subject
	}
	return subject
}

// needsAttention reports whether the recipient should look twice: any
// label other than LEGITIMATE, or LEGITIMATE the model is unsure about.
func needsAttention(result *classify.Result) bool {
	if result == nil {
		return false
	}
	if result.Classification != classify.Legitimate {
		return true
	}
	return result.Confidence < 0.9
}

// Body renders the plain-text notification: submitter details, an
// optional spam-detection section, the verbatim message, and the
// submission timestamp.
func Body(sub *contact.Submission, result *classify.Result, submittedAt time.Time) string {
	var b strings.Builder

	b.WriteString("New contact form submission\n\n")
	fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)

	if result != nil {
		b.WriteString("\nSpam Detection:\n")
		fmt.Fprintf(&b, "Classification: %s\n", result.Classification)
		fmt.Fprintf(&b, "Confidence: %.1f%%\n", result.Confidence*100)
		fmt.Fprintf(&b, "Reason: %s\n", result.Reason)
		if result.FailedOpen {
			b.WriteString("Warning: the spam check failed and this submission was let through unclassified.\n")
		}
	}

	fmt.Fprintf(&b, "\nMessage:\n%s\n", sub.Message)
	fmt.Fprintf(&b, "\nSubmitted at: %s\n", submittedAt.UTC().Format(time.RFC3339))

	return b.String()
}
