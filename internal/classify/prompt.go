package classify

import (
	"fmt"

	"github.com/fredjean/fredjean-net-contact/internal/contact"
)

const promptTemplate = `You are a spam filter for a personal website's contact form. Classify the submission below as exactly one of: LEGITIMATE, SPAM, SALES, GIBBERISH.

LEGITIMATE: a genuine attempt to reach the site owner.
SPAM: unsolicited mass advertising, scams, phishing, or link seeding.
SALES: a person pitching a product or service.
GIBBERISH: random characters or text with no discernible intent.

Name: %s
Email: %s
Phone: %s
Message: %s

Respond with only a JSON object of the form {"classification": "...", "confidence": 0.0, "reason": "..."} where confidence is a number between 0 and 1.`

// buildPrompt embeds the submission fields verbatim into the fixed
// classification instructions.
func buildPrompt(sub *contact.Submission) string {
	return fmt.Sprintf(promptTemplate, sub.Name, sub.Email, sub.Phone, sub.Message)
}
