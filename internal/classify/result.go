// Package classify labels contact submissions with an external language
// model and decides whether a submission is blocked or forwarded.
package classify

// Labels the model may assign to a submission.
const (
	Legitimate = "LEGITIMATE"
	Spam       = "SPAM"
	Sales      = "SALES"
	Gibberish  = "GIBBERISH"
)

// Result is the outcome of classifying one submission.
//
// FailedOpen marks the fallback produced when classification could not
// run; it always carries Legitimate with zero confidence so that an
// outage of the classifier never blocks traffic.
type Result struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Reason         string  `json:"reason"`
	FailedOpen     bool    `json:"-"`
}

// ShouldBlock reports whether a submission with this classification is
// dropped instead of forwarded. Only SPAM or GIBBERISH at or above the
// confidence threshold blocks; everything else, including SALES and
// low-confidence spam, is still delivered so the recipient can filter
// manually. A nil result (classification disabled) always forwards.
func ShouldBlock(r *Result, threshold float64) bool {
	if r == nil {
		return false
	}
	if r.Classification != Spam && r.Classification != Gibberish {
		return false
	}
	return r.Confidence >= threshold
}
