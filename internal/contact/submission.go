// Package contact defines the submission model and the field validation
// rules applied to every contact-form request.
package contact

// Submission is one validated contact-form entry. It exists only for the
// lifetime of a request; blocked submissions are persisted separately.
type Submission struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ValidationError reports the first field that failed validation, with a
// message suitable for returning to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
