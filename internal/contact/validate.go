package contact

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits holds the per-field maximum lengths, counted in runes.
type Limits struct {
	Email   int
	Name    int
	Phone   int
	Message int
}

var (
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern    = regexp.MustCompile(`^[\p{L}\s'-]+$`)
	phonePattern   = regexp.MustCompile(`^[\d+() -]+$`)
	messagePattern = regexp.MustCompile(`^[\p{L}\p{N}\p{P}\s]+$`)
)

type fieldRule struct {
	name    string
	max     int
	pattern *regexp.Regexp
}

// Validator checks decoded form fields against the configured limits.
type Validator struct {
	rules []fieldRule
}

// NewValidator returns a Validator enforcing the given limits.
func NewValidator(limits Limits) *Validator {
	return &Validator{rules: []fieldRule{
		{"email", limits.Email, emailPattern},
		{"name", limits.Name, namePattern},
		{"phone", limits.Phone, phonePattern},
		{"message", limits.Message, messagePattern},
	}}
}

// Validate checks the loosely-typed decoded fields in fixed order
// (email, name, phone, message) and stops at the first failure.
// A Submission is built from the trimmed values only when every
// field passes; partially validated data never escapes.
func (v *Validator) Validate(fields map[string]any) (*Submission, *ValidationError) {
	checked := make(map[string]string, len(v.rules))
	for _, r := range v.rules {
		value, err := checkField(fields, r)
		if err != nil {
			return nil, err
		}
		checked[r.name] = value
	}
	return &Submission{
		Name:    checked["name"],
		Email:   checked["email"],
		Phone:   checked["phone"],
		Message: checked["message"],
	}, nil
}

func checkField(fields map[string]any, r fieldRule) (string, *ValidationError) {
	raw, ok := fields[r.name]
	if !ok {
		return "", &ValidationError{Field: r.name, Message: r.name + " is required"}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Field: r.name, Message: r.name + " is required"}
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", &ValidationError{Field: r.name, Message: r.name + " cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > r.max {
		return "", &ValidationError{Field: r.name, Message: fmt.Sprintf("%s must be less than %d characters", r.name, r.max)}
	}
	if !r.pattern.MatchString(trimmed) {
		return "", &ValidationError{Field: r.name, Message: r.name + " contains invalid characters"}
	}
	return trimmed, nil
}
