// Package config handles configuration for the contact pipeline,
// including defaults and an environment-variable overlay.
package config

// Config holds runtime settings for the contact-form pipeline.
//
// Fields:
//   - RecipientEmail: where submission notifications are delivered.
//   - SenderEmail: verified address notifications are sent from.
//   - AllowedOrigin: value for the CORS Access-Control-Allow-Origin header.
//   - MaxMessageLength / MaxNameLength / MaxPhoneLength / MaxEmailLength:
//     upper bounds for field validation, counted in runes.
//   - SubjectWordCount: number of leading message words used as the subject.
//   - SpamCheckEnabled: toggles the LLM classification step.
//   - SpamThreshold: minimum confidence at which SPAM/GIBBERISH is blocked.
//   - BlockedTable: DynamoDB table recording blocked submissions.
//   - ModelID: Bedrock model used for classification.
type Config struct {
	RecipientEmail   string
	SenderEmail      string
	AllowedOrigin    string
	MaxMessageLength int
	MaxNameLength    int
	MaxPhoneLength   int
	MaxEmailLength   int
	SubjectWordCount int
	SpamCheckEnabled bool
	SpamThreshold    float64
	BlockedTable     string
	ModelID          string
}

// LoadDefaults populates Config with working defaults. Every option can be
// overridden through the environment; none is required for startup.
func (c *Config) LoadDefaults() {
	c.RecipientEmail = "contact@fredjean.net"
	c.SenderEmail = "no-reply@fredjean.net"
	c.AllowedOrigin = "https://fredjean.net"
	c.MaxMessageLength = 2048
	c.MaxNameLength = 100
	c.MaxPhoneLength = 20
	c.MaxEmailLength = 255
	c.SubjectWordCount = 8
	c.SpamCheckEnabled = true
	c.SpamThreshold = 0.8
	c.BlockedTable = "contact-blocked-submissions"
	c.ModelID = "anthropic.claude-3-haiku-20240307-v1:0"
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from the environment.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
