package config

import (
	"os"
	"strconv"
)

// parseEnv populates selected Config fields from environment variables.
//
// Recognized variables:
//
//	CONTACT_RECIPIENT           notification recipient address
//	CONTACT_SENDER              verified sender address
//	CONTACT_ALLOWED_ORIGIN      CORS allow-origin value
//	CONTACT_MAX_MESSAGE_LENGTH  message length limit, runes
//	CONTACT_MAX_NAME_LENGTH     name length limit, runes
//	CONTACT_MAX_PHONE_LENGTH    phone length limit, runes
//	CONTACT_MAX_EMAIL_LENGTH    email length limit, runes
//	CONTACT_SUBJECT_WORDS       words of the message used as the subject
//	CONTACT_SPAM_CHECK_ENABLED  "true"/"false", toggles classification
//	CONTACT_SPAM_THRESHOLD      blocking confidence threshold, 0..1
//	CONTACT_BLOCKED_TABLE       DynamoDB table for blocked submissions
//	CONTACT_MODEL_ID            Bedrock model identifier
//
// Unset variables leave the current value in place. Values that fail to
// parse are ignored rather than aborting startup.
func parseEnv(config *Config) {
	envString(&config.RecipientEmail, "CONTACT_RECIPIENT")
	envString(&config.SenderEmail, "CONTACT_SENDER")
	envString(&config.AllowedOrigin, "CONTACT_ALLOWED_ORIGIN")
	envInt(&config.MaxMessageLength, "CONTACT_MAX_MESSAGE_LENGTH")
	envInt(&config.MaxNameLength, "CONTACT_MAX_NAME_LENGTH")
	envInt(&config.MaxPhoneLength, "CONTACT_MAX_PHONE_LENGTH")
	envInt(&config.MaxEmailLength, "CONTACT_MAX_EMAIL_LENGTH")
	envInt(&config.SubjectWordCount, "CONTACT_SUBJECT_WORDS")
	envBool(&config.SpamCheckEnabled, "CONTACT_SPAM_CHECK_ENABLED")
	envFloat(&config.SpamThreshold, "CONTACT_SPAM_THRESHOLD")
	envString(&config.BlockedTable, "CONTACT_BLOCKED_TABLE")
	envString(&config.ModelID, "CONTACT_MODEL_ID")
}

func envString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*target = v
	}
}

func envInt(target *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		*target = n
	}
}

func envFloat(target *float64, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		*target = f
	}
}

func envBool(target *bool, key string) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	if b, err := strconv.ParseBool(v); err == nil {
		*target = b
	}
}
