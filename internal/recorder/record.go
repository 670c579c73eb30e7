// Package recorder persists blocked submissions to DynamoDB so abuse
// patterns can be reviewed before the records expire.
package recorder

// BlockedSubmission is the durable record written for every blocked
// attempt. Records are insert-only and expire through the table's TTL
// attribute; nothing updates or deletes them explicitly.
type BlockedSubmission struct {
	SubmissionID   string  `json:"submissionId" dynamodbav:"submissionId"`
	Timestamp      int64   `json:"timestamp" dynamodbav:"timestamp"` // epoch milliseconds
	TTL            int64   `json:"ttl" dynamodbav:"ttl"`             // epoch seconds
	Name           string  `json:"name" dynamodbav:"name"`
	Email          string  `json:"email" dynamodbav:"email"`
	Phone          string  `json:"phone" dynamodbav:"phone"`
	Message        string  `json:"message" dynamodbav:"message"`
	Classification string  `json:"classification" dynamodbav:"classification"`
	Confidence     float64 `json:"confidence" dynamodbav:"confidence"`
	Reason         string  `json:"reason" dynamodbav:"reason"`
	IPAddress      string  `json:"ipAddress" dynamodbav:"ipAddress"`
	BlockedAt      string  `json:"blockedAt" dynamodbav:"blockedAt"` // RFC 3339
}
