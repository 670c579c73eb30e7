package recorder

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/contact"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
)

// Blocked records are kept for 90 days, then expire via the table TTL.
const retentionDays = 90

// DynamoDBClient is the subset of the DynamoDB API used by the recorder.
type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var _ DynamoDBClient = (*dynamodb.Client)(nil)

// DynamoRecorder writes blocked submissions to a DynamoDB table. Write
// failures are logged and swallowed; the caller's response does not
// depend on the record landing.
type DynamoRecorder struct {
	client DynamoDBClient
	table  string
	logger logging.Logger
	now    func() time.Time
}

func NewDynamoRecorder(client DynamoDBClient, table string, logger logging.Logger) *DynamoRecorder {
	return &DynamoRecorder{client: client, table: table, logger: logger, now: time.Now}
}

// Record writes one blocked submission and returns its generated id.
// On any failure it returns an empty id; errors never propagate.
func (r *DynamoRecorder) Record(ctx context.Context, sub *contact.Submission, result *classify.Result, ip string) string {
	rec := r.newRecord(sub, result, ip)

	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		r.logger.Error(ctx, "marshal blocked submission failed", "error", err.Error())
		return ""
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		r.logger.Error(ctx, "recording blocked submission failed",
			"error", err.Error(), "submission_id", rec.SubmissionID)
		return ""
	}

	r.logger.Info(ctx, "blocked submission recorded",
		"submission_id", rec.SubmissionID, "table", r.table)
	return rec.SubmissionID
}

func (r *DynamoRecorder) newRecord(sub *contact.Submission, result *classify.Result, ip string) BlockedSubmission {
	now := r.now().UTC()

	rec := BlockedSubmission{
		SubmissionID: uuid.NewString(),
		Timestamp:    now.UnixMilli(),
		TTL:          now.Unix() + retentionDays*24*3600,
		Name:         sub.Name,
		Email:        sub.Email,
		Phone:        sub.Phone,
		Message:      sub.Message,
		IPAddress:    ip,
		BlockedAt:    now.Format(time.RFC3339),
	}
	if result != nil {
		rec.Classification = result.Classification
		rec.Confidence = result.Confidence
		rec.Reason = result.Reason
	}
	return rec
}
