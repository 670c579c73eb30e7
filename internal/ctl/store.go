package ctl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/fredjean/fredjean-net-contact/internal/recorder"
)

// ErrNotFound is returned when no submission exists under the requested id.
var ErrNotFound = errors.New("submission not found")

// DynamoAPI is the slice of the DynamoDB client the store depends on.
type DynamoAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// Store reads blocked submissions back out of the DynamoDB table the
// handler writes them to.
type Store struct {
	client DynamoAPI
	table  string
}

func NewStore(client DynamoAPI, table string) *Store {
	return &Store{client: client, table: table}
}

// List scans the table and returns up to limit submissions, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]recorder.BlockedSubmission, error) {
	out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
		Limit:     aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", s.table, err)
	}

	var items []recorder.BlockedSubmission
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("decoding submissions: %w", err)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp > items[j].Timestamp
	})
	return items, nil
}

// Get fetches one submission by id.
func (s *Store) Get(ctx context.Context, id string) (*recorder.BlockedSubmission, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"submissionId": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var item recorder.BlockedSubmission
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("decoding submission %s: %w", id, err)
	}
	return &item, nil
}
