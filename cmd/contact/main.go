package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	"github.com/fredjean/fredjean-net-contact/internal/awsx"
	"github.com/fredjean/fredjean-net-contact/internal/classify"
	"github.com/fredjean/fredjean-net-contact/internal/config"
	"github.com/fredjean/fredjean-net-contact/internal/handler"
	"github.com/fredjean/fredjean-net-contact/internal/logging"
	"github.com/fredjean/fredjean-net-contact/internal/notify"
	"github.com/fredjean/fredjean-net-contact/internal/recorder"
)

func main() {

	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	cfg := config.LoadConfig()

	awsCfg, err := awsx.Load(ctx)
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	classifier := classify.NewClassifier(bedrockruntime.NewFromConfig(awsCfg), cfg.ModelID, logger)
	rec := recorder.NewDynamoRecorder(dynamodb.NewFromConfig(awsCfg), cfg.BlockedTable, logger)
	notifier := notify.NewNotifier(sesv2.NewFromConfig(awsCfg), cfg.SenderEmail, cfg.RecipientEmail, cfg.SubjectWordCount, logger)

	h := handler.New(cfg, classifier, rec, notifier, logger)

	lambda.Start(func(ctx context.Context, req handler.Request) (events.APIGatewayProxyResponse, error) {
		return h.Handle(ctx, &req), nil
	})

}
