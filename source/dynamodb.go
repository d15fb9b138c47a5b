package source

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// DynamoDBParseFunc converts a stream record into an entity.
type DynamoDBParseFunc[T any] func(events.DynamoDBEventRecord) (T, error)

// DynamoDB processes DynamoDB Streams batches. Changes to the same item run in
// stream order.
type DynamoDB[T any] struct {
	*handler[events.DynamoDBEventRecord, T]
}

// NewDynamoDB creates a DynamoDB Streams adapter.
func NewDynamoDB[T any](parse DynamoDBParseFunc[T], opts ...Option) *DynamoDB[T] {
	return &DynamoDB[T]{
		handler: newHandler[events.DynamoDBEventRecord, T]("dynamodb", buildOptions(opts), parse, dynamoDBKey, dynamoDBSequenceNumber),
	}
}

func dynamoDBSequenceNumber(rec events.DynamoDBEventRecord) string {
	return rec.Change.SequenceNumber
}

// Handle processes event and reports unprocessed records by sequence number.
func (d *DynamoDB[T]) Handle(ctx context.Context, event events.DynamoDBEvent) (events.DynamoDBEventResponse, error) {
	failed, err := d.handle(ctx, event.Records)
	if err != nil {
		return events.DynamoDBEventResponse{}, err
	}

	resp := events.DynamoDBEventResponse{
		BatchItemFailures: make([]events.DynamoDBBatchItemFailure, 0, len(failed)),
	}
	for _, id := range failed {
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.DynamoDBBatchItemFailure{ItemIdentifier: id})
	}
	return resp, nil
}
