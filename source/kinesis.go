package source

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// KinesisParseFunc converts a Kinesis record into an entity.
type KinesisParseFunc[T any] func(events.KinesisEventRecord) (T, error)

// Kinesis processes Kinesis batches. Records with the same partition key run
// in shard order.
type Kinesis[T any] struct {
	*handler[events.KinesisEventRecord, T]
}

// NewKinesis creates a Kinesis adapter.
func NewKinesis[T any](parse KinesisParseFunc[T], opts ...Option) *Kinesis[T] {
	return &Kinesis[T]{
		handler: newHandler[events.KinesisEventRecord, T]("kinesis", buildOptions(opts), parse, kinesisKey, kinesisSequenceNumber),
	}
}

func kinesisSequenceNumber(rec events.KinesisEventRecord) string {
	return rec.Kinesis.SequenceNumber
}

// Handle processes event and reports unprocessed records by sequence number.
func (k *Kinesis[T]) Handle(ctx context.Context, event events.KinesisEvent) (events.KinesisEventResponse, error) {
	failed, err := k.handle(ctx, event.Records)
	if err != nil {
		return events.KinesisEventResponse{}, err
	}

	resp := events.KinesisEventResponse{
		BatchItemFailures: make([]events.KinesisBatchItemFailure, 0, len(failed)),
	}
	for _, id := range failed {
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.KinesisBatchItemFailure{ItemIdentifier: id})
	}
	return resp, nil
}
