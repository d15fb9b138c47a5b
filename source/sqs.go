package source

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
)

// SQSParseFunc converts an SQS message into an entity.
type SQSParseFunc[T any] func(events.SQSMessage) (T, error)

// SQS processes SQS batches. Messages of one FIFO message group run in order.
type SQS[T any] struct {
	*handler[events.SQSMessage, T]
}

// NewSQS creates an SQS adapter.
func NewSQS[T any](parse SQSParseFunc[T], opts ...Option) *SQS[T] {
	o := buildOptions(opts)
	return &SQS[T]{
		handler: newHandler[events.SQSMessage, T]("sqs", o, parse, sqsKey(o.bodyKeyPath), sqsMessageID),
	}
}

func sqsMessageID(msg events.SQSMessage) string {
	return msg.MessageId
}

// Handle processes event and reports unprocessed messages by MessageId.
func (s *SQS[T]) Handle(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	failed, err := s.handle(ctx, event.Records)
	if err != nil {
		return events.SQSEventResponse{}, err
	}

	resp := events.SQSEventResponse{
		BatchItemFailures: make([]events.SQSBatchItemFailure, 0, len(failed)),
	}
	for _, id := range failed {
		resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: id})
	}
	return resp, nil
}
