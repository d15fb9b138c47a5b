package source

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaeyoung0509/orderedbatch"
)

type reading struct {
	Sensor string  `json:"sensor"`
	Value  float64 `json:"value"`
}

func parseReading(rec events.KinesisEventRecord) (reading, error) {
	var r reading
	if err := json.Unmarshal(rec.Kinesis.Data, &r); err != nil {
		return reading{}, err
	}
	return r, nil
}

func kinesisRecord(partition, seq, data string) events.KinesisEventRecord {
	return events.KinesisEventRecord{
		EventID: "shard-0:" + seq,
		Kinesis: events.KinesisRecord{
			PartitionKey:   partition,
			SequenceNumber: seq,
			Data:           []byte(data),
		},
	}
}

func TestKinesisKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sensor-1", kinesisKey(kinesisRecord("sensor-1", "1", "")))

	noKey := kinesisRecord("", "2", "")
	assert.NotEqual(t, kinesisKey(noKey), kinesisKey(noKey))
}

func TestKinesisHandle(t *testing.T) {
	t.Parallel()

	errSpike := errors.New("value out of range")
	h := NewKinesis(parseReading)
	h.Register(func(_ context.Context, r reading) error {
		if r.Value > 100 {
			return errSpike
		}
		return nil
	})

	event := events.KinesisEvent{Records: []events.KinesisEventRecord{
		kinesisRecord("sensor-1", "001", `{"sensor":"sensor-1","value":10}`),
		kinesisRecord("sensor-2", "002", `{"sensor":"sensor-2","value":500}`),
		kinesisRecord("sensor-1", "003", `{"sensor":"sensor-1","value":11}`),
		kinesisRecord("sensor-2", "004", `{"sensor":"sensor-2","value":12}`),
		kinesisRecord("sensor-3", "005", `{broken`),
	}}

	resp, err := h.Handle(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, []events.KinesisBatchItemFailure{
		{ItemIdentifier: "002"},
		{ItemIdentifier: "004"},
		{ItemIdentifier: "005"},
	}, resp.BatchItemFailures)

	failFast := NewKinesis(parseReading, WithMode(orderedbatch.ModeFailFast))
	failFast.Register(func(_ context.Context, r reading) error {
		if r.Value > 100 {
			return errSpike
		}
		return nil
	})

	_, err = failFast.Handle(context.Background(), event)
	require.ErrorIs(t, err, errSpike)

	var batchErr *orderedbatch.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Len(t, batchErr.Errors(), 2)
	assert.Equal(t, 3, batchErr.Unprocessed)
}
