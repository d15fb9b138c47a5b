package source

import (
	"encoding/base64"
	"maps"
	"slices"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/jaeyoung0509/orderedbatch"
)

const messageGroupIDAttribute = "MessageGroupId"

// uniqueKey puts a record in a group of its own.
func uniqueKey() string {
	return uuid.NewString()
}

func sqsKey(bodyKeyPath string) orderedbatch.KeyFunc[events.SQSMessage] {
	return func(msg events.SQSMessage) string {
		if group := msg.Attributes[messageGroupIDAttribute]; group != "" {
			return group
		}
		if bodyKeyPath != "" {
			if v := gjson.Get(msg.Body, bodyKeyPath); v.Exists() && v.String() != "" {
				return v.String()
			}
		}
		return uniqueKey()
	}
}

// dynamoDBKey renders the item's primary key as sorted name=value pairs.
func dynamoDBKey(rec events.DynamoDBEventRecord) string {
	keys := rec.Change.Keys
	if len(keys) == 0 {
		return uniqueKey()
	}

	names := slices.Sorted(maps.Keys(keys))
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+attributeString(keys[name]))
	}
	return strings.Join(parts, ",")
}

// attributeString formats the scalar types allowed in DynamoDB keys.
func attributeString(av events.DynamoDBAttributeValue) string {
	switch av.DataType() {
	case events.DataTypeString:
		return av.String()
	case events.DataTypeNumber:
		return av.Number()
	case events.DataTypeBinary:
		return base64.StdEncoding.EncodeToString(av.Binary())
	default:
		return ""
	}
}

func kinesisKey(rec events.KinesisEventRecord) string {
	if rec.Kinesis.PartitionKey == "" {
		return uniqueKey()
	}
	return rec.Kinesis.PartitionKey
}
