// Package source adapts upstream batch events to orderedbatch.
//
// Each adapter supplies the ordering key, the delivery identifier and the
// per-record process step for one event source:
//
//	SQS       key: MessageGroupId, else a JSON body path, else unique   id: MessageId
//	DynamoDB  key: primary-key attributes, else unique                  id: SequenceNumber
//	Kinesis   key: PartitionKey, else unique                            id: SequenceNumber
//
// The process step parses the raw record with the caller's parse function and
// then runs every registered callback in registration order. The first
// callback error fails the record.
//
// Handle methods have the signature expected by the Lambda runtime. In
// partial mode the unprocessed records are returned as batch item failures;
// in fail-fast mode a failed batch returns the *orderedbatch.BatchError.
package source
