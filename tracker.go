package orderedbatch

// track lists the unprocessed suffix of a group. The first record carries the
// error that stopped the group; the records behind it were never attempted.
func track[T any](out groupOutcome[T]) []UnprocessedRecord[T] {
	if out.err == nil {
		return nil
	}

	rest := out.group.Items[out.processed:]
	records := make([]UnprocessedRecord[T], 0, len(rest))
	for i, item := range rest {
		rec := UnprocessedRecord[T]{Item: item, Key: out.group.Key}
		if i == 0 {
			rec.Err = out.err
		}
		records = append(records, rec)
	}
	return records
}
