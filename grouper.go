package orderedbatch

// Item is one element of a batch together with its position in the input.
type Item[T any] struct {
	Index int
	Value T
}

// KeyFunc derives the ordering key of a value. Values with equal keys are
// processed sequentially in input order. Return a unique value (for example a
// fresh UUID) for values that carry no ordering constraint.
type KeyFunc[T any] func(T) string

// Group is the ordered run of items sharing one key.
type Group[T any] struct {
	Key   string
	Items []Item[T]
}

// GroupBy partitions items by keyOf.
//
// Items keep their relative input order inside a group, and groups are
// returned in order of each key's first occurrence.
func GroupBy[T any](items []T, keyOf KeyFunc[T]) []Group[T] {
	groups := make([]Group[T], 0)
	slot := make(map[string]int)

	for i, v := range items {
		key := keyOf(v)
		idx, ok := slot[key]
		if !ok {
			idx = len(groups)
			slot[key] = idx
			groups = append(groups, Group[T]{Key: key})
		}
		groups[idx].Items = append(groups[idx].Items, Item[T]{Index: i, Value: v})
	}

	return groups
}
