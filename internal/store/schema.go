package store

// Record is one persisted document. Field names map directly to the
// collection's document keys; `_id`, `createdAt` and `updatedAt` are managed
// by the store.
type Record map[string]interface{}

// Schema is the static per-entity configuration driving the generic store:
// which fields must be present at creation, which are recognized as optional,
// which participate in free-text search, and an optional domain validation
// hook. Schemas never mutate at runtime.
type Schema struct {
	// Name is the entity label used in messages, e.g. "Client".
	Name string

	RequiredFields []string
	OptionalFields []string

	// SearchFields are matched as case-insensitive patterns when a search
	// term is supplied to FindAll.
	SearchFields []string

	// Validate runs after the generic checks and may contribute additional
	// reasons. It sees whatever fields the caller supplied.
	Validate func(Record) []string
}

// Clone returns a shallow copy so the store never mutates caller maps.
func (r Record) Clone() Record {
	out := make(Record, len(r)+2)
	for k, v := range r {
		out[k] = v
	}
	return out
}
