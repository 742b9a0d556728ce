package events

import "time"

// SchemaTransformStart is emitted before a schema transform runs.
type SchemaTransformStart struct {
	Transform string // e.g. "add_resolvers"
	Strategy  string // "rebuild" or "in_place"
	Entries   int
}

// SchemaTransformFinish is emitted after a schema transform completes.
type SchemaTransformFinish struct {
	Transform string
	Strategy  string
	Entries   int
	Err       error
	Duration  time.Duration
}
