// Package events defines the payloads published on the event bus by schema
// transforms and operation execution.
package events

import "time"

// GraphQLStart is published once the operation to run is known. Parse
// failures publish only GraphQLFinish.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
	// RootResolve is set when the schema runs a root resolver before the
	// root fields.
	RootResolve bool
}

// GraphQLFinish is published after every execution. Errors holds the
// executor's GraphQLError values.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	Errors        []error
	Duration      time.Duration
}
