package executor

import (
	"errors"

	language "github.com/hanpama/gqlkit/internal/language"
)

// GraphQLError is one entry of the errors list of a response.
type GraphQLError struct {
	Message    string         `json:"message"`
	Locations  []Location     `json:"locations,omitempty"`
	Path       Path           `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (e GraphQLError) Error() string {
	return e.Message
}

// Location is a 1-based position in the query document.
type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// ExecutionResult is the {data, errors} response of one operation.
type ExecutionResult struct {
	Data   any            `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

// requestError converts an error raised before execution started. Syntax
// errors keep the positions reported by the parser.
func requestError(err error) GraphQLError {
	var gerr *language.Error
	if !errors.As(err, &gerr) {
		return GraphQLError{Message: err.Error()}
	}
	out := GraphQLError{Message: gerr.Message}
	for _, loc := range gerr.Locations {
		out.Locations = append(out.Locations, Location{Line: loc.Line, Column: loc.Column})
	}
	return out
}
