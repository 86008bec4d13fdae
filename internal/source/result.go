package source

import "encoding/json"

// Result is the outcome of one query in one fetch cycle. Exactly one of
// Payload and Err is set.
type Result struct {
	Payload json.RawMessage
	Err     error
}

// Success wraps a decoded-as-valid JSON payload.
func Success(payload json.RawMessage) Result {
	return Result{Payload: payload}
}

// Failure wraps a classified fetch error.
func Failure(err error) Result {
	return Result{Err: err}
}

// OK reports whether the query succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}
