package extract

import (
	"errors"
	"fmt"
)

// ErrCompletionUnavailable reports that the completion capability was
// unreachable or timed out after all retries. The current attempt is
// aborted; no partial record is produced.
var ErrCompletionUnavailable = errors.New("completion capability unavailable")

// UnparsableOutputError reports a completion response that could not be
// decoded as structured data even after a retry. Raw carries the model's
// text so it is never thrown away silently.
type UnparsableOutputError struct {
	Raw string
	Err error
}

func (e *UnparsableOutputError) Error() string {
	return fmt.Sprintf("unparsable completion output: %v", e.Err)
}

func (e *UnparsableOutputError) Unwrap() error {
	return e.Err
}
