package extract

import "context"

// Completer is the external text-completion capability. It is treated as an
// opaque, possibly unreliable dependency: one prompt in, one text response
// out, intended to be JSON but not guaranteed well-formed. Implementations
// must honor ctx cancellation.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
