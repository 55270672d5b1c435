// Package suggest provides the external text-suggestion collaborator used
// when composing a post. The store has no dependency on it; a failure never
// affects store state.
package suggest

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnavailable is returned whenever a suggestion cannot be produced,
// regardless of the underlying cause.
var ErrUnavailable = errors.New("suggestion unavailable")

// Provider generates a suggested post text for a topic.
type Provider interface {
	Suggest(ctx context.Context, topic string) (string, error)
}

// unavailable wraps any provider failure into the generic error the
// presentation layer expects.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
