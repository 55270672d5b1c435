package suggest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	text string
	err  error
}

func (s stubProvider) Suggest(ctx context.Context, topic string) (string, error) {
	return s.text, s.err
}

func TestUnavailableWrapsCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := unavailable(cause)
	assert.True(t, errors.Is(err, ErrUnavailable), "every failure is the generic unavailable error")
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewGenAIProviderRequiresKey(t *testing.T) {
	_, err := NewGenAIProvider(context.Background(), "")
	require.Error(t, err)
}

func TestProviderInterface(t *testing.T) {
	var p Provider = stubProvider{text: "Go is great #golang"}
	text, err := p.Suggest(context.Background(), "go")
	require.NoError(t, err)
	assert.NotEmpty(t, text)
}
