package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelWrapping(t *testing.T) {
	err := Wrap(ErrNotCanonical, "emby.list")
	assert.True(t, Is(err, ErrNotCanonical))
	assert.True(t, IsNotCanonical(err))
	assert.False(t, IsNoInput(err))
}

func TestWrapPreservesNil(t *testing.T) {
	require.NoError(t, Wrap(nil, "context"))
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(New("boom"), "check file permissions")
	err = Wrap(err, "writing artifact")

	hints := GetAllHints(err)
	require.Len(t, hints, 1)
	assert.Equal(t, "check file permissions", hints[0])
}
