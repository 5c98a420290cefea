package outcome

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccess(t *testing.T) {
	o := Success("answer")

	assert.True(t, o.Ok())
	assert.Equal(t, "answer", o.Value())
	assert.NoError(t, o.Reason())
	assert.Equal(t, "answer", o.ValueOr("fallback"))
}

func TestFailure(t *testing.T) {
	reason := errors.New("engine unavailable")
	o := Failure[string](reason)

	assert.False(t, o.Ok())
	assert.Equal(t, "", o.Value())
	assert.ErrorIs(t, o.Reason(), reason)
	assert.Equal(t, "fallback", o.ValueOr("fallback"))
}

func TestZeroValueIsFailure(t *testing.T) {
	var o Outcome[int]
	assert.False(t, o.Ok())
	assert.Equal(t, 42, o.ValueOr(42))
}
