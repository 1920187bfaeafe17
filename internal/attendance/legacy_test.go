package attendance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestLegacyToggler_Toggle(t *testing.T) {
	toggler := NewLegacyToggler()
	memberID := uuid.New().String()

	first := toggler.Toggle(memberID)
	assert.Equal(t, "checked_in", first.Action)
	assert.True(t, first.Demo)
	assert.Nil(t, first.DurationMinutes)

	second := toggler.Toggle(memberID)
	assert.Equal(t, "checked_out", second.Action)
	assert.NotNil(t, second.DurationMinutes)
	assert.Equal(t, 0, *second.DurationMinutes)

	third := toggler.Toggle(memberID)
	assert.Equal(t, "checked_in", third.Action)
}

func TestLegacyToggler_IsolatedPerMember(t *testing.T) {
	toggler := NewLegacyToggler()
	a := uuid.New().String()
	b := uuid.New().String()

	toggler.Toggle(a)
	out := toggler.Toggle(b)
	assert.Equal(t, "checked_in", out.Action)
}
