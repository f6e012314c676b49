package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	assert.NoError(t, Email("alice@example.com"))
	assert.ErrorIs(t, Email("not-an-email"), ErrInvalidEmail)
	assert.ErrorIs(t, Email(""), ErrInvalidEmail)
}

func TestPassword(t *testing.T) {
	assert.NoError(t, Password("longenough"))
	assert.ErrorIs(t, Password("short"), ErrPasswordTooWeak)
}
