package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryCodeHasMessageAndStatus(t *testing.T) {
	for c := range codeStatusMap {
		_, ok := codeMessageMap[c]
		assert.True(t, ok, "code %d has no message", c)
	}
	for c := range codeMessageMap {
		_, ok := codeStatusMap[c]
		assert.True(t, ok, "code %d has no status", c)
	}
}

func TestLookups(t *testing.T) {
	assert.Equal(t, StatusOK, GetStatus(ErrSuccess))
	assert.Equal(t, StatusUnauthorized, GetStatus(ErrAuthFailed))
	assert.Equal(t, StatusServiceUnavailable, GetStatus(ErrDatabase))
	assert.Equal(t, StatusInternalServerError, GetStatus(999))
	assert.Equal(t, "unknown error", GetMessage(999))
}
