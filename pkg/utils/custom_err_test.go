package utils

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	transient := &TransientError{Op: "generate", Err: errors.New("connection reset")}
	malformed := &MalformedResponseError{Reason: "no candidates"}
	wrappedCredential := fmt.Errorf("gateway: %w", ErrMissingAPIKey)

	assert.True(t, IsTransientErr(transient))
	assert.True(t, IsRetryableErr(transient))
	assert.False(t, IsCredentialErr(transient))

	assert.True(t, IsMalformedErr(malformed))
	assert.True(t, IsRetryableErr(malformed))
	assert.False(t, IsCredentialErr(malformed))

	assert.True(t, IsCredentialErr(ErrMissingAPIKey))
	assert.True(t, IsCredentialErr(wrappedCredential))
	assert.False(t, IsRetryableErr(ErrMissingAPIKey))

	assert.False(t, IsRetryableErr(errors.New("something else")))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("deadline exceeded")
	transient := &TransientError{Op: "generate", Err: cause}
	assert.ErrorIs(t, transient, cause)

	malformed := &MalformedResponseError{Reason: "bad schema", Err: cause}
	assert.ErrorIs(t, malformed, cause)
	assert.Contains(t, malformed.Error(), "bad schema")
}
