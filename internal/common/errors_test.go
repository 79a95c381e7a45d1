package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	cause := errors.New("disk full")
	err := NewUserError("Maaf, terjadi kesalahan.", cause)

	assert.Equal(t, "Maaf, terjadi kesalahan.: disk full", err.Error())
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	assert.ErrorAs(t, err, &userErr)
	assert.Equal(t, "Maaf, terjadi kesalahan.", userErr.UserMessage)
}

func TestUserError_NoCause(t *testing.T) {
	err := &UserError{UserMessage: "Maaf, coba lagi."}
	assert.Equal(t, "Maaf, coba lagi.", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "collaborator timeout",
			err:  fmt.Errorf("save: %w", ErrCollaboratorTimeout),
			want: true,
		},
		{
			name: "collaborator unavailable",
			err:  fmt.Errorf("query: %w", ErrCollaboratorUnavailable),
			want: true,
		},
		{
			name: "deadline exceeded",
			err:  context.DeadlineExceeded,
			want: true,
		},
		{
			name: "timeout wrapped in user error",
			err:  NewUserError("Maaf.", fmt.Errorf("op: %w", ErrCollaboratorTimeout)),
			want: true,
		},
		{
			name: "retryable marker",
			err:  &RetryableError{Err: errors.New("flaky"), Retryable: true},
			want: true,
		},
		{
			name: "non-retryable marker",
			err:  &RetryableError{Err: errors.New("broken"), Retryable: false},
			want: false,
		},
		{
			name: "duplicate entry",
			err:  ErrDuplicateEntry,
			want: false,
		},
		{
			name: "missing entity",
			err:  ErrMissingEntity,
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
