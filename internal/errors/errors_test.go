package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "without cause",
			err:  NewMalformedInputError("timestamp column missing", nil),
			want: "[MALFORMED_INPUT] timestamp column missing",
		},
		{
			name: "with cause",
			err:  NewDataUnavailableError("remote fetch failed", stderrors.New("connection refused")),
			want: "[DATA_UNAVAILABLE] remote fetch failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := stderrors.New("no such file")
	err := NewStorageError("cache dir unreadable", cause)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestIsType_ThroughWrapping(t *testing.T) {
	inner := NewDataUnavailableError("download failed", stderrors.New("403"))
	wrapped := fmt.Errorf("obtain raw file: %w", inner)

	assert.True(t, IsDataUnavailable(wrapped))
	assert.False(t, IsMalformedInput(wrapped))
	assert.True(t, IsType(wrapped, ErrTypeDataUnavailable))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewMalformedInputError("unparseable salary", nil).
		WithContext("row", 12).
		WithContext("value", "abc")

	assert.Equal(t, 12, err.Context["row"])
	assert.Equal(t, "abc", err.Context["value"])
}
