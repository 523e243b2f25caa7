package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConversionErrorUnwrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"overflow", Overflow(300, "uint8"), ErrOverflow, "value overflows target type: value 300 (to uint8)"},
		{"lossy", LossyCast(1.5, "float64", "int32"), ErrLossyCast, "lossy cast: value 1.5 (float64 -> int32)"},
		{"type", TypeError("Boolean", "Int32", "bad"), ErrTypeError, "type error (Boolean -> Int32): bad"},
		{"incompatible", Incompatible("Int8", "Int16", ""), ErrIncompatibleType, "incompatible types (Int8 -> Int16)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.sentinel)
			require.Equal(t, tt.msg, tt.err.Error())

			wrapped := fmt.Errorf("outer: %w", tt.err)
			require.ErrorIs(t, wrapped, tt.sentinel)

			var convErr *ConversionError
			require.True(t, errors.As(wrapped, &convErr))
			require.Equal(t, tt.sentinel, convErr.Err)
		})
	}
}
