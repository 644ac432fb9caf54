package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMalformedColor, "bad color: %s", "#zzz")

	if err.Code != ErrCodeMalformedColor {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMalformedColor)
	}

	if err.Message != "bad color: #zzz" {
		t.Errorf("Message = %v, want %v", err.Message, "bad color: #zzz")
	}

	expected := "MALFORMED_COLOR: bad color: #zzz"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInvalidGrid, cause, "reading grid")

	if err.Code != ErrCodeInvalidGrid {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGrid)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeEmptyInput, "test"),
			code:     ErrCodeEmptyInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeEmptyInput, "test"),
			code:     ErrCodeMalformedColor,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeEmptyInput,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("outer: %w", New(ErrCodeMissingColumn, "no such column")),
			code:     ErrCodeMissingColumn,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeEmptyInput, "no quantities")); got != "no quantities" {
		t.Errorf("UserMessage() = %v, want %v", got, "no quantities")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v, want %v", got, "plain")
	}
}
