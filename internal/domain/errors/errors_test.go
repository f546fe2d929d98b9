package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"invalid request", ErrInvalidRequest},
		{"not found", ErrNotFound},
		{"already exists", ErrAlreadyExists},
		{"insufficient stock", ErrInsufficientStock},
		{"insufficient points", ErrInsufficientPoints},
		{"invalid transition", ErrInvalidTransition},
		{"corrupt entry", ErrCorruptEntry},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
			wrapped := fmt.Errorf("book 7: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match: %v", wrapped)
			}
		})
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	if stdErrors.Is(ErrInsufficientStock, ErrNotFound) {
		t.Fatal("insufficient stock must not match not found")
	}
}
