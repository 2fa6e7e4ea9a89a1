package errors

import (
	"errors"
	"testing"
)

type codedError struct {
	Code int
}

func (e codedError) Error() string { return "coded error" }

func TestWrap(t *testing.T) {
	base := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(base, "context")
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if wrapped.Error() != "context: base error" {
			t.Errorf("unexpected message: %s", wrapped.Error())
		}
		if !errors.Is(wrapped, base) {
			t.Error("expected wrapped error to match base")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "context"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	base := errors.New("base error")

	t.Run("wrapf non-nil error", func(t *testing.T) {
		wrapped := Wrapf(base, "attempt %d", 3)
		if wrapped == nil {
			t.Fatal("expected wrapped error, got nil")
		}
		if wrapped.Error() != "attempt 3: base error" {
			t.Errorf("unexpected message: %s", wrapped.Error())
		}
		if !errors.Is(wrapped, base) {
			t.Error("expected wrapped error to match base")
		}
	})

	t.Run("wrapf nil error", func(t *testing.T) {
		if wrapped := Wrapf(nil, "attempt %d", 3); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestIs(t *testing.T) {
	wrapped := Wrap(ErrInfrastructure, "store unavailable")
	if !Is(wrapped, ErrInfrastructure) {
		t.Error("expected wrapped ErrInfrastructure to match")
	}
	if Is(wrapped, ErrUnauthorized) {
		t.Error("did not expect match against ErrUnauthorized")
	}
}

func TestAs(t *testing.T) {
	wrapped := Wrap(codedError{Code: 42}, "context")

	var target codedError
	if !As(wrapped, &target) {
		t.Fatal("expected to extract codedError from chain")
	}
	if target.Code != 42 {
		t.Errorf("expected code 42, got %d", target.Code)
	}
}
