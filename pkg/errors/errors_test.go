package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidDocument, "test message: %s", "value")

	if err.Code != ErrCodeInvalidDocument {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidDocument)
	}
	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying failure")
	err := Wrap(ErrCodeStore, cause, "load graph %s", "demo")

	if err.Code != ErrCodeStore {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeStore)
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should match its cause with errors.Is")
	}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeGraphNotFound, "no graph named demo"),
			want: "GRAPH_NOT_FOUND: no graph named demo",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeCache, errors.New("disk full"), "write entry"),
			want: "CACHE_ERROR: write entry: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidFlag, "unknown flag")

	if !Is(err, ErrCodeInvalidFlag) {
		t.Error("Is should match the error's own code")
	}
	if Is(err, ErrCodeInternal) {
		t.Error("Is should not match a different code")
	}
	if Is(errors.New("plain"), ErrCodeInternal) {
		t.Error("Is should not match a plain error")
	}
}

func TestIsWrappedChain(t *testing.T) {
	inner := New(ErrCodeGraphNotFound, "missing")
	outer := Wrap(ErrCodeStore, inner, "lookup failed")

	// The outermost code wins.
	if !Is(outer, ErrCodeStore) {
		t.Error("Is should match the outermost code")
	}
	if Is(outer, ErrCodeGraphNotFound) {
		t.Error("Is should not reach past the outermost Error")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInternal, "boom")); got != ErrCodeInternal {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeInternal)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode for plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidDocument, "bad edge")); got != "bad edge" {
		t.Errorf("UserMessage = %q, want %q", got, "bad edge")
	}
	if got := UserMessage(errors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}
