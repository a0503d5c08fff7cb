package apperr

import (
	"errors"
	"fmt"
	"testing"
)

var errSample = New(KindNotFound, "SAMPLE_NOT_FOUND", "Sample not found")

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"direct", errSample, KindNotFound},
		{"wrapped with fmt", fmt.Errorf("repo: %w", errSample), KindNotFound},
		{"wrapped with cause", Wrap(errSample, errors.New("no rows")), KindNotFound},
		{"conflict", Conflict(errors.New("deadlock")), KindConflict},
		{"plain error", errors.New("boom"), KindInternal},
		{"nil", nil, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestWrap_KeepsIdentityAndCause(t *testing.T) {
	cause := errors.New("no rows")
	err := Wrap(errSample, cause)
	if !errors.Is(err, errSample) {
		t.Fatalf("errors.Is(err, errSample) = false")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(err, cause) = false")
	}
	if Wrap(errSample, nil) != error(errSample) {
		t.Fatalf("Wrap with nil cause should return base")
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(fmt.Errorf("x: %w", errSample), "fallback"); got != "Sample not found" {
		t.Fatalf("MessageOf = %q", got)
	}
	if got := MessageOf(errors.New("boom"), "fallback"); got != "fallback" {
		t.Fatalf("MessageOf = %q, want fallback", got)
	}
}

func TestError_String(t *testing.T) {
	if got := errSample.Error(); got != "SAMPLE_NOT_FOUND: Sample not found" {
		t.Fatalf("Error() = %q", got)
	}
	e := &Error{Kind: KindInternal, Code: "C", Message: "m", Err: errors.New("x")}
	if got := e.Error(); got != "C: m (x)" {
		t.Fatalf("Error() = %q", got)
	}
}
