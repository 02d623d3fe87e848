package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"sentinel", ErrProductNotFound, NotFound},
		{"with detail", ErrTableNotEligible.WithDetail("table %s", "t1"), PreconditionFailed},
		{"wrapped by fmt", fmt.Errorf("create menu: %w", ErrMenuPriceExceedsSum), ValidationFailed},
		{"plain error", errors.New("boom"), Internal},
		{"nil", nil, Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorIsMatchesByCode(t *testing.T) {
	err := ErrActiveOrdersBlockUngroup.WithDetail("group %s", "g1")
	if !errors.Is(err, ErrActiveOrdersBlockUngroup) {
		t.Error("expected detailed error to match its sentinel")
	}
	if errors.Is(err, ErrActiveOrdersBlockEmptyChange) {
		t.Error("expected different codes not to match")
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("row version changed")
	err := ErrConcurrentModification.Wrap(cause)

	if !errors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable")
	}
	if CodeOf(err) != "concurrent_modification" {
		t.Errorf("CodeOf() = %q", CodeOf(err))
	}
	if ErrConcurrentModification.Err != nil {
		t.Error("Wrap must not mutate the sentinel")
	}
}
