package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	if KindOf(NotFound("item not found")) != KindNotFound {
		t.Fatal("expected NOT_FOUND kind")
	}
	if KindOf(Conflict("already accepted")) != KindConflict {
		t.Fatal("expected CONFLICT kind")
	}
	if KindOf(errors.New("boom")) != KindInternal {
		t.Fatal("expected plain errors to map to INTERNAL_ERROR")
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("propose failed: %w", Forbidden("not the offer item owner"))
	if !IsKind(err, KindForbidden) {
		t.Fatal("expected FORBIDDEN kind through wrap")
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal("reserve items", cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected Internal to unwrap to cause")
	}
}
