package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIncludesInternal(t *testing.T) {
	internal := stdErrors.New("boom")
	err := Wrap(internal, "failed")

	if err.Error() != "failed: boom" {
		t.Fatalf("unexpected error string: %s", err.Error())
	}
}

func TestWithInternalCopies(t *testing.T) {
	base := New("TEST", "test", 400)
	with := base.WithInternal(stdErrors.New("oops"))

	if with == base {
		t.Fatal("expected WithInternal to return a copy")
	}

	if base.Internal != nil {
		t.Fatal("expected original error to remain unchanged")
	}

	if with.Internal == nil {
		t.Fatal("expected internal error to be set")
	}
}

func TestWithMetaAndDetailsCopy(t *testing.T) {
	base := NotFound("No categories found")
	meta := map[string]int{"totalItems": 0}
	withMeta := base.WithMeta(meta).WithDetails([]string{})

	if base.Meta != nil || base.Details != nil {
		t.Fatal("expected base error to stay untouched")
	}
	if withMeta.Meta == nil {
		t.Fatal("expected meta to be attached")
	}
	if withMeta.Details == nil {
		t.Fatal("expected details to be attached")
	}
	if withMeta.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", withMeta.StatusCode)
	}
}

func TestFromError(t *testing.T) {
	appErr := ErrNotFound
	if out := FromError(appErr); out != appErr {
		t.Fatal("expected FromError to return the same AppError instance")
	}

	raw := stdErrors.New("raw")
	out := FromError(raw)
	if out.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %s", out.Code)
	}
	if out.Internal == nil {
		t.Fatal("expected internal error to be attached")
	}

	wrapped := fmt.Errorf("service: %w", Conflict("Product with this barcode already exists."))
	if out := FromError(wrapped); out.StatusCode != http.StatusConflict {
		t.Fatalf("expected conflict to survive wrapping, got %d", out.StatusCode)
	}
}

func TestKindHelpers(t *testing.T) {
	if !IsNotFound(NotFound("Company not found")) {
		t.Fatal("expected NotFound kind")
	}
	if !IsConflict(fmt.Errorf("wrap: %w", Conflict("dup"))) {
		t.Fatal("expected Conflict kind through wrapping")
	}
	if IsNotFound(stdErrors.New("plain")) {
		t.Fatal("plain errors must not match NotFound")
	}
}

func TestNewBadRequest(t *testing.T) {
	err := NewBadRequest("invalid payload")
	if err.Code != ErrBadRequest.Code {
		t.Fatalf("expected %s, got %s", ErrBadRequest.Code, err.Code)
	}
	if err.Message != "invalid payload" {
		t.Fatalf("unexpected message: %s", err.Message)
	}
	if err.StatusCode != ErrBadRequest.StatusCode {
		t.Fatalf("unexpected status: %d", err.StatusCode)
	}
}
