package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	appErrors "github.com/charlesng35/catalog/pkg/errors"
	"github.com/charlesng35/catalog/pkg/pagination"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSuccessBuildsEnvelope(t *testing.T) {
	env := Success("Companies fetched successfully", []string{"a"}, pagination.New(1, 1, 10))

	if !env.Succeed {
		t.Fatal("expected succeed flag to be true")
	}
	if env.Message != "Companies fetched successfully" {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if env.Meta == nil {
		t.Fatal("expected meta to be set")
	}
}

func TestFailureDefaults(t *testing.T) {
	env := Failure("", nil, nil)

	if env.Succeed {
		t.Fatal("expected succeed flag to be false")
	}
	if env.Message != defaultErrorMessage {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if env.Result == nil {
		t.Fatal("expected empty details object in result")
	}
}

func TestOKWritesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	OK(ctx, Success("ok", gin.H{"id": "1"}, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["succeed"] != true {
		t.Fatal("expected succeed=true in payload")
	}
	if _, ok := body["meta"]; ok {
		t.Fatal("expected meta to be omitted when nil")
	}
}

func TestErrorWithNotFoundMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	meta := pagination.New(0, 1, 10)
	Error(ctx, appErrors.NotFound("No categories found").WithDetails([]any{}).WithMeta(meta))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d got %d", http.StatusNotFound, rec.Code)
	}

	var resp struct {
		Succeed bool            `json:"succeed"`
		Message string          `json:"message"`
		Result  []any           `json:"result"`
		Meta    pagination.Meta `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Succeed {
		t.Fatal("expected succeed to be false")
	}
	if resp.Message != "No categories found" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if resp.Meta != meta {
		t.Fatalf("unexpected meta %+v", resp.Meta)
	}
}

func TestErrorWithGenericError(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(rec)

	Error(ctx, errors.New("dial tcp 127.0.0.1:6379: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d got %d", http.StatusInternalServerError, rec.Code)
	}

	var resp Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Message != appErrors.ErrInternalServer.Message {
		t.Fatalf("expected canned message, got %q", resp.Message)
	}
}
