package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"paytracker/models"

	"github.com/gin-gonic/gin"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	return c, rec
}

func TestWriteErrorEnvelope(t *testing.T) {
	c, rec := newTestContext()
	writeError(c, newError(errExistentUser, "This user is already registered!"))

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["status"] != float64(409) {
		t.Errorf("status field = %v, want 409", body["status"])
	}
	if body["error"] != "Conflict" {
		t.Errorf("error field = %v, want Conflict", body["error"])
	}
	if body["message"] != "This user is already registered!" {
		t.Errorf("message field = %v", body["message"])
	}
	if _, ok := body["timestamp"]; !ok {
		t.Error("missing timestamp field")
	}
	if _, ok := body["details"]; ok {
		t.Error("details should be omitted when unset")
	}
}

func TestWriteErrorUnknownLeaksNothing(t *testing.T) {
	c, rec := newTestContext()
	writeError(c, errors.New("pq: connection refused at 10.0.0.3"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Internal server error" {
		t.Errorf("message = %v, internal detail must not leak", body["message"])
	}
}

func TestWriteBindingErrorInvalidEnum(t *testing.T) {
	c, rec := newTestContext()
	writeBindingError(c, &models.InvalidTypeError{Value: "SAVINGS"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Invalid transaction type!" {
		t.Errorf("message = %v", body["message"])
	}
	details, _ := body["details"].(string)
	if !strings.Contains(details, "INCOME") || !strings.Contains(details, "EXPENSE") {
		t.Errorf("details = %q, want accepted values listed", details)
	}
}

func TestWriteBindingErrorMalformedBody(t *testing.T) {
	c, rec := newTestContext()
	writeBindingError(c, errors.New("unexpected EOF"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	if body["message"] != "Wrong request!" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestJSONFieldName(t *testing.T) {
	if got := jsonFieldName("DueDate"); got != "dueDate" {
		t.Errorf("jsonFieldName(DueDate) = %q", got)
	}
	if got := jsonFieldName(""); got != "" {
		t.Errorf("jsonFieldName empty = %q", got)
	}
}
