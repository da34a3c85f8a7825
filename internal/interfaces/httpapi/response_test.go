package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/fedenh3/proyecto-cava/internal/usecase"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	if got, _ := body["apiVersion"].(string); got != "2.0" {
		t.Fatalf("apiVersion = %v, want 2.0", body["apiVersion"])
	}
	return body
}

func TestWriteSuccess_WrapsDataInEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q", ct)
	}

	body := decodeEnvelope(t, rec)
	if _, ok := body["data"]; !ok {
		t.Fatal("success envelope missing data")
	}
	if _, ok := body["error"]; ok {
		t.Fatal("success envelope carries error")
	}
}

func TestWriteError_CarriesStatusAndReason(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	body := decodeEnvelope(t, rec)
	errObj, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatal("error envelope missing error object")
	}
	if got, _ := errObj["status"].(string); got != "INVALID_ARGUMENT" {
		t.Fatalf("error status = %v, want INVALID_ARGUMENT", errObj["status"])
	}
	items, ok := errObj["errors"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("error items = %v, want one item", errObj["errors"])
	}
	item := items[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "invalidInput" {
		t.Fatalf("error reason = %v, want invalidInput", item["reason"])
	}
}

func TestWriteInternalError_HidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	errObj := body["error"].(map[string]any)
	if got, _ := errObj["message"].(string); got != "internal server error" {
		t.Fatalf("message = %q, must not leak detail", got)
	}
}

func TestMapError_Sentinels(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantReason string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tt := range tests {
		mapped := mapError(context.Background(), fmt.Errorf("wrap: %w", tt.err))
		if mapped.HTTPStatus != tt.wantStatus || mapped.Reason != tt.wantReason {
			t.Errorf("mapError(%v) = %d/%s, want %d/%s",
				tt.err, mapped.HTTPStatus, mapped.Reason, tt.wantStatus, tt.wantReason)
		}
	}
}
