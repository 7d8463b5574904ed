package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestBodyLimitCapsMutatingRequests(t *testing.T) {
	var readErr error
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("payload well past the cap"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if readErr == nil {
		t.Fatal("expected oversized body read to fail")
	}
}

func TestBodyLimitLeavesReadsUntouched(t *testing.T) {
	handler := BodyLimit(8)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			t.Fatalf("GET body must not be capped: %v", err)
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", strings.NewReader("payload well past the cap"))
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
