package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSendCode(t *testing.T) {
	var captured sendRequest
	var idempotencyKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/emails" || r.Method != http.MethodPost {
			t.Errorf("%s %s, want POST /emails", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer resend-key" {
			t.Errorf("Authorization = %q", got)
		}
		idempotencyKey = r.Header.Get("Idempotency-Key")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m := NewResendMailer(srv.URL, "resend-key", "MetaStar Security <auth@metastar.site>")
	if err := m.SendCode(context.Background(), "a@x.com", "123456"); err != nil {
		t.Fatalf("SendCode: %v", err)
	}

	if captured.To != "a@x.com" {
		t.Errorf("to = %q", captured.To)
	}
	if captured.From != "MetaStar Security <auth@metastar.site>" {
		t.Errorf("from = %q", captured.From)
	}
	if captured.Subject != "Your Access Code: 123456" {
		t.Errorf("subject = %q", captured.Subject)
	}
	if !strings.Contains(captured.HTML, "123456") {
		t.Error("html body does not embed the code")
	}
	if idempotencyKey == "" {
		t.Error("Idempotency-Key header missing")
	}
}

func TestSendCodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	m := NewResendMailer(srv.URL, "resend-key", "auth@metastar.site")
	if err := m.SendCode(context.Background(), "a@x.com", "123456"); err == nil {
		t.Error("non-2xx response did not surface as an error")
	}
}
