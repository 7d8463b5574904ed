package email

import (
	"context"
	"strings"
	"testing"

	"officetime/internal/platform/config"
)

func TestNewReturnsNoopWhenDisabled(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "mail.example.com"})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer when email is disabled, got %T", mailer)
	}
	if err := mailer.Send(context.Background(), "a@example.com", "b@example.com", "s", "b"); err != nil {
		t.Fatalf("noop send must never fail: %v", err)
	}

	mailer = New(config.Config{EmailEnabled: true, SMTPHost: ""})
	if _, ok := mailer.(noopMailer); !ok {
		t.Fatalf("expected noop mailer without a host, got %T", mailer)
	}
}

func TestNotificationMessageShape(t *testing.T) {
	msg := string(notificationMessage("no-reply@example.com", "jo@example.com", "Leave approved", "Your vacation request was approved."))

	header, body, found := strings.Cut(msg, "\r\n\r\n")
	if !found {
		t.Fatal("expected blank line between headers and body")
	}
	if !strings.Contains(header, "Subject: Leave approved") {
		t.Fatalf("missing subject header: %q", header)
	}
	if !strings.Contains(header, "Content-Type: text/plain") {
		t.Fatalf("missing content type: %q", header)
	}
	if body != "Your vacation request was approved." {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestNotificationMessageStripsHeaderInjection(t *testing.T) {
	msg := string(notificationMessage("a@example.com", "b@example.com", "hi\r\nBcc: evil@example.com", "body"))
	if strings.Contains(msg, "\nBcc:") {
		t.Fatalf("subject newlines must not create headers: %q", msg)
	}
}
