package notifications

import (
	"context"
	"log/slog"
)

type Mailer interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

type Service struct {
	store       *Store
	Mailer      Mailer
	DefaultFrom string
}

func New(store *Store, mailer Mailer, defaultFrom string) *Service {
	if defaultFrom == "" {
		defaultFrom = "no-reply@example.com"
	}
	return &Service{store: store, Mailer: mailer, DefaultFrom: defaultFrom}
}

// Notify records the notification and optionally mirrors it by email. Email
// failures are logged and never surface to the caller.
func (s *Service) Notify(ctx context.Context, tenantID, userID, ntype, title, body string) error {
	if userID == "" {
		return nil
	}
	if err := s.store.Create(ctx, tenantID, userID, ntype, title, body); err != nil {
		return err
	}
	if s.Mailer == nil {
		return nil
	}

	email, err := s.store.UserEmail(ctx, tenantID, userID)
	if err != nil {
		slog.Warn("notification email lookup failed", "err", err)
		return nil
	}
	if email == "" {
		return nil
	}
	if err := s.Mailer.Send(ctx, s.DefaultFrom, email, title, body); err != nil {
		slog.Warn("notification email send failed", "err", err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, tenantID, userID string, limit, offset int) ([]Notification, error) {
	return s.store.List(ctx, tenantID, userID, limit, offset)
}

func (s *Service) CountUnread(ctx context.Context, tenantID, userID string) (int, error) {
	return s.store.CountUnread(ctx, tenantID, userID)
}

func (s *Service) MarkRead(ctx context.Context, tenantID, userID, notificationID string) error {
	return s.store.MarkRead(ctx, tenantID, userID, notificationID)
}
