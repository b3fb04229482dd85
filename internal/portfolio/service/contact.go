package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/internal/portfolio/mail"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// ErrMailUnavailable is returned when the relay is down or not configured.
var ErrMailUnavailable = errors.New("mail relay unavailable")

type ContactService struct {
	Sender mail.Sender
}

// Send validates a contact form submission and relays it to the owner.
func (s *ContactService) Send(ctx context.Context, msg domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if missing := msg.Missing(); len(missing) > 0 {
		return badRequest("Missing required fields: "+strings.Join(missing, ", "), missing...)
	}
	if !strings.Contains(msg.Email, "@") {
		return badRequest("Invalid email address")
	}

	if err := s.Sender.Send(ctx, msg); err != nil {
		slogx.FromContext(ctx).Error("contact relay failed", slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrMailUnavailable, err)
	}
	return nil
}
