package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SnapFood-Technologies/waveorder-catalog/internal/api/middleware"
	"github.com/SnapFood-Technologies/waveorder-catalog/internal/models"
	repository "github.com/SnapFood-Technologies/waveorder-catalog/internal/repositories"
	"github.com/SnapFood-Technologies/waveorder-catalog/pkg/sendGrid"
)

// EventLogger records storefront diagnostic events. Logging is a side
// effect of the request path and must never fail it: every failure here
// is logged and swallowed.
type EventLogger interface {
	Log(ctx context.Context, event *models.SystemEvent)
}

type eventLogger struct {
	repo       repository.EventRepository
	mailer     sendGrid.AlertMailer
	alertEmail string
}

func NewEventLogger(repo repository.EventRepository, mailer sendGrid.AlertMailer, alertEmail string) EventLogger {
	return &eventLogger{repo: repo, mailer: mailer, alertEmail: alertEmail}
}

// Log implements EventLogger.
func (l *eventLogger) Log(ctx context.Context, event *models.SystemEvent) {
	logger := middleware.LoggerFromContext(ctx)

	if err := l.repo.InsertEvent(ctx, event); err != nil {
		logger.Error("Failed to persist system event",
			slog.String("kind", event.Kind),
			slog.String("slug", event.Slug),
			slog.Any("error", err))
	}

	if event.Kind != models.EventKindStorefrontError || l.mailer == nil || l.alertEmail == "" {
		return
	}

	subject := fmt.Sprintf("Storefront error on %q", event.Slug)
	body := fmt.Sprintf("kind: %s\nslug: %s\nmessage: %s\nip: %s\nuser agent: %s\nreferrer: %s\n",
		event.Kind, event.Slug, event.Message, event.IP, event.UserAgent, event.Referrer)

	if err := l.mailer.SendAlert(ctx, l.alertEmail, subject, body); err != nil {
		logger.Error("Failed to send storefront alert email",
			slog.String("slug", event.Slug),
			slog.Any("error", err))
	}
}
