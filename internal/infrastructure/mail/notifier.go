package mail

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
)

// Dialer sends composed messages; *gomail.Dialer satisfies it
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type notifier struct {
	dialer     Dialer
	from       string
	fallbackTo string
	logger     *zap.Logger
}

// NewNotifier sends escalation emails through the configured SMTP server
func NewNotifier(cfg *config.SMTPConfig, logger *zap.Logger) repository.Notifier {
	return NewNotifierWithDialer(
		gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		cfg.From,
		cfg.FallbackTo,
		logger,
	)
}

func NewNotifierWithDialer(d Dialer, from, fallbackTo string, logger *zap.Logger) repository.Notifier {
	return &notifier{dialer: d, from: from, fallbackTo: fallbackTo, logger: logger}
}

// NotifyEscalation mails the authority of the event, or the fallback
// address when the authority has none.
func (n *notifier) NotifyEscalation(ctx context.Context, event domain.EscalationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	to := event.Authority.Email
	if to == "" {
		to = n.fallbackTo
	}
	if to == "" {
		return fmt.Errorf("no recipient for escalation %s", event.EventID)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", n.from)
	msg.SetHeader("To", to)
	if n.fallbackTo != "" && n.fallbackTo != to {
		msg.SetHeader("Cc", n.fallbackTo)
	}
	msg.SetHeader("Subject", Subject(event))
	msg.SetBody("text/plain", PlainBody(event))
	msg.AddAlternative("text/html", htmlBody(event))

	if err := n.dialer.DialAndSend(msg); err != nil {
		n.logger.Error("Failed to send escalation email",
			zap.String("event_id", event.EventID.String()),
			zap.String("to", to),
			zap.Error(err))
		return fmt.Errorf("failed to send escalation email: %w", err)
	}

	n.logger.Info("Escalation email sent",
		zap.String("event_id", event.EventID.String()),
		zap.String("to", to),
		zap.Int("complaints", event.Count))
	return nil
}

// Subject is the mail subject line of an escalation
func Subject(e domain.EscalationEvent) string {
	return fmt.Sprintf("[%s] %d %s complaints near %.5f, %.5f", e.City, e.Count, e.Category, e.Center.Lat, e.Center.Lon)
}

// PlainBody renders the text part of an escalation mail
func PlainBody(e domain.EscalationEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", e.Authority.Department)
	fmt.Fprintf(&b, "Citizens of %s filed %d %s complaints around %.5f, %.5f.\n",
		e.City, e.Count, e.Category, e.Center.Lat, e.Center.Lon)
	fmt.Fprintf(&b, "Highest reported intensity: %d/5 (%s).\n", e.MaxIntensity, e.Tier)

	ids := make([]string, len(e.ComplaintIDs))
	for i, id := range e.ComplaintIDs {
		ids[i] = fmt.Sprintf("#%d", id)
	}
	fmt.Fprintf(&b, "Complaints: %s\n", strings.Join(ids, ", "))

	if len(e.SuggestedActions) > 0 {
		b.WriteString("\nSuggested actions:\n")
		for _, a := range e.SuggestedActions {
			fmt.Fprintf(&b, "  - %s\n", a)
		}
	}
	fmt.Fprintf(&b, "\nReference: %s\n", e.EventID)
	return b.String()
}

func htmlBody(e domain.EscalationEvent) string {
	lines := strings.Split(strings.TrimRight(PlainBody(e), "\n"), "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return "<p>" + strings.Join(lines, "<br>") + "</p>"
}
