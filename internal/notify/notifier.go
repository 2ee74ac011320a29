package notify

import (
	"context"

	"urban-turban/internal/model"

	"github.com/rs/zerolog"
)

// Notifier delivers best-effort order notifications. Implementations must
// never block checkout on delivery and must swallow their own failures.
type Notifier interface {
	OrderConfirmed(ctx context.Context, user *model.User, order *model.Order)
}

// LogNotifier writes the confirmation as a structured log event. It stands in
// for a real email/SMS sender; there are no retries and no delivery
// guarantees.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("notifier", "log").Logger(),
	}
}

// OrderConfirmed logs the pseudo-email.
func (n *LogNotifier) OrderConfirmed(_ context.Context, user *model.User, order *model.Order) {
	n.logger.Info().
		Str("to", user.Email).
		Str("order_id", order.ID.String()).
		Str("provider", order.PaymentProvider).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("order confirmation sent")
}
