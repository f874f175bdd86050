package client

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ratewise/bill-audit/dto"
)

// NoopNotifier logs instead of sending. Used when email delivery is disabled.
type NoopNotifier struct {
	logger zerolog.Logger
}

func NewNoopNotifier(logger zerolog.Logger) *NoopNotifier {
	return &NoopNotifier{logger: logger}
}

func (n *NoopNotifier) SendAuditSummary(_ context.Context, audit dto.BillAudit, savings dto.SavingsResult) error {
	n.logger.Debug().
		Str("utility", audit.Utility).
		Bool("insufficient_data", savings.InsufficientData).
		Msg("email disabled, skipping audit notification")
	return nil
}
