package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ratewise/bill-audit/dto"
	"github.com/ratewise/bill-audit/utils"
)

// Notifier relays a finished audit to an external channel. It consumes the
// records read-only and must never block or fail the core computation.
type Notifier interface {
	SendAuditSummary(ctx context.Context, audit dto.BillAudit, savings dto.SavingsResult) error
}

// AnalyzeOptions carries optional caller-supplied rate overrides, $/unit.
type AnalyzeOptions struct {
	CurrentRate *float64
	OfferRate   *float64
}

type AuditService struct {
	pdfProcessor PDFProcessor
	notifier     Notifier
	logger       zerolog.Logger
}

func NewAuditService(pdfProcessor PDFProcessor, notifier Notifier, logger zerolog.Logger) *AuditService {
	return &AuditService{
		pdfProcessor: pdfProcessor,
		notifier:     notifier,
		logger:       logger,
	}
}

// AnalyzeBill runs the full pipeline: PDF bytes → raw text → heuristic
// extraction → savings computation. Extraction itself never fails; the only
// error paths are an undecodable upload and a document with no text at all.
func (s *AuditService) AnalyzeBill(ctx context.Context, pdfData []byte, opts AnalyzeOptions) (*dto.BillAuditResponse, error) {
	text, pageCount, err := s.pdfProcessor.ExtractText(pdfData)
	if err != nil {
		return nil, fmt.Errorf("text extraction: %w", err)
	}

	audit := utils.ParseBillText(text)
	savings := ComputeSavings(&audit, opts.CurrentRate, opts.OfferRate)

	s.logger.Info().
		Str("utility", audit.Utility).
		Int("pages", pageCount).
		Bool("insufficient_data", savings.InsufficientData).
		Msg("bill analyzed")

	response := &dto.BillAuditResponse{
		Audit:       audit,
		Savings:     savings,
		PageCount:   pageCount,
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	}

	s.notifyAsync(audit, savings)

	return response, nil
}

// notifyAsync fires the notification relay without blocking the response.
// Delivery failures are logged and otherwise ignored.
func (s *AuditService) notifyAsync(audit dto.BillAudit, savings dto.SavingsResult) {
	if s.notifier == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.SendAuditSummary(ctx, audit, savings); err != nil {
			s.logger.Warn().Err(err).Msg("audit notification failed")
		}
	}()
}
