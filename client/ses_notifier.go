package client

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/ratewise/bill-audit/dto"
)

// SESNotifier sends audit summaries over Amazon SES v2.
type SESNotifier struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	toAddress   string
}

// NewSESNotifier creates an SES-backed notifier.
func NewSESNotifier(region, fromAddress, fromName, toAddress string) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}

	return &SESNotifier{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
		toAddress:   toAddress,
	}, nil
}

func (n *SESNotifier) SendAuditSummary(ctx context.Context, audit dto.BillAudit, savings dto.SavingsResult) error {
	subject := fmt.Sprintf("Bill audit: %s", audit.Utility)
	textBody := buildSummaryText(audit, savings)
	from := fmt.Sprintf("%s <%s>", n.fromName, n.fromAddress)

	_, err := n.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{n.toAddress},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildSummaryText(audit dto.BillAudit, savings dto.SavingsResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Utility: %s\n", audit.Utility)
	if audit.AccountNumber != nil {
		fmt.Fprintf(&b, "Account: %s\n", *audit.AccountNumber)
	}
	if audit.Totals.TotalDue != nil {
		fmt.Fprintf(&b, "Total due: $%.2f\n", *audit.Totals.TotalDue)
	}

	if savings.InsufficientData {
		b.WriteString("\nSavings: not enough information to compare supply rates.\n")
	} else {
		fmt.Fprintf(&b, "\nMonthly savings: $%.2f\n", *savings.MonthlySavings)
		fmt.Fprintf(&b, "Annual savings: $%.2f\n", *savings.AnnualSavings)
	}

	fmt.Fprintf(&b, "\nConfidence: %s (heuristic extraction, advisory only)\n", audit.Meta.Confidence)
	return b.String()
}
