package utils

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ratewise/bill-audit/dto"
)

// utilityAlias maps a recognition pattern to the canonical utility name.
// Utility names on bills vary in formatting ("Con Edison" vs "ConEd" vs
// "Consolidated Edison"), so canonicalization goes through an ordered alias
// table evaluated top-to-bottom, first match wins.
type utilityAlias struct {
	pattern   *regexp.Regexp
	canonical string
}

var utilityAliases = []utilityAlias{
	{regexp.MustCompile(`(?i)consolidated\s+edison|con\s*ed(?:ison)?\b`), "Con Edison"},
	{regexp.MustCompile(`(?i)national\s+grid`), "National Grid"},
	{regexp.MustCompile(`(?i)public\s+service\s+electric|pse&?g`), "PSE&G"},
	{regexp.MustCompile(`(?i)pacific\s+gas\s+(?:and|&)\s+electric|pg&e`), "PG&E"},
	{regexp.MustCompile(`(?i)commonwealth\s+edison|com\s*ed\b`), "ComEd"},
	{regexp.MustCompile(`(?i)southern\s+california\s+edison|sce\b`), "Southern California Edison"},
	{regexp.MustCompile(`(?i)san\s+diego\s+gas\s+(?:and|&)\s+electric|sdg&e`), "SDG&E"},
	{regexp.MustCompile(`(?i)socal\s*gas|southern\s+california\s+gas`), "SoCalGas"},
	{regexp.MustCompile(`(?i)duke\s+energy`), "Duke Energy"},
	{regexp.MustCompile(`(?i)eversource`), "Eversource"},
	{regexp.MustCompile(`(?i)xcel\s+energy`), "Xcel Energy"},
	{regexp.MustCompile(`(?i)dominion\s+(?:energy|virginia)`), "Dominion Energy"},
	{regexp.MustCompile(`(?i)georgia\s+power`), "Georgia Power"},
	{regexp.MustCompile(`(?i)florida\s+power\s+(?:and|&)\s+light|fpl\b`), "Florida Power & Light"},
	{regexp.MustCompile(`(?i)baltimore\s+gas\s+(?:and|&)\s+electric|bge\b`), "BGE"},
	{regexp.MustCompile(`(?i)peoples\s+gas`), "Peoples Gas"},
	{regexp.MustCompile(`(?i)nicor\s+gas`), "Nicor Gas"},
	{regexp.MustCompile(`(?i)ameren`), "Ameren"},
	{regexp.MustCompile(`(?i)central\s+hudson`), "Central Hudson"},
	{regexp.MustCompile(`(?i)orange\s+(?:and|&)\s+rockland`), "Orange & Rockland"},
	{regexp.MustCompile(`(?i)nyseg|new\s+york\s+state\s+electric`), "NYSEG"},
	{regexp.MustCompile(`(?i)national\s+fuel`), "National Fuel"},
}

// fallbackUtilityRegex catches an otherwise unknown company header: a
// capitalized phrase immediately followed by "Bill", "Invoice" or "Statement".
var fallbackUtilityRegex = regexp.MustCompile(`([A-Z][A-Za-z&'.\- ]{2,40}?)\s+(?:Bill|Invoice|Statement)\b`)

// Label phrase sets for monetary concepts. Alternation order is documentation
// of priority only; within one line any phrase hit counts the same.
var (
	totalDueLabelRegex = regexp.MustCompile(`(?i)total\s+amount\s+due|amount\s+due|total\s+due|please\s+pay|total\s+current\s+charges`)
	deliveryLabelRegex = regexp.MustCompile(`(?i)delivery\s+charges|delivery\s+services|total\s+delivery|distribution\s+charges`)
	supplyLabelRegex   = regexp.MustCompile(`(?i)supply\s+charges|supply\s+services|total\s+supply|generation\s+charges|energy\s+supply`)
	taxesLabelRegex    = regexp.MustCompile(`(?i)taxes\s+and\s+(?:fees|surcharges)|taxes\s*&\s*(?:fees|surcharges)|sales\s+tax|total\s+tax(?:es)?`)
)

const longFormDate = `(?:January|February|March|April|May|June|July|August|September|October|November|December|Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\.?\s+[0-9]{1,2},?\s+[0-9]{4}`

// Billing-period cascade: a phrase-anchored long-form pattern first, then a
// bare numeric date pair with no anchor required.
var billingPeriodPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)billing\s+period[:\s]*(` + longFormDate + `)\s*(?:to|through|[-–—])\s*(` + longFormDate + `)`),
	regexp.MustCompile(`([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})\s*(?:to|[-–])\s*([0-9]{1,2}[/-][0-9]{1,2}[/-][0-9]{2,4})`),
}

// Account-number cascade. Each pattern requires at least 6 trailing
// digits/dashes to reject false positives on short numbers.
var accountNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)account\s*#[:\s]*([0-9][0-9\-]{5,})`),
	regexp.MustCompile(`(?i)account\s*(?:number|no\.?)[:\s]*([0-9][0-9\-]{5,})`),
	regexp.MustCompile(`(?i)acct\.?\s*(?:no\.?|#)?[:\s]*([0-9][0-9\-]{5,})`),
}

// Usage cascades: a structural phrase is preferred over a bare number+unit
// anywhere in the text.
var (
	kwhPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total\s+(?:electric(?:ity)?\s+)?(?:use|usage)[:\s]*([0-9,]+(?:\.[0-9]+)?)\s*kwh`),
		regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]+)?)\s*kwh`),
	}
	thermsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total\s+gas\s+(?:use|usage)[:\s]*([0-9,]+(?:\.[0-9]+)?)\s*therms?`),
		regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]+)?)\s*therms?`),
	}
	ccfPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)total\s+gas\s+(?:use|usage)[:\s]*([0-9,]+(?:\.[0-9]+)?)\s*ccf`),
		regexp.MustCompile(`(?i)([0-9,]+(?:\.[0-9]+)?)\s*ccf`),
	}
)

// conversionFactorRegex finds an in-text ccf→therms conversion factor.
var conversionFactorRegex = regexp.MustCompile(`(?i)(?:conversion|therm)\s*factor[:\s]*([0-9]+(?:\.[0-9]+)?)`)

// ParseBillText extracts structured billing facts from raw bill text. It is a
// total function: any input, including the empty string, yields a valid
// BillAudit. Absence of a match yields a null field, never an error.
func ParseBillText(text string) dto.BillAudit {
	return dto.BillAudit{
		Utility:       ExtractUtilityName(text),
		AccountNumber: ExtractAccountNumber(text),
		BillingPeriod: ExtractBillingPeriod(text),
		Totals:        ExtractTotals(text),
		Usage:         ExtractUsage(text),
		Meta: dto.AuditMeta{
			ParsedAt:   time.Now().UTC(),
			Confidence: dto.ConfidenceHeuristic,
		},
	}
}

// ExtractUtilityName resolves the utility via the alias table, then the
// structural header fallback, then the sentinel. Identification never fails.
func ExtractUtilityName(text string) string {
	for _, alias := range utilityAliases {
		if alias.pattern.MatchString(text) {
			return alias.canonical
		}
	}

	if matches := fallbackUtilityRegex.FindStringSubmatch(text); len(matches) > 1 {
		if name := strings.TrimSpace(matches[1]); name != "" {
			return name
		}
	}

	return dto.UnknownUtility
}

// ExtractAccountNumber returns the first label-anchored account number with
// at least 6 digits/dashes, or nil.
func ExtractAccountNumber(text string) *string {
	for _, pattern := range accountNumberPatterns {
		if matches := pattern.FindStringSubmatch(text); len(matches) > 1 {
			account := matches[1]
			return &account
		}
	}
	return nil
}

// ExtractBillingPeriod returns the raw start/end date strings of the billing
// period, or both nil. Dates are kept as matched text; downstream consumers
// treat them as opaque display strings.
func ExtractBillingPeriod(text string) dto.BillingPeriod {
	for _, pattern := range billingPeriodPatterns {
		if matches := pattern.FindStringSubmatch(text); len(matches) > 2 {
			start, end := matches[1], matches[2]
			return dto.BillingPeriod{Start: &start, End: &end}
		}
	}
	return dto.BillingPeriod{}
}

// ExtractTotals recovers the monetary lines. Only the total due may fall back
// to the document-wide maximum amount; for delivery/supply/taxes the largest
// figure on the page is not evidence of anything.
func ExtractTotals(text string) dto.BillTotals {
	return dto.BillTotals{
		TotalDue:        extractAmount(text, totalDueLabelRegex, true),
		DeliveryCharges: extractAmount(text, deliveryLabelRegex, false),
		SupplyCharges:   extractAmount(text, supplyLabelRegex, false),
		Taxes:           extractAmount(text, taxesLabelRegex, false),
	}
}

// ExtractUsage attempts kWh, therms and ccf independently; a bill may report
// more than one commodity and the consumer decides which one is "the" billing
// unit. When therms is absent but ccf and an in-text conversion factor are
// present, therms is derived as ccf × factor rounded to 2 decimal places.
func ExtractUsage(text string) dto.BillUsage {
	usage := dto.BillUsage{
		ElectricityKwh: extractQuantity(text, kwhPatterns),
		GasTherms:      extractQuantity(text, thermsPatterns),
		GasCcf:         extractQuantity(text, ccfPatterns),
	}

	if usage.GasTherms == nil && usage.GasCcf != nil {
		if matches := conversionFactorRegex.FindStringSubmatch(text); len(matches) > 1 {
			if factor, err := strconv.ParseFloat(matches[1], 64); err == nil && factor > 0 {
				derived := math.Round(*usage.GasCcf*factor*100) / 100
				usage.GasTherms = &derived
			}
		}
	}

	return usage
}

func extractQuantity(text string, patterns []*regexp.Regexp) *float64 {
	for _, pattern := range patterns {
		matches := pattern.FindStringSubmatch(text)
		if len(matches) < 2 {
			continue
		}
		cleaned := strings.ReplaceAll(matches[1], ",", "")
		quantity, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || quantity < 0 {
			continue
		}
		return &quantity
	}
	return nil
}
