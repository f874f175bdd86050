package dto

import (
	"errors"
	"mime/multipart"
)

// AnalyzeBillRequest represents the incoming multipart request.
// Rates arrive as free-form strings; the handler is responsible for
// rejecting non-numeric values before they reach the calculator.
type AnalyzeBillRequest struct {
	File        *multipart.FileHeader `form:"file" binding:"required"`
	CurrentRate string                `form:"current_rate"`
	OfferRate   string                `form:"offer_rate"`
}

// Validate performs basic validation on the request.
func (r *AnalyzeBillRequest) Validate() error {
	if r.File == nil {
		return errors.New("bill file is required")
	}
	if r.File.Size == 0 {
		return errors.New("bill file is empty")
	}
	return nil
}
