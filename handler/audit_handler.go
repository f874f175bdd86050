package handler

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/ratewise/bill-audit/dto"
	"github.com/ratewise/bill-audit/service"
)

type BillHandler struct {
	auditService *service.AuditService
	maxFileSize  int64
	logger       zerolog.Logger
}

func NewBillHandler(auditService *service.AuditService, maxFileSize int64, logger zerolog.Logger) *BillHandler {
	return &BillHandler{
		auditService: auditService,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// AnalyzeBill handles POST /bills/analyze and returns the audit as JSON.
func (h *BillHandler) AnalyzeBill(c *gin.Context) {
	response, ok := h.processUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, response)
}

// RenderReport handles POST /bills/report and returns an HTML report.
func (h *BillHandler) RenderReport(c *gin.Context) {
	response, ok := h.processUpload(c)
	if !ok {
		return
	}
	c.HTML(http.StatusOK, "report.html", buildReportView(response))
}

// RenderProposal handles POST /bills/proposal and returns a rendered PDF.
func (h *BillHandler) RenderProposal(c *gin.Context) {
	response, ok := h.processUpload(c)
	if !ok {
		return
	}

	pdfData, err := service.RenderProposalPDF(response)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to render proposal", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="savings-proposal.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdfData)
}

// processUpload reads the multipart bill upload and runs the audit pipeline.
// On failure it writes the error response and returns ok=false.
func (h *BillHandler) processUpload(c *gin.Context) (*dto.BillAuditResponse, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Bill file is required", err)
		return nil, false
	}

	request := &dto.AnalyzeBillRequest{
		File:        fileHeader,
		CurrentRate: c.PostForm("current_rate"),
		OfferRate:   c.PostForm("offer_rate"),
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return nil, false
	}
	if fileHeader.Size > h.maxFileSize {
		h.sendError(c, http.StatusBadRequest,
			fmt.Sprintf("File exceeds maximum size of %d bytes", h.maxFileSize), nil)
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return nil, false
	}
	defer file.Close()

	pdfData, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return nil, false
	}

	opts := service.AnalyzeOptions{
		CurrentRate: parseRateParam(request.CurrentRate),
		OfferRate:   parseRateParam(request.OfferRate),
	}

	response, err := h.auditService.AnalyzeBill(c.Request.Context(), pdfData, opts)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPDF) || errors.Is(err, service.ErrNoTextContent) {
			h.sendError(c, http.StatusUnprocessableEntity, "Could not extract text from the document", err)
		} else {
			h.sendError(c, http.StatusInternalServerError, "Failed to analyze bill", err)
		}
		return nil, false
	}

	return response, true
}

// parseRateParam converts a form rate field to a number. Malformed or
// non-finite values are treated as absent, never coerced to zero.
func parseRateParam(raw string) *float64 {
	if raw == "" {
		return nil
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil
	}
	return &rate
}

// sendError sends a structured error response.
func (h *BillHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Error().Err(err).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "AUDIT_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
