package http

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/billscan/backend/internal/domain"
	"github.com/gin-gonic/gin"
)

// imageFormField is the multipart field carrying the receipt image
const imageFormField = "image"

// ReceiptScanner is the usecase surface the handlers depend on
type ReceiptScanner interface {
	ScanReceipt(ctx context.Context, imageData []byte, contentType string) (*domain.ScanResult, error)
	Categorize(ctx context.Context, description string) (string, error)
	ExtractFields(text string) domain.ExtractedFields
}

// ExpenseManager is the usecase surface for shared expenses
type ExpenseManager interface {
	CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (*domain.Expense, error)
	BuildReport(lines []domain.ExpenseLine) domain.ExpenseReport
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanner        ReceiptScanner
	expenses       ExpenseManager
	maxUploadBytes int64
}

// NewHandler creates a new HTTP handler
func NewHandler(scanner ReceiptScanner, expenses ExpenseManager, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{
		scanner:        scanner,
		expenses:       expenses,
		maxUploadBytes: maxUploadBytes,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "billscan-backend",
		"version": "1.0.0",
	})
}

// ScanReceipt accepts a multipart image upload and returns amount, description and category
func (h *Handler) ScanReceipt(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Receipt scanning not configured"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	data, contentType, err := h.readImage(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.scanner.ScanReceipt(c.Request.Context(), data, contentType)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Categorize resolves a category for a JSON description
func (h *Handler) Categorize(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Categorization not configured"})
		return
	}

	var req domain.CategorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
		return
	}

	category, err := h.scanner.Categorize(c.Request.Context(), req.Description)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description required"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.CategorizeResponse{Category: category})
}

// ExtractText runs the field heuristics over OCR text supplied directly
func (h *Handler) ExtractText(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Extraction not configured"})
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	c.JSON(http.StatusOK, h.scanner.ExtractFields(req.Text))
}

// CreateExpense categorizes a shared expense and returns the record
func (h *Handler) CreateExpense(c *gin.Context) {
	if h.expenses == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Expenses not configured"})
		return
	}

	var req domain.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "group_id, payer_id, amount and description are required"})
		return
	}

	expense, err := h.expenses.CreateExpense(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ExpenseReport totals the submitted expenses per category
func (h *Handler) ExpenseReport(c *gin.Context) {
	if h.expenses == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Expenses not configured"})
		return
	}

	var req domain.ExpenseReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expenses list required"})
		return
	}

	c.JSON(http.StatusOK, h.expenses.BuildReport(req.Expenses))
}

// readImage pulls the uploaded file out of the multipart form
func (h *Handler) readImage(c *gin.Context) ([]byte, string, error) {
	fileHeader, err := c.FormFile(imageFormField)
	if err != nil {
		// multipart parsing does not always wrap the limit error
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", domain.ErrUploadTooLarge
		}
		return nil, "", domain.ErrNoImage
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", domain.ErrNoImage
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", domain.ErrNoImage
	}
	if len(data) == 0 {
		return nil, "", domain.ErrNoImage
	}

	return data, fileHeader.Header.Get("Content-Type"), nil
}

// respondError maps domain errors onto HTTP status codes
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUploadTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds upload size limit"})
	case errors.Is(err, domain.ErrImageDecode):
		log.Printf("[SCAN] request %s: %v", GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode image"})
	case errors.Is(err, domain.ErrOCRFailure):
		log.Printf("[SCAN] request %s: %v", GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process image"})
	default:
		log.Printf("[SCAN] request %s: unexpected error: %v", GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
