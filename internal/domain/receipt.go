package domain

const (
	// DefaultDescription is used when no description line is found in the OCR text
	DefaultDescription = "Bill Payment"

	// FallbackCategory is used when the classifier is unreachable or errors
	FallbackCategory = "Uncategorized"
)

// AmountSource records which scan produced the extracted amount
type AmountSource string

const (
	AmountSourceTotalLine AmountSource = "total_line"
	AmountSourceFallback  AmountSource = "fallback"
	AmountSourceNone      AmountSource = "none"
)

// ExtractedFields is the output of the field extractor for one block of OCR text
type ExtractedFields struct {
	Amount       string       `json:"amount"`      // "" when no candidate was found
	Description  string       `json:"description"` // never empty
	AmountSource AmountSource `json:"-"`
}

// ScanResult is the response record for a scanned receipt
type ScanResult struct {
	Amount      string `json:"amount"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// CategorizeRequest represents a request to categorize a free-text description
type CategorizeRequest struct {
	Description string `json:"description" binding:"required"`
}

// CategorizeResponse is returned by the categorize endpoint
type CategorizeResponse struct {
	Category string `json:"category"`
}

// ClassifierRequest is the body sent to the classifier service
type ClassifierRequest struct {
	Description string `json:"description"`
}

// ClassifierResponse is the body returned by the classifier service
type ClassifierResponse struct {
	Category string `json:"category"`
	Error    string `json:"error,omitempty"`
}
