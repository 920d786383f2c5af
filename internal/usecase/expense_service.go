package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/billscan/backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExpenseServiceConfig holds configuration for the expense service
type ExpenseServiceConfig struct {
	ClassifierTimeout time.Duration
}

// ExpenseService categorizes shared expenses and builds per-category reports.
// Nothing is persisted: every call works only on its own input.
type ExpenseService struct {
	resolver *CategoryResolver
	now      func() time.Time
	newID    func() string
}

// NewExpenseService creates a new expense service with dependencies
func NewExpenseService(
	classifier domain.Classifier,
	metrics domain.MetricsRecorder,
	config ExpenseServiceConfig,
) *ExpenseService {
	return &ExpenseService{
		resolver: NewCategoryResolver(classifier, metrics, CategoryResolverConfig{
			Timeout: config.ClassifierTimeout,
		}),
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// CreateExpense validates the expense, categorizes its description and returns the record.
// A classifier outage still yields a record, categorized as domain.FallbackCategory.
func (s *ExpenseService) CreateExpense(ctx context.Context, req domain.CreateExpenseRequest) (*domain.Expense, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrInvalidRequest)
	}
	if strings.TrimSpace(req.GroupID) == "" || strings.TrimSpace(req.PayerID) == "" {
		return nil, fmt.Errorf("%w: group_id and payer_id are required", domain.ErrInvalidRequest)
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidRequest)
	}

	category := s.resolver.Resolve(ctx, description)

	expense := &domain.Expense{
		ID:          s.newID(),
		GroupID:     req.GroupID,
		PayerID:     req.PayerID,
		Amount:      amount.StringFixed(2),
		Description: description,
		Category:    category,
		CreatedAt:   s.now().UTC(),
	}

	log.Printf("[EXPENSE] group=%s payer=%s amount=%s category=%q",
		expense.GroupID, expense.PayerID, expense.Amount, expense.Category)

	return expense, nil
}

// BuildReport totals expenses per category. Lines with unparseable amounts are skipped
// and counted; categories keep the order in which they first appear.
func (s *ExpenseService) BuildReport(lines []domain.ExpenseLine) domain.ExpenseReport {
	grandTotal := decimal.Zero
	totals := make(map[string]decimal.Decimal)
	index := make(map[string]int)
	categories := make([]domain.CategoryTotal, 0)
	skipped := 0

	for _, line := range lines {
		amount, err := parseAmount(line.Amount)
		if err != nil {
			log.Printf("[REPORT] Skipping expense with invalid amount %q", line.Amount)
			skipped++
			continue
		}

		line.Description = defaultIfBlank(line.Description, domain.NoDescription)
		line.PayerName = defaultIfBlank(line.PayerName, domain.UnknownPayer)
		line.Category = defaultIfBlank(line.Category, domain.FallbackCategory)
		line.Amount = amount.StringFixed(2)

		i, ok := index[line.Category]
		if !ok {
			i = len(categories)
			index[line.Category] = i
			categories = append(categories, domain.CategoryTotal{Category: line.Category})
		}

		totals[line.Category] = totals[line.Category].Add(amount)
		categories[i].Count++
		categories[i].Expenses = append(categories[i].Expenses, line)
		grandTotal = grandTotal.Add(amount)
	}

	for i := range categories {
		categories[i].Total = totals[categories[i].Category].StringFixed(2)
	}

	return domain.ExpenseReport{
		Categories: categories,
		GrandTotal: grandTotal.StringFixed(2),
		Count:      len(lines) - skipped,
		Skipped:    skipped,
	}
}

// parseAmount reads an amount as printed on a bill: thousands separators are dropped
// and an optional leading currency marker is ignored.
func parseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	for _, prefix := range []string{"₹", "Rs.", "Rs", "RS", "$"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
			break
		}
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}
	return amount, nil
}

func defaultIfBlank(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return strings.TrimSpace(s)
}
