package expense

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scanify/scanify/internal/category"
	"github.com/scanify/scanify/internal/currency"
	"github.com/scanify/scanify/internal/parsing"
	"github.com/scanify/scanify/internal/scanning"
)

// ErrInvalidInput marks errors caused by the caller's request
var ErrInvalidInput = errors.New("invalid input")

// IDGenerator generates unique IDs for expenses
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

// uuidGenerator generates random UUIDs
type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

// defaultTimeSource provides the current time in UTC
type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now().UTC()
}

// Service handles expense operations
type Service struct {
	db          DB
	transcriber scanning.Transcriber
	storage     Storage
	parser      *parsing.Parser
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with default ID generator and time source
func NewService(db DB, transcriber scanning.Transcriber, storage Storage) *Service {
	return NewServiceWithDeps(db, transcriber, storage, &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, transcriber scanning.Transcriber, storage Storage, idGen IDGenerator, timeSrc TimeSource) *Service {
	return &Service{
		db:          db,
		transcriber: transcriber,
		storage:     storage,
		parser:      parsing.NewParser(slog.Default()),
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	filenameSpecial = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	filenameSpaces  = regexp.MustCompile(`\s+`)
)

// sanitizeFilename cleans up a filename by removing special characters and truncating length
func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	ext := filenameSpecial.ReplaceAllString(filepath.Ext(filename), "")
	base := strings.TrimSuffix(filename, filepath.Ext(filename))

	base = filenameSpecial.ReplaceAllString(base, "")
	base = filenameSpaces.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	// Phone cameras produce very long names
	const maxLen = 50
	if len(base) > maxLen {
		base = base[:maxLen]
	}
	if base == "" {
		base = "receipt"
	}
	if ext != "" {
		ext = "." + ext
	}
	return base + ext
}

func requireEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return email, nil
}

// ProcessReceipt stores an uploaded receipt, transcribes it, parses the
// transcript and saves the resulting expense
func (s *Service) ProcessReceipt(email, filename string, data []byte, contentType string) (*Expense, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}

	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		ReceiptsProcessed.WithLabelValues(resultStore).Inc()
		return nil, fmt.Errorf("saving file: %w", err)
	}

	start := time.Now()
	text, err := s.transcriber.Transcribe(data, contentType)
	TranscriptionSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		slog.Error("Failed to transcribe receipt",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"error", err,
		)
		s.removeFile(savedPath)
		if errors.Is(err, scanning.ErrUnsupportedType) {
			ReceiptsProcessed.WithLabelValues(resultUnsupported).Inc()
			return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		ReceiptsProcessed.WithLabelValues(resultTranscription).Inc()
		return nil, fmt.Errorf("transcribing receipt: %w", err)
	}

	expense := s.newExpense(id, email, text, now)
	expense.Filename = savedPath
	expense.ContentType = contentType

	if err := s.db.SaveExpense(expense); err != nil {
		ReceiptsProcessed.WithLabelValues(resultStore).Inc()
		s.removeFile(savedPath)
		return nil, fmt.Errorf("saving expense to database: %w", err)
	}

	ReceiptsProcessed.WithLabelValues(resultParsed).Inc()
	return expense, nil
}

// ProcessText parses an OCR transcript that was produced elsewhere
func (s *Service) ProcessText(email, text string) (*Expense, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}

	expense := s.newExpense(s.idGenerator.Generate(), email, text, s.timeSource.Now())
	if err := s.db.SaveExpense(expense); err != nil {
		ReceiptsProcessed.WithLabelValues(resultStore).Inc()
		return nil, fmt.Errorf("saving expense to database: %w", err)
	}

	ReceiptsProcessed.WithLabelValues(resultParsed).Inc()
	return expense, nil
}

func (s *Service) newExpense(id, email, text string, now time.Time) *Expense {
	receipt := s.parser.Parse(text)
	observeReceipt(receipt)
	slog.Info("Parsed receipt",
		"id", id,
		"merchant", receipt.Merchant,
		"items", len(receipt.Items),
		"total", receipt.Total,
		"currency", currency.Code(receipt.Currency),
	)
	return &Expense{
		ID:        id,
		Email:     email,
		Receipt:   receipt,
		CreatedAt: now,
	}
}

// removeFile is best effort; a leftover file is only logged
func (s *Service) removeFile(path string) {
	if err := s.storage.Delete(path); err != nil {
		slog.Warn("Failed to delete file", "filename", path, "error", err)
	}
}

// GetExpense retrieves an expense by ID
func (s *Service) GetExpense(id string) (*Expense, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return nil, fmt.Errorf("getting expense: %w", err)
	}
	return expense, nil
}

// ListExpenses returns a user's expenses, newest first. A positive limit caps
// the number returned.
func (s *Service) ListExpenses(email string, limit int) ([]*Expense, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	expenses, err := s.db.ListExpenses(email)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	if limit > 0 && len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its file
func (s *Service) DeleteExpense(id string) error {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return fmt.Errorf("getting expense for deletion: %w", err)
	}

	if expense.Filename != "" {
		// Continue with database deletion even if the file is gone
		s.removeFile(expense.Filename)
	}

	if err := s.db.DeleteExpense(id); err != nil {
		return fmt.Errorf("deleting expense from database: %w", err)
	}
	return nil
}

// GetExpenseFile retrieves the uploaded file of an expense
func (s *Service) GetExpenseFile(id string) ([]byte, string, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting expense: %w", err)
	}
	if expense.Filename == "" {
		return nil, "", fmt.Errorf("%w: expense %s has no file", ErrNotFound, id)
	}

	data, err := s.storage.Get(expense.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting expense file: %w", err)
	}

	return data, expense.ContentType, nil
}

// GetReport renders the text report of an expense
func (s *Service) GetReport(id string) (string, error) {
	expense, err := s.db.GetExpense(id)
	if err != nil {
		return "", fmt.Errorf("getting expense: %w", err)
	}
	return parsing.Render(expense.Receipt), nil
}

// Summary aggregates all of a user's expenses
func (s *Service) Summary(email string) (*Summary, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}
	return Summarize(expenses), nil
}

// TaxSummary aggregates the tax paid on a user's expenses
func (s *Service) TaxSummary(email string) (*TaxSummary, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}
	return SummarizeTax(expenses), nil
}

// Forecast projects a user's spending for next month
func (s *Service) Forecast(email string) (*Forecast, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}
	return NewForecast(expenses), nil
}

// SetBudget validates and stores a user's category budget
func (s *Service) SetBudget(email string, prefs map[category.Category]float64) (*Budget, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	budget := &Budget{
		Email:       email,
		Preferences: prefs,
		UpdatedAt:   s.timeSource.Now(),
	}
	if err := s.db.SaveBudget(budget); err != nil {
		return nil, fmt.Errorf("saving budget: %w", err)
	}

	slog.Info("Saved budget", "email", email, "categories", sortedPreferences(prefs))
	return budget, nil
}

// GetBudget retrieves a user's category budget
func (s *Service) GetBudget(email string) (*Budget, error) {
	email, err := requireEmail(email)
	if err != nil {
		return nil, err
	}
	budget, err := s.db.GetBudget(email)
	if err != nil {
		return nil, fmt.Errorf("getting budget: %w", err)
	}
	return budget, nil
}

// BudgetAlerts reports the categories whose share of spend is over budget.
// A user without a budget has no alerts.
func (s *Service) BudgetAlerts(email string) (*BudgetAlerts, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}

	budget, err := s.db.GetBudget(strings.TrimSpace(email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("getting budget: %w", err)
	}

	alerts := CheckBudget(expenses, budget)
	for _, a := range alerts.Alerts {
		slog.Info("Budget exceeded",
			"email", email,
			"category", a.Category,
			"current_percentage", a.CurrentPercentage,
			"budget_percentage", a.BudgetPercentage,
		)
	}
	return alerts, nil
}

// CategoryRatios reports each category's share of a user's spend
func (s *Service) CategoryRatios(email string) (*CategoryRatios, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}
	return NewCategoryRatios(expenses), nil
}

// Overview reports a user's spend for the current year and month
func (s *Service) Overview(email string) (*Overview, error) {
	expenses, err := s.ListExpenses(email, 0)
	if err != nil {
		return nil, err
	}
	return NewOverview(expenses, s.timeSource.Now()), nil
}
