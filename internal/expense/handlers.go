package expense

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/scanify/scanify/internal/category"
)

// maxUploadSize fits high-resolution phone photos and multi-page PDFs
const maxUploadSize = 50 << 20

// defaultListLimit is how many expenses a listing returns unless asked otherwise
const defaultListLimit = 5

// jsonError writes an error response as {"error": message}
func jsonError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// serviceError maps a service error to a status code
func serviceError(w http.ResponseWriter, err error, notFound string) {
	switch {
	case errors.Is(err, ErrNotFound):
		jsonError(w, notFound, http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		jsonError(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("Service error", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleHealth reports that the server is up
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleListExpenses returns a user's most recent expenses
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		jsonError(w, "Email is required", http.StatusBadRequest)
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			jsonError(w, "Limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	expenses, err := s.service.ListExpenses(email, limit)
	if err != nil {
		serviceError(w, err, "")
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

// handleUploadReceipt handles receipt upload
func (s *Server) handleUploadReceipt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		errorMsg := "Error parsing form"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			errorMsg = "File is too large. Maximum size is 50MB. Please compress or resize your image."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(r.FormValue("email"))
	if email == "" {
		jsonError(w, "Email is required", http.StatusBadRequest)
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		errorMsg := "No file provided"
		if errors.Is(err, http.ErrMissingFile) {
			errorMsg = "No file was selected. Please choose a file to upload."
		}
		jsonError(w, errorMsg, http.StatusBadRequest)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		jsonError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = contentTypeFromExt(header.Filename)
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))

	expense, err := s.service.ProcessReceipt(email, header.Filename, data, contentType)
	if err != nil {
		slog.Error("Error processing receipt", "filename", header.Filename, "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// contentTypeFromExt guesses the type of uploads sent without one
func contentTypeFromExt(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleSubmitText parses an OCR transcript submitted as JSON
func (s *Server) handleSubmitText(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
		Text  string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	expense, err := s.service.ProcessText(req.Email, req.Text)
	if err != nil {
		slog.Error("Error processing text", "error", err)
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, expense)
}

// handleGetExpense returns a single expense
func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	expense, err := s.service.GetExpense(r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "Expense not found")
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

// handleGetReport returns the text report of an expense
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.service.GetReport(r.PathValue("id"))
	if err != nil {
		serviceError(w, err, "Expense not found")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, report)
}

// handleGetExpenseFile returns the uploaded file of an expense
func (s *Server) handleGetExpenseFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetExpenseFile(r.PathValue("id"))
	if err != nil {
		jsonError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleDeleteExpense deletes an expense
func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteExpense(r.PathValue("id")); err != nil {
		slog.Error("Error deleting expense", "error", err)
		jsonError(w, "Error deleting expense", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleSummary returns the spending summary of a user
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleTaxSummary returns the tax summary of a user
func (s *Server) handleTaxSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.TaxSummary(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleForecast returns the spending forecast of a user
func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	forecast, err := s.service.Forecast(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// handleSetBudget stores a user's category budget
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email       string                        `json:"email"`
		Preferences map[category.Category]float64 `json:"preferences"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	budget, err := s.service.SetBudget(req.Email, req.Preferences)
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// handleGetBudget returns a user's category budget
func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	budget, err := s.service.GetBudget(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "Budget not found")
		return
	}
	writeJSON(w, http.StatusOK, budget)
}

// handleBudgetAlerts returns the categories over budget
func (s *Server) handleBudgetAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.service.BudgetAlerts(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// handleCategoryRatios returns each category's share of spend
func (s *Server) handleCategoryRatios(w http.ResponseWriter, r *http.Request) {
	ratios, err := s.service.CategoryRatios(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ratios)
}

// handleOverview returns the dashboard overview of a user
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.service.Overview(r.URL.Query().Get("email"))
	if err != nil {
		serviceError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, overview)
}
