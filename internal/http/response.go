package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"outlay/internal/core"
)

const dateLayout = "2006-01-02"

type expenseResponse struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
	Note      string  `json:"note"`
	Category  string  `json:"category"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type categoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Count    int     `json:"count"`
}

type monthTotalResponse struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

type summaryResponse struct {
	TotalSpent float64                 `json:"totalSpent"`
	ByCategory []categoryTotalResponse `json:"byCategory"`
	ByMonth    []monthTotalResponse    `json:"byMonth"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func toExpenseResponse(e core.Expense) expenseResponse {
	return expenseResponse{
		ID:        e.ID,
		Amount:    e.Amount,
		Date:      e.Date.Format(dateLayout),
		Note:      e.Note,
		Category:  string(e.Category),
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
}

func toExpenseListResponse(expenses []core.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

func toSummaryResponse(s core.Summary) summaryResponse {
	resp := summaryResponse{
		TotalSpent: s.TotalSpent,
		ByCategory: make([]categoryTotalResponse, 0, len(s.ByCategory)),
		ByMonth:    make([]monthTotalResponse, 0, len(s.ByMonth)),
	}
	for _, c := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryTotalResponse{
			Category: string(c.Category),
			Total:    c.Total,
			Count:    c.Count,
		})
	}
	for _, m := range s.ByMonth {
		resp.ByMonth = append(resp.ByMonth, monthTotalResponse{
			Year:  m.Year,
			Month: m.Month,
			Total: m.Total,
			Count: m.Count,
		})
	}
	return resp
}

func respondJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, errorResponse{Message: message})
}
