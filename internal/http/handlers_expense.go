package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"outlay/internal/core"
	"outlay/internal/log"
	"outlay/internal/services"
)

// createExpenseRequest uses a pointer for amount so a missing field can be
// told apart from an explicit zero, which gets a validation error instead.
type createExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Date     string   `json:"date"`
	Note     string   `json:"note"`
	Category string   `json:"category"`
}

type updateExpenseRequest struct {
	Amount   *float64 `json:"amount"`
	Date     *string  `json:"date"`
	Note     *string  `json:"note"`
	Category *string  `json:"category"`
}

type deleteExpenseResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Amount == nil || req.Note == "" || req.Category == "" {
		respondError(w, http.StatusBadRequest, "Please provide all required fields")
		return
	}

	in := services.CreateExpenseInput{
		Amount:   *req.Amount,
		Note:     req.Note,
		Category: req.Category,
	}
	if req.Date != "" {
		d := parseDateParam(req.Date)
		if d == nil {
			respondError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		in.Date = d
	}

	created, err := s.service.Create(r.Context(), in)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toExpenseResponse(created))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.service.List(r.Context(), parseListFilter(r.URL.Query()))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseListResponse(expenses))
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	e, err := s.service.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(e))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	var req updateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := core.ExpensePatch{
		Amount: req.Amount,
	}
	if req.Date != nil {
		d := parseDateParam(*req.Date)
		if d == nil {
			respondError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		patch.Date = d
	}
	if req.Note != nil {
		patch.Note = req.Note
	}
	if req.Category != nil {
		c := core.Category(*req.Category)
		patch.Category = &c
	}

	updated, err := s.service.Update(r.Context(), id, patch)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toExpenseResponse(updated))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDVar(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid expense id")
		return
	}

	if err := s.service.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, deleteExpenseResponse{
		Message: "Expense deleted successfully",
		ID:      id,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), parseSummaryFilter(r.URL.Query()))
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSummaryResponse(summary))
}

func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		respondError(w, http.StatusNotFound, "Expense not found")
	case core.IsValidationError(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
