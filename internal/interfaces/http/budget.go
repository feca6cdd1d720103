package http

import (
	"net/http"

	"kopilka/internal/domain/budget"
	"kopilka/internal/shared/middleware"
)

type BudgetHandler struct {
	budgetService *budget.Service
}

func NewBudgetHandler(budgetService *budget.Service) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// HandleBudgets lists the user's budgets, creating the default
// personal and business pair on first call
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	budgets, err := h.budgetService.EnsureDefaults(r.Context(), userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, budgets)
}

// HandleReset wipes all financial data in a budget. The budget row
// itself survives.
func (h *BudgetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	budgetID := r.PathValue("id")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "budget ID is required")
		return
	}

	if err := h.budgetService.Reset(r.Context(), userID, budgetID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
