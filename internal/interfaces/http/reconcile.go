package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/reconcile"
	"kopilka/internal/shared/middleware"
)

type ReconcileHandler struct {
	reconcileService *reconcile.Service
}

func NewReconcileHandler(reconcileService *reconcile.Service) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

type ReconcileResponse struct {
	Result      *reconcile.Result      `json:"result"`
	Suggestions []reconcile.Suggestion `json:"suggestions"`
}

type ApplyAdjustmentRequest struct {
	BudgetID string `json:"budgetId"`
	Date     string `json:"date"`
	Field    string `json:"field"`
}

// HandleReconcile compares the day's ledger flow against the
// day-over-day balance change and suggests corrections when they
// disagree
func (h *ReconcileHandler) HandleReconcile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	budgetID := r.URL.Query().Get("budgetId")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "budgetId is required")
		return
	}
	date, err := dateParam(r, "date")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	result, suggestions, err := h.reconcileService.Suggestions(r.Context(), userID, budgetID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []reconcile.Suggestion{}
	}
	writeJSON(w, http.StatusOK, ReconcileResponse{Result: result, Suggestions: suggestions})
}

// HandleApply applies one suggested correction to the chosen snapshot
// field. Applying when the day already reconciles is a no-op.
func (h *ReconcileHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	var req ApplyAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	result, err := h.reconcileService.Apply(r.Context(), userID, req.BudgetID, date, req.Field)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
