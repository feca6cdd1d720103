package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/debt"
	"kopilka/internal/shared/middleware"
)

type DebtHandler struct {
	debtService *debt.Service
}

func NewDebtHandler(debtService *debt.Service) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

type CreateDebtRequest struct {
	BudgetID string `json:"budgetId"`
	Name     string `json:"name"`
	Amount   int64  `json:"amount"`
	Note     string `json:"note,omitempty"`
}

type ApplyDebtRequest struct {
	BudgetID  string `json:"budgetId"`
	Date      string `json:"date"`
	Direction string `json:"direction"`
	AssetSide string `json:"assetSide"`
	Amount    int64  `json:"amount"`
}

// HandleDebts lists people-debt records (GET), creates one (POST), or
// applies a borrow/repay movement when the request carries a direction
func (h *DebtHandler) HandleDebts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		budgetID := r.URL.Query().Get("budgetId")
		if budgetID == "" {
			writeError(w, http.StatusBadRequest, kindValidation, "budgetId is required")
			return
		}
		debts, err := h.debtService.ListByBudget(r.Context(), userID, budgetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if debts == nil {
			debts = []debt.DebtOther{}
		}
		writeJSON(w, http.StatusOK, debts)

	case http.MethodPost:
		var req CreateDebtRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		d, err := h.debtService.Create(r.Context(), debt.CreateParams{
			BudgetID: req.BudgetID,
			UserID:   userID,
			Name:     req.Name,
			Amount:   req.Amount,
			Note:     req.Note,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, d)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

// HandleApply moves money between the people-debt total and an asset
// side in one atomic write
func (h *DebtHandler) HandleApply(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	var req ApplyDebtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	state, err := h.debtService.Apply(r.Context(), debt.ApplyParams{
		BudgetID:  req.BudgetID,
		UserID:    userID,
		Date:      date,
		Direction: req.Direction,
		AssetSide: req.AssetSide,
		Amount:    req.Amount,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleDebtByID deletes a specific debt record
func (h *DebtHandler) HandleDebtByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	debtID := r.PathValue("id")
	if debtID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "debt ID is required")
		return
	}

	if err := h.debtService.Delete(r.Context(), userID, debtID); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
