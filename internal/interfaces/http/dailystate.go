package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/shared/middleware"
)

type DailyStateHandler struct {
	dailyStateService *dailystate.Service
	accountService    *account.Service
}

func NewDailyStateHandler(dailyStateService *dailystate.Service, accountService *account.Service) *DailyStateHandler {
	return &DailyStateHandler{dailyStateService: dailyStateService, accountService: accountService}
}

type UpdateDailyStateRequest struct {
	BudgetID string                      `json:"budgetId"`
	Date     string                      `json:"date"`
	Accounts []dailystate.AccountAmount  `json:"accounts"`
	Debts    *dailystate.DebtTotals      `json:"debts,omitempty"`
}

// HandleDailyState returns the assembled view for a date (GET) or
// records a user-submitted snapshot (POST)
func (h *DailyStateHandler) HandleDailyState(w http.ResponseWriter, r *http.Request) {
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
		date, err := dateParam(r, "date")
		if err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, err.Error())
			return
		}
		view, err := h.dailyStateService.View(r.Context(), userID, budgetID, date)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	case http.MethodPost:
		var req UpdateDailyStateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		date, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, err.Error())
			return
		}

		accounts, err := h.accountService.ListByBudget(r.Context(), userID, req.BudgetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		view, err := h.dailyStateService.Update(r.Context(), userID, req.BudgetID, date, req.Accounts, accounts, req.Debts)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, view)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

type DailyDeltaResponse struct {
	TopDayTotal int64 `json:"topDayTotal"`
}

// HandleDelta returns the day-over-day change of the snapshot balance
func (h *DailyStateHandler) HandleDelta(w http.ResponseWriter, r *http.Request) {
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

	delta, err := h.dailyStateService.Delta(r.Context(), userID, budgetID, date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DailyDeltaResponse{TopDayTotal: delta})
}
