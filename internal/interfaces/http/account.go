package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/account"
	"kopilka/internal/shared/middleware"
)

type AccountHandler struct {
	accountService *account.Service
}

func NewAccountHandler(accountService *account.Service) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type CreateAccountRequest struct {
	BudgetID string `json:"budgetId"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
}

type RenameAccountRequest struct {
	Name string `json:"name"`
}

type AccountsExistResponse struct {
	HasAccounts bool `json:"hasAccounts"`
}

// HandleExists reports whether the budget has any accounts, so the
// client can decide between onboarding and the main screen
func (h *AccountHandler) HandleExists(w http.ResponseWriter, r *http.Request) {
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
	exists, err := h.accountService.Exists(r.Context(), userID, budgetID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AccountsExistResponse{HasAccounts: exists})
}

// HandleAccounts lists accounts in a budget (GET) or creates one (POST)
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
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
		accounts, err := h.accountService.ListByBudget(r.Context(), userID, budgetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if accounts == nil {
			accounts = []account.Account{}
		}
		writeJSON(w, http.StatusOK, accounts)

	case http.MethodPost:
		var req CreateAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		acc, err := h.accountService.Create(r.Context(), userID, account.CreateParams{
			BudgetID: req.BudgetID,
			Name:     req.Name,
			Kind:     req.Kind,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, acc)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

// HandleAccountByID handles operations on a specific account
func (h *AccountHandler) HandleAccountByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	accountID := r.PathValue("id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "account ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		acc, err := h.accountService.GetByID(r.Context(), userID, accountID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodPatch:
		var req RenameAccountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		acc, err := h.accountService.Rename(r.Context(), userID, accountID, req.Name)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, acc)

	case http.MethodDelete:
		if err := h.accountService.Delete(r.Context(), userID, accountID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}
