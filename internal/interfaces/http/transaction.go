package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/transaction"
	"kopilka/internal/shared/middleware"
)

type TransactionHandler struct {
	transactionService *transaction.Service
}

func NewTransactionHandler(transactionService *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

type CreateTransactionRequest struct {
	BudgetID    string  `json:"budgetId"`
	Date        string  `json:"date"`
	Type        string  `json:"type"`
	Kind        string  `json:"kind,omitempty"`
	Amount      int64   `json:"amount"`
	AccountID   *string `json:"accountId,omitempty"`
	ToAccountID *string `json:"toAccountId,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
	GoalID      *string `json:"goalId,omitempty"`
	Tag         *string `json:"tag,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// HandleTransactions lists transactions in a budget (GET) or creates
// one (POST). Listing accepts date, from, to and type query filters.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request, userID string) {
	budgetID := r.URL.Query().Get("budgetId")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "budgetId is required")
		return
	}

	var filter transaction.ListFilter
	var err error
	if filter.Date, err = optionalDateParam(r, "date"); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	if filter.From, err = optionalDateParam(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	if filter.To, err = optionalDateParam(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	filter.Type = r.URL.Query().Get("type")

	transactions, err := h.transactionService.ListByBudget(r.Context(), userID, budgetID, filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if transactions == nil {
		transactions = []transaction.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID string) {
	var req CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}

	date, err := parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	tx, err := h.transactionService.Create(r.Context(), transaction.CreateParams{
		BudgetID:    req.BudgetID,
		UserID:      userID,
		Date:        date,
		Type:        req.Type,
		Kind:        req.Kind,
		Amount:      req.Amount,
		AccountID:   req.AccountID,
		ToAccountID: req.ToAccountID,
		CategoryID:  req.CategoryID,
		GoalID:      req.GoalID,
		Tag:         req.Tag,
		Note:        req.Note,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tx)
}

// HandleTransactionByID handles operations on a specific transaction
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	transactionID := r.PathValue("id")
	if transactionID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "transaction ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		tx, err := h.transactionService.GetByID(r.Context(), userID, transactionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tx)

	case http.MethodDelete:
		if err := h.transactionService.Delete(r.Context(), userID, transactionID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}
