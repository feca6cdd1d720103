package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/dailystate"
	"kopilka/internal/domain/debt"
	"kopilka/internal/domain/goal"
	"kopilka/internal/domain/ledger"
	"kopilka/internal/domain/reconcile"
	"kopilka/internal/domain/report"
	"kopilka/internal/domain/transaction"
	"kopilka/internal/domain/user"
)

// Error kinds exposed in the response envelope. Clients branch on the
// kind, never on the message.
const (
	kindValidation    = "validation_error"
	kindAuthorization = "authorization_error"
	kindNotFound      = "not_found"
	kindConflict      = "conflict"
	kindInternal      = "internal_error"
)

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Kind: kind, Message: message}})
}

// writeDomainError maps a service error onto the envelope. Anything
// unmapped is logged and reported as internal.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeError(w, http.StatusNotFound, kindNotFound, err.Error())
	case isForbidden(err):
		writeError(w, http.StatusForbidden, kindAuthorization, err.Error())
	case isConflict(err):
		writeError(w, http.StatusConflict, kindConflict, err.Error())
	case isValidation(err):
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, kindInternal, "internal server error")
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, user.ErrUserNotFound) ||
		errors.Is(err, budget.ErrBudgetNotFound) ||
		errors.Is(err, account.ErrAccountNotFound) ||
		errors.Is(err, category.ErrCategoryNotFound) ||
		errors.Is(err, transaction.ErrTransactionNotFound) ||
		errors.Is(err, dailystate.ErrStateNotFound) ||
		errors.Is(err, debt.ErrDebtNotFound) ||
		errors.Is(err, goal.ErrGoalNotFound) ||
		errors.Is(err, ledger.ErrEventNotFound)
}

func isForbidden(err error) bool {
	return errors.Is(err, budget.ErrForbidden) ||
		errors.Is(err, transaction.ErrForbidden) ||
		errors.Is(err, debt.ErrForbidden) ||
		errors.Is(err, goal.ErrForbidden)
}

func isConflict(err error) bool {
	return errors.Is(err, account.ErrDuplicateName) ||
		errors.Is(err, category.ErrDuplicateName) ||
		errors.Is(err, ledger.ErrDuplicateEvent)
}

func isValidation(err error) bool {
	validationErrors := []error{
		budget.ErrInvalidInput,
		account.ErrInvalidInput,
		category.ErrTypeMismatch,
		category.ErrCycle,
		category.ErrInvalidInput,
		transaction.ErrInvalidType,
		transaction.ErrCategoryRequired,
		transaction.ErrCategoryForbidden,
		transaction.ErrCategoryTypeMismatch,
		transaction.ErrAccountRequired,
		transaction.ErrSameAccount,
		transaction.ErrInvalidAmount,
		transaction.ErrInvalidInput,
		dailystate.ErrEmptyAccounts,
		dailystate.ErrInvalidInput,
		debt.ErrInvalidDirection,
		debt.ErrInvalidAmount,
		debt.ErrNoMatchingAccount,
		debt.ErrInsufficientFunds,
		debt.ErrNegativeDebt,
		debt.ErrInvalidInput,
		goal.ErrZeroDelta,
		goal.ErrInsufficientFunds,
		goal.ErrInvalidStatus,
		goal.ErrGoalNotActive,
		goal.ErrInvalidInput,
		ledger.ErrInvalidInput,
		user.ErrInvalidInput,
		reconcile.ErrNegativeBalance,
		reconcile.ErrUnknownField,
		reconcile.ErrNoMatchingAccount,
		report.ErrInvalidRange,
		report.ErrInvalidMonth,
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
