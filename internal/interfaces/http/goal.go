package http

import (
	"encoding/json"
	"net/http"
	"time"

	"kopilka/internal/domain/goal"
	"kopilka/internal/shared/middleware"
)

type GoalHandler struct {
	goalService *goal.Service
}

func NewGoalHandler(goalService *goal.Service) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

type CreateGoalRequest struct {
	BudgetID     string `json:"budgetId"`
	Title        string `json:"title"`
	TargetAmount int64  `json:"targetAmount"`
	Deadline     string `json:"deadline,omitempty"`
}

type UpdateGoalRequest struct {
	Title         *string `json:"title,omitempty"`
	TargetAmount  *int64  `json:"targetAmount,omitempty"`
	CurrentAmount *int64  `json:"currentAmount,omitempty"`
	Deadline      *string `json:"deadline,omitempty"`
	Status        *string `json:"status,omitempty"`
}

type AdjustGoalRequest struct {
	BudgetID  string `json:"budgetId"`
	AccountID string `json:"accountId"`
	Delta     int64  `json:"delta"`
	Date      string `json:"date,omitempty"`
	Note      string `json:"note,omitempty"`
}

// HandleGoals lists goals in a budget (GET) or creates one (POST)
func (h *GoalHandler) HandleGoals(w http.ResponseWriter, r *http.Request) {
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
		goals, err := h.goalService.ListByBudget(r.Context(), userID, budgetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if goals == nil {
			goals = []goal.Goal{}
		}
		writeJSON(w, http.StatusOK, goals)

	case http.MethodPost:
		var req CreateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		params := goal.CreateParams{
			BudgetID:     req.BudgetID,
			UserID:       userID,
			Title:        req.Title,
			TargetAmount: req.TargetAmount,
		}
		if req.Deadline != "" {
			deadline, err := parseDate(req.Deadline)
			if err != nil {
				writeError(w, http.StatusBadRequest, kindValidation, err.Error())
				return
			}
			params.Deadline = &deadline
		}
		g, err := h.goalService.Create(r.Context(), params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, g)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

// HandleGoalByID handles operations on a specific goal
func (h *GoalHandler) HandleGoalByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "goal ID is required")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		var req UpdateGoalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		params := goal.UpdateParams{
			Title:         req.Title,
			TargetAmount:  req.TargetAmount,
			CurrentAmount: req.CurrentAmount,
			Status:        req.Status,
		}
		if req.Deadline != nil {
			deadline, err := parseDate(*req.Deadline)
			if err != nil {
				writeError(w, http.StatusBadRequest, kindValidation, err.Error())
				return
			}
			params.Deadline = &deadline
		}
		g, err := h.goalService.Update(r.Context(), userID, goalID, params)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, g)

	case http.MethodDelete:
		if err := h.goalService.Delete(r.Context(), userID, goalID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

// HandleAdjust deposits into or withdraws from a goal, posting the
// matching goal transfer transaction
func (h *GoalHandler) HandleAdjust(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	goalID := r.PathValue("id")
	if goalID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "goal ID is required")
		return
	}

	var req AdjustGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
		return
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, err.Error())
			return
		}
		date = parsed
	}

	result, err := h.goalService.Adjust(r.Context(), goal.AdjustParams{
		GoalID:    goalID,
		BudgetID:  req.BudgetID,
		UserID:    userID,
		AccountID: req.AccountID,
		Delta:     req.Delta,
		Note:      req.Note,
		Date:      date,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
