package http

import (
	"encoding/json"
	"net/http"

	"kopilka/internal/domain/category"
	"kopilka/internal/shared/middleware"
)

type CategoryHandler struct {
	categoryService *category.Service
}

func NewCategoryHandler(categoryService *category.Service) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

type CreateCategoryRequest struct {
	BudgetID string  `json:"budgetId"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	ParentID *string `json:"parentId,omitempty"`
}

type UpdateCategoryRequest struct {
	Name     *string `json:"name,omitempty"`
	ParentID *string `json:"parentId,omitempty"`
	Reparent bool    `json:"reparent,omitempty"`
}

// HandleCategories lists categories in a budget (GET) or creates one (POST)
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
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
		categories, err := h.categoryService.ListByBudget(r.Context(), userID, budgetID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if categories == nil {
			categories = []category.Category{}
		}
		writeJSON(w, http.StatusOK, categories)

	case http.MethodPost:
		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		cat, err := h.categoryService.Create(r.Context(), userID, category.CreateParams{
			BudgetID: req.BudgetID,
			Name:     req.Name,
			Type:     req.Type,
			ParentID: req.ParentID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, cat)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}

// HandleCategoryByID handles operations on a specific category
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return
	}

	categoryID := r.PathValue("id")
	if categoryID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "category ID is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		cat, err := h.categoryService.GetByID(r.Context(), userID, categoryID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat)

	case http.MethodPatch:
		var req UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid request body")
			return
		}
		cat, err := h.categoryService.Update(r.Context(), userID, categoryID, category.UpdateParams{
			Name:     req.Name,
			ParentID: req.ParentID,
			Reparent: req.Reparent || req.ParentID != nil,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cat)

	case http.MethodDelete:
		if err := h.categoryService.Delete(r.Context(), userID, categoryID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
	}
}
