package http

import (
	"net/http"
	"strconv"

	"kopilka/internal/domain/report"
	"kopilka/internal/shared/middleware"
)

type ReportHandler struct {
	reportService *report.Service
}

func NewReportHandler(reportService *report.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// HandleCashflow returns the per-day income/expense grid for a range
func (h *ReportHandler) HandleCashflow(w http.ResponseWriter, r *http.Request) {
	userID, budgetID, ok := h.reportQuery(w, r)
	if !ok {
		return
	}

	from, err := dateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	days, err := h.reportService.CashflowByDay(r.Context(), userID, budgetID, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleBalance returns the per-day balance series for a range
func (h *ReportHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	userID, budgetID, ok := h.reportQuery(w, r)
	if !ok {
		return
	}

	from, err := dateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	days, err := h.reportService.BalanceByDay(r.Context(), userID, budgetID, from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleMonth returns the month report for a YYYY-MM month
func (h *ReportHandler) HandleMonth(w http.ResponseWriter, r *http.Request) {
	userID, budgetID, ok := h.reportQuery(w, r)
	if !ok {
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "month is required, expected YYYY-MM")
		return
	}

	rep, err := h.reportService.MonthReport(r.Context(), userID, budgetID, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleCategories returns expense totals rolled up to root categories
func (h *ReportHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	userID, budgetID, ok := h.reportQuery(w, r)
	if !ok {
		return
	}

	from, err := dateParam(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}
	to, err := dateParam(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, kindValidation, err.Error())
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeError(w, http.StatusBadRequest, kindValidation, "invalid limit")
			return
		}
	}

	rep, err := h.reportService.ExpensesByCategory(r.Context(), userID, budgetID, from, to, limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// HandleSummary returns today's debt totals and the active goals
func (h *ReportHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	userID, budgetID, ok := h.reportQuery(w, r)
	if !ok {
		return
	}

	summary, err := h.reportService.Summary(r.Context(), userID, budgetID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// reportQuery handles the method check, auth extraction and budgetId
// parameter shared by every report endpoint
func (h *ReportHandler) reportQuery(w http.ResponseWriter, r *http.Request) (userID, budgetID string, ok bool) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return "", "", false
	}
	userID, authed := middleware.UserID(r.Context())
	if !authed {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "authentication required")
		return "", "", false
	}
	budgetID = r.URL.Query().Get("budgetId")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, kindValidation, "budgetId is required")
		return "", "", false
	}
	return userID, budgetID, true
}
