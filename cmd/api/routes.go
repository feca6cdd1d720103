package main

import (
	"log"
	"net/http"

	"kopilka/internal/shared/config"
	"kopilka/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", deps.HealthHandler.HandleHealth)

	// Public routes
	mux.HandleFunc("/api/auth/telegram", deps.AuthHandler.HandleTelegramAuth)
	mux.HandleFunc("/api/webhook", deps.WebhookHandler.HandleWebhook)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)

	mux.Handle("/api/me", authMiddleware(http.HandlerFunc(deps.AuthHandler.HandleMe)))

	mux.Handle("/api/budgets", authMiddleware(http.HandlerFunc(deps.BudgetHandler.HandleBudgets)))
	mux.Handle("/api/budgets/{id}/reset", authMiddleware(http.HandlerFunc(deps.BudgetHandler.HandleReset)))

	mux.Handle("/api/accounts", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccounts)))
	mux.Handle("/api/accounts/exists", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleExists)))
	mux.Handle("/api/accounts/{id}", authMiddleware(http.HandlerFunc(deps.AccountHandler.HandleAccountByID)))

	mux.Handle("/api/categories", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategories)))
	mux.Handle("/api/categories/{id}", authMiddleware(http.HandlerFunc(deps.CategoryHandler.HandleCategoryByID)))

	mux.Handle("/api/transactions", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactions)))
	mux.Handle("/api/transactions/{id}", authMiddleware(http.HandlerFunc(deps.TransactionHandler.HandleTransactionByID)))

	mux.Handle("/api/daily-state", authMiddleware(http.HandlerFunc(deps.DailyStateHandler.HandleDailyState)))
	mux.Handle("/api/daily-state/delta", authMiddleware(http.HandlerFunc(deps.DailyStateHandler.HandleDelta)))

	mux.Handle("/api/debts/other", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebts)))
	mux.Handle("/api/debts/other/apply", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleApply)))
	mux.Handle("/api/debts/other/{id}", authMiddleware(http.HandlerFunc(deps.DebtHandler.HandleDebtByID)))

	mux.Handle("/api/goals", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleGoals)))
	mux.Handle("/api/goals/{id}", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleGoalByID)))
	mux.Handle("/api/goals/{id}/adjust", authMiddleware(http.HandlerFunc(deps.GoalHandler.HandleAdjust)))

	mux.Handle("/api/reconcile", authMiddleware(http.HandlerFunc(deps.ReconcileHandler.HandleReconcile)))
	mux.Handle("/api/reconcile/apply", authMiddleware(http.HandlerFunc(deps.ReconcileHandler.HandleApply)))

	mux.Handle("/api/reports/cashflow", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleCashflow)))
	mux.Handle("/api/reports/balance", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleBalance)))
	mux.Handle("/api/reports/month", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleMonth)))
	mux.Handle("/api/reports/categories", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleCategories)))
	mux.Handle("/api/reports/summary", authMiddleware(http.HandlerFunc(deps.ReportHandler.HandleSummary)))

	// Apply global middleware
	var inner http.Handler = mux
	if cfg.Telemetry.Enabled {
		inner = middleware.Tracing(inner)
	}
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(inner))
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
