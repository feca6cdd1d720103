package main

import (
	"context"
	"log"

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
	"kopilka/internal/infrastructure/postgres"
	"kopilka/internal/infrastructure/telegram"
	httphandlers "kopilka/internal/interfaces/http"
	"kopilka/internal/shared/auth"
	"kopilka/internal/shared/config"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB *postgres.DB

	// Handlers
	AuthHandler        *httphandlers.AuthHandler
	BudgetHandler      *httphandlers.BudgetHandler
	AccountHandler     *httphandlers.AccountHandler
	CategoryHandler    *httphandlers.CategoryHandler
	TransactionHandler *httphandlers.TransactionHandler
	DailyStateHandler  *httphandlers.DailyStateHandler
	DebtHandler        *httphandlers.DebtHandler
	GoalHandler        *httphandlers.GoalHandler
	ReconcileHandler   *httphandlers.ReconcileHandler
	ReportHandler      *httphandlers.ReportHandler
	WebhookHandler     *httphandlers.WebhookHandler
	HealthHandler      *httphandlers.HealthHandler

	// Auth
	JWT *auth.JWT

	// For the reminder scheduler
	UserService *user.Service
	Bot         *telegram.Client
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	// Apply pending schema migrations
	if err := postgres.Migrate(context.Background(), db.DB); err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db.DB)
	budgetRepo := postgres.NewBudgetRepository(db.DB)
	accountRepo := postgres.NewAccountRepository(db.DB)
	categoryRepo := postgres.NewCategoryRepository(db.DB)
	transactionRepo := postgres.NewTransactionRepository(db.DB)
	ledgerRepo := postgres.NewLedgerRepository(db.DB)
	dailyStateRepo := postgres.NewDailyStateRepository(db.DB)
	debtRepo := postgres.NewDebtRepository(db.DB)
	goalRepo := postgres.NewGoalRepository(db.DB)

	// Initialize domain services. The budget service doubles as the
	// ownership authorizer for every other domain.
	userService := user.NewService(userRepo)
	budgetService := budget.NewService(budgetRepo)
	accountService := account.NewService(accountRepo, budgetService)
	categoryService := category.NewService(categoryRepo, budgetService)
	transactionService := transaction.NewService(transactionRepo, accountRepo, categoryRepo, budgetService)
	ledgerService := ledger.NewService(ledgerRepo, accountRepo, budgetService)
	dailyStateService := dailystate.NewService(dailyStateRepo, ledgerService, budgetService)
	debtService := debt.NewService(debtRepo, ledgerService, dailyStateService, budgetService)
	goalService := goal.NewService(goalRepo, transactionService, budgetService)
	reconcileService := reconcile.NewService(transactionRepo, dailyStateService, ledgerService, budgetService)
	reportService := report.NewService(transactionRepo, dailyStateService, ledgerService, categoryRepo, goalRepo, budgetService)

	// Initialize auth components
	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	// Telegram Bot API client (webhook replies and reminders)
	bot := telegram.NewClient(cfg.Telegram.BotToken)

	// Initialize handlers
	authHandler := httphandlers.NewAuthHandler(userService, jwt, cfg.Telegram.BotToken)
	budgetHandler := httphandlers.NewBudgetHandler(budgetService)
	accountHandler := httphandlers.NewAccountHandler(accountService)
	categoryHandler := httphandlers.NewCategoryHandler(categoryService)
	transactionHandler := httphandlers.NewTransactionHandler(transactionService)
	dailyStateHandler := httphandlers.NewDailyStateHandler(dailyStateService, accountService)
	debtHandler := httphandlers.NewDebtHandler(debtService)
	goalHandler := httphandlers.NewGoalHandler(goalService)
	reconcileHandler := httphandlers.NewReconcileHandler(reconcileService)
	reportHandler := httphandlers.NewReportHandler(reportService)
	webhookHandler := httphandlers.NewWebhookHandler(bot, cfg.Telegram.WebAppURL, cfg.Telegram.WebhookSecret)
	healthHandler := httphandlers.NewHealthHandler(db.DB)

	return &Dependencies{
		DB:                 db,
		AuthHandler:        authHandler,
		BudgetHandler:      budgetHandler,
		AccountHandler:     accountHandler,
		CategoryHandler:    categoryHandler,
		TransactionHandler: transactionHandler,
		DailyStateHandler:  dailyStateHandler,
		DebtHandler:        debtHandler,
		GoalHandler:        goalHandler,
		ReconcileHandler:   reconcileHandler,
		ReportHandler:      reportHandler,
		WebhookHandler:     webhookHandler,
		HealthHandler:      healthHandler,
		JWT:                jwt,
		UserService:        userService,
		Bot:                bot,
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
