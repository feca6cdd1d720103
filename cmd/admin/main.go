package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"kopilka/internal/domain/account"
	"kopilka/internal/domain/budget"
	"kopilka/internal/domain/category"
	"kopilka/internal/domain/goal"
	"kopilka/internal/domain/transaction"
	"kopilka/internal/domain/user"
	"kopilka/internal/infrastructure/postgres"
	"kopilka/internal/shared/config"
)

const usage = `Kopilka Admin CLI - Management commands for the Kopilka API

Usage:
  admin <command> [options]

Commands:
  migrate   Apply pending database migrations and exit
  seed      Fill the database with fake demo data

Examples:
  # Apply migrations
  admin migrate

  # Seed a demo user with 60 days of transactions
  admin seed --days=60

  # Seed several demo users
  admin seed --users=3 --days=30
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "migrate":
		runMigrate(os.Args[2:])
	case "seed":
		runSeed(os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(1)
	}
}

func connect() *postgres.DB {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")
	return db
}

func runMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	timeoutStr := fs.String("timeout", "5m", "Timeout for the operation (e.g., 30s, 5m)")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	timeout, err := time.ParseDuration(*timeoutStr)
	if err != nil {
		log.Fatalf("Invalid timeout format: %v", err)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := postgres.Migrate(ctx, db.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migrations applied")
}

func runSeed(args []string) {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	users := fs.Int("users", 1, "Number of demo users to create")
	days := fs.Int("days", 30, "Days of transaction history per user")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	db := connect()
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, db.DB); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	budgetService := budget.NewService(postgres.NewBudgetRepository(db.DB))
	userService := user.NewService(postgres.NewUserRepository(db.DB))
	accountService := account.NewService(postgres.NewAccountRepository(db.DB), budgetService)
	categoryRepo := postgres.NewCategoryRepository(db.DB)
	categoryService := category.NewService(categoryRepo, budgetService)
	transactionService := transaction.NewService(
		postgres.NewTransactionRepository(db.DB),
		postgres.NewAccountRepository(db.DB),
		categoryRepo,
		budgetService,
	)
	goalService := goal.NewService(postgres.NewGoalRepository(db.DB), transactionService, budgetService)

	for i := 0; i < *users; i++ {
		if err := seedUser(ctx, userService, budgetService, accountService, categoryService, transactionService, goalService, *days); err != nil {
			log.Fatalf("Seed failed: %v", err)
		}
	}
	log.Printf("Seeded %d user(s) with %d days of history", *users, *days)
}

func seedUser(
	ctx context.Context,
	users *user.Service,
	budgets *budget.Service,
	accounts *account.Service,
	categories *category.Service,
	transactions *transaction.Service,
	goals *goal.Service,
	days int,
) error {
	u, err := users.Login(ctx, user.UpsertParams{
		TelegramID: int64(gofakeit.Number(100_000_000, 999_999_999)),
		Username:   gofakeit.Username(),
		FirstName:  gofakeit.FirstName(),
		LastName:   gofakeit.LastName(),
	})
	if err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	list, err := budgets.EnsureDefaults(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("failed to seed budgets: %w", err)
	}
	b := list[0]

	cash, err := accounts.Create(ctx, u.ID, account.CreateParams{
		BudgetID: b.ID, Name: "Наличные", Kind: account.KindCash,
	})
	if err != nil {
		return fmt.Errorf("failed to seed cash account: %w", err)
	}
	bank, err := accounts.Create(ctx, u.ID, account.CreateParams{
		BudgetID: b.ID, Name: "Карта", Kind: account.KindBank,
	})
	if err != nil {
		return fmt.Errorf("failed to seed bank account: %w", err)
	}

	salary, err := categories.Create(ctx, u.ID, category.CreateParams{
		BudgetID: b.ID, Name: "Зарплата", Type: category.TypeIncome,
	})
	if err != nil {
		return fmt.Errorf("failed to seed income category: %w", err)
	}

	var expenses []*category.Category
	for _, name := range []string{"Продукты", "Транспорт", "Кафе", "Дом"} {
		c, err := categories.Create(ctx, u.ID, category.CreateParams{
			BudgetID: b.ID, Name: name, Type: category.TypeExpense,
		})
		if err != nil {
			return fmt.Errorf("failed to seed expense category: %w", err)
		}
		expenses = append(expenses, c)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	accountIDs := []string{cash.ID, bank.ID}

	for d := days; d >= 0; d-- {
		date := today.AddDate(0, 0, -d)

		// Monthly salary on the 5th
		if date.Day() == 5 {
			accID := bank.ID
			_, err := transactions.Create(ctx, transaction.CreateParams{
				BudgetID:   b.ID,
				UserID:     u.ID,
				Date:       date,
				Type:       transaction.TypeIncome,
				Amount:     int64(gofakeit.Number(80_000, 150_000)) * 100,
				AccountID:  &accID,
				CategoryID: &salary.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to seed income: %w", err)
			}
		}

		// A couple of expenses most days
		for n := 0; n < rand.Intn(3); n++ {
			accID := accountIDs[rand.Intn(len(accountIDs))]
			catID := expenses[rand.Intn(len(expenses))].ID
			_, err := transactions.Create(ctx, transaction.CreateParams{
				BudgetID:   b.ID,
				UserID:     u.ID,
				Date:       date,
				Type:       transaction.TypeExpense,
				Amount:     int64(gofakeit.Number(100, 3_000)) * 100,
				AccountID:  &accID,
				CategoryID: &catID,
				Note:       gofakeit.ProductName(),
			})
			if err != nil {
				return fmt.Errorf("failed to seed expense: %w", err)
			}
		}
	}

	deadline := today.AddDate(0, 6, 0)
	g, err := goals.Create(ctx, goal.CreateParams{
		BudgetID:     b.ID,
		UserID:       u.ID,
		Title:        "Отпуск",
		TargetAmount: 200_000_00,
		Deadline:     &deadline,
	})
	if err != nil {
		return fmt.Errorf("failed to seed goal: %w", err)
	}
	_, err = goals.Adjust(ctx, goal.AdjustParams{
		GoalID:    g.ID,
		BudgetID:  b.ID,
		UserID:    u.ID,
		AccountID: bank.ID,
		Date:      today,
		Delta:     15_000_00,
	})
	if err != nil {
		return fmt.Errorf("failed to seed goal adjustment: %w", err)
	}

	log.Printf("Seeded user %s (@%s)", u.FirstName, u.Username)
	return nil
}
