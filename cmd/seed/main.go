package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"minibank/internal/db"
	"minibank/internal/logging"
	"minibank/internal/model"
	"minibank/internal/repository"
)

// seed opens an account for an already registered user. Accounts have no
// HTTP creation endpoint, so this is how balances get into the database.
func main() {
	_ = godotenv.Load()

	defaultPath := os.Getenv("DATABASE_PATH")
	if defaultPath == "" {
		defaultPath = "Bank.db"
	}

	dbPath := flag.String("db", defaultPath, "path to the SQLite database file")
	email := flag.String("email", "", "email of the account owner")
	amount := flag.String("amount", "0", "opening balance")
	flag.Parse()

	ctx := context.Background()
	log := logging.New(os.Stderr, "info", "text")

	if err := run(ctx, *dbPath, *email, *amount); err != nil {
		log.Error(ctx, "seed failed", "error", err)
		os.Exit(1)
	}
	log.Info(ctx, "account created", "email", *email, "amount", *amount)
}

func run(ctx context.Context, dbPath, email, rawAmount string) error {
	if email == "" {
		return errors.New("-email is required")
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", rawAmount, err)
	}
	if amount.IsNegative() {
		return errors.New("opening balance must not be negative")
	}
	if !model.AmountInRange(amount) {
		return fmt.Errorf("opening balance %s needs at most %d decimal places and must be below %s", amount, model.AmountScale, model.MaxAmount)
	}

	gormDB, err := db.NewSQLite(dbPath)
	if err != nil {
		return err
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		defer sqlDB.Close()
	}

	return seedAccount(ctx, repository.NewUserRepository(gormDB), repository.NewAccountRepository(gormDB), email, amount)
}

// seedAccount creates an opening account for the user with the given email.
func seedAccount(ctx context.Context, users repository.UserRepository, accounts repository.AccountRepository, email string, amount decimal.Decimal) error {
	user, err := users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("no user registered with email %s", email)
		}
		return fmt.Errorf("find user: %w", err)
	}

	account := &model.Account{
		UserID:          user.ID,
		Amount:          amount,
		TransactionType: model.TransactionTypeOpening,
	}
	if err := accounts.Create(ctx, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}
