package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/akeren/sunday-signup/config"
	"github.com/akeren/sunday-signup/domain/games"
	"github.com/akeren/sunday-signup/domain/players"
	"github.com/akeren/sunday-signup/domain/signup"
	"github.com/akeren/sunday-signup/internal/log"
	"github.com/akeren/sunday-signup/internal/models"
	"github.com/akeren/sunday-signup/pkg/migrations"
	"github.com/akeren/sunday-signup/pkg/utils"
	"gorm.io/gorm"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.InitializeEnvFile(logger) // Load envs early for CLI consistency

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "migrate":
		err = runMigrate(logger, args[1:])
	case "upcoming-games":
		err = runUpcomingGames(logger)
	case "lookup-phone":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "usage: cli lookup-phone <phone>")
			os.Exit(1)
		}
		err = runLookupPhone(logger, args[1])
	case "resubmit-failed":
		err = runResubmitFailed(logger)
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate [up]         Apply pending database migrations")
	fmt.Println("  migrate down <n>     Roll back the last n migrations")
	fmt.Println("  migrate version      Print the current schema version")
	fmt.Println("  upcoming-games       Print the selectable game dates as JSON")
	fmt.Println("  lookup-phone <phone> Look up a returning player by phone number")
	fmt.Println("  resubmit-failed      Forward every signup that failed to reach the sheet")
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func openDatabase(logger *log.Logger) (*gorm.DB, func(), error) {
	db, err := config.NewDatabase(logger, config.NewDBConfigFromEnv())
	if err != nil {
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, func() { config.CloseDatabase(db, logger) }, nil
}

func runMigrate(logger *log.Logger, args []string) error {
	db, closeDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := migrations.Config{
		Dir:    utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}

	op := "up"
	if len(args) > 0 {
		op = args[0]
	}

	switch op {
	case "up":
		if err := migrations.Up(ctx, sqlDB, cfg); err != nil {
			return err
		}
	case "down":
		if len(args) < 2 {
			return fmt.Errorf("usage: cli migrate down <n>")
		}
		steps, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid step count %q: %w", args[1], err)
		}
		if err := migrations.Down(ctx, sqlDB, cfg, steps); err != nil {
			return err
		}
	case "version":
		status, err := migrations.Version(ctx, sqlDB, cfg)
		if err != nil {
			return err
		}
		return printJSON(status)
	default:
		return fmt.Errorf("unknown migrate operation %q", op)
	}

	logger.Info("Database migrations completed", "op", op)
	return nil
}

func runUpcomingGames(logger *log.Logger) error {
	sc := config.NewSignupConfig(logger)

	service := games.NewGameService(logger, sc.NewSheetsClient(logger), nil, games.ServiceConfig{
		Action:          sc.SheetsGamesAction,
		DefaultTime:     sc.DefaultGameTime,
		DefaultLocation: sc.DefaultGameLocation,
		DefaultCourt:    sc.DefaultGameCourt,
		Location:        sc.GameLocation,
	})

	ctx, cancel := context.WithTimeout(context.Background(), sc.SheetsTimeout*2)
	defer cancel()

	upcoming, err := service.Upcoming(ctx)
	if err != nil {
		return err
	}
	return printJSON(upcoming)
}

func runLookupPhone(logger *log.Logger, rawPhone string) error {
	sc := config.NewSignupConfig(logger)

	var directory players.LocalDirectory
	if db, closeDB, err := openDatabase(logger); err == nil {
		defer closeDB()
		directory = signup.NewSignupRepository(db)
	} else {
		logger.Warn("Database unavailable; local fallback disabled", "error", err.Error())
	}

	service := players.NewPlayerService(logger, sc.NewSheetsClient(logger), directory, nil, 0)

	ctx, cancel := context.WithTimeout(context.Background(), sc.SheetsTimeout*2)
	defer cancel()

	result, err := service.LookupByPhone(ctx, rawPhone)
	if err != nil {
		return err
	}
	return printJSON(result)
}

func runResubmitFailed(logger *log.Logger) error {
	sc := config.NewSignupConfig(logger)
	sheetsClient := sc.NewSheetsClient(logger)
	if !sheetsClient.Configured() {
		return fmt.Errorf("SHEETS_SCRIPT_URL is not set; nothing to resubmit to")
	}

	db, closeDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDB()

	service := signup.NewSignupService(logger, signup.NewSignupRepository(db), sheetsClient, signup.ServiceConfig{
		Pricing:        signup.Pricing{Mode: signup.ParsePricingMode(sc.PricingMode), UnitCents: sc.PricePerUnitCents},
		PaymentMethods: signup.BuildPaymentMethods(sc.PaymentHandles),
		Mailer:         sc.NewEmailSender(logger),
		Location:       sc.GameLocation,
	})

	ctx := context.Background()
	failed, err := service.List(ctx, models.SignupStatusFailed)
	if err != nil {
		return err
	}

	resubmitted := 0
	for _, s := range failed {
		if _, err := service.Resubmit(ctx, s.ID); err != nil {
			logger.Warn("Resubmission failed", "reference", s.Reference, "error", err.Error())
			continue
		}
		resubmitted++
	}

	logger.Info("Resubmission finished", "failed", len(failed), "resubmitted", resubmitted)
	return nil
}
