package main

import (
	"context"
	"flag"
	"log"
	"time"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/pkg/planlimits"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/internal/service"
	"mathtutor-be/pkg/database"

	"github.com/fatih/color"
)

// Daily maintenance job. Run from cron shortly after midnight UTC so streaks
// decay before users wake up.
func main() {
	retainDays := flag.Int("retain-days", 30, "delete usage counters older than this many days")
	dryRun := flag.Bool("dry-run", false, "report what would be swept without writing")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	streakService := service.NewStreakService(uowFactory, sysLogger)
	usageService := service.NewUsageService(uowFactory, planlimits.New(cfg.Limits))

	ctx := context.Background()
	now := time.Now().UTC()

	color.Cyan("🧹 Maintenance sweep starting (%s)", now.Format(time.RFC3339))

	if *dryRun {
		color.Yellow("Dry run: no writes will be performed")
		return
	}

	color.Yellow("\n1. Decaying stale streaks...")
	decayed, err := streakService.DecaySweep(ctx, now)
	if err != nil {
		color.Red("Streak decay failed: %v", err)
		log.Fatal(err)
	}
	color.Green("Reset %d stale streaks", decayed)

	color.Yellow("\n2. Pruning old usage counters (older than %d days)...", *retainDays)
	pruned, err := usageService.RetentionSweep(ctx, now, *retainDays)
	if err != nil {
		color.Red("Usage pruning failed: %v", err)
		log.Fatal(err)
	}
	color.Green("Deleted %d usage counter rows", pruned)

	color.Cyan("\n✅ Sweep complete")
}
