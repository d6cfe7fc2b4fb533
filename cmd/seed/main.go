package main

import (
	"context"
	"log"

	"mathtutor-be/internal/config"
	"mathtutor-be/internal/constant"
	"mathtutor-be/internal/dto"
	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/pkg/logger"
	"mathtutor-be/internal/repository/unitofwork"
	"mathtutor-be/internal/service"
	"mathtutor-be/pkg/database"

	"github.com/fatih/color"
)

// Seeds a demo student with one conversation and a flashcard set. Safe to
// run repeatedly: the user row is keyed by external id and reused.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	defer sysLogger.Sync()

	uowFactory := unitofwork.NewRepositoryFactory(db)
	userService := service.NewUserService(uowFactory)
	threadService := service.NewThreadService(uowFactory, sysLogger)
	artifactService := service.NewArtifactService(uowFactory, nil, sysLogger)

	ctx := context.Background()

	color.Cyan("🌱 Seeding demo data")

	user, err := userService.GetOrCreateByExternalId(ctx, "seed-demo-student", "demo@example.com", "Demo Student")
	if err != nil {
		log.Fatalf("Failed to seed user: %v", err)
	}
	color.Green("User: %s (%s)", user.FullName, user.Id)

	thread, err := threadService.Create(ctx, user.Id, &dto.CreateThreadRequest{
		Title: "Quadratic equations",
		Tags:  []string{"algebra"},
	})
	if err != nil {
		log.Fatalf("Failed to seed thread: %v", err)
	}
	color.Green("Thread: %s", thread.Id)

	messages := []dto.AppendMessageRequest{
		{
			ThreadId: thread.Id,
			Role:     constant.MessageRoleUser,
			Parts:    []entity.MessagePart{{Type: "text", Text: "How do I solve x^2 - 5x + 6 = 0?"}},
		},
		{
			ThreadId: thread.Id,
			Role:     constant.MessageRoleAssistant,
			Parts:    []entity.MessagePart{{Type: "text", Text: "Try factoring first. Which two numbers multiply to 6 and add up to -5?"}},
		},
	}
	for i := range messages {
		if _, err := threadService.Append(ctx, user.Id, &messages[i]); err != nil {
			log.Fatalf("Failed to seed message: %v", err)
		}
	}
	color.Green("Messages: %d", len(messages))

	set := &entity.FlashcardSet{
		UserId:   user.Id,
		ThreadId: thread.Id,
		Title:    "Factoring basics",
		Topic:    "quadratic equations",
		Cards: []entity.Flashcard{
			{Front: "Factored form of x^2 - 5x + 6", Back: "(x - 2)(x - 3)"},
			{Front: "Roots of x^2 - 5x + 6 = 0", Back: "x = 2 and x = 3"},
		},
		Tags: []string{"algebra"},
	}
	if err := artifactService.SaveFlashcardSet(ctx, set); err != nil {
		log.Fatalf("Failed to seed flashcard set: %v", err)
	}
	color.Green("Flashcard set: %s", set.Id)

	color.Cyan("✅ Seed complete")
}
