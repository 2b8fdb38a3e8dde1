package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"taskbot/internal/bot"
	"taskbot/internal/classifier"
	"taskbot/internal/config"
	"taskbot/internal/repository"
	"taskbot/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	taskRepo := repository.NewTaskRepository(db)

	var remote classifier.Remote
	if cfg.OpenAIAPIKey != "" {
		remote = classifier.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Println("[info] OPENAI_API_KEY not set, using rule-based classification")
	}
	taskSvc := service.NewTaskService(taskRepo, classifier.New(remote))

	telegramBot, err := bot.New(cfg.TelegramToken, taskSvc)
	if err != nil {
		log.Fatalf("bot: %v", err)
	}

	reminderSvc := service.NewReminderService(taskRepo, telegramBot)

	scheduler := service.NewSchedulerService(time.UTC)
	if _, err := scheduler.ScheduleInterval(cfg.ScanInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := reminderSvc.Scan(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("reminder scan: %v", err)
		}
	}); err != nil {
		log.Fatalf("schedule reminder scan: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	log.Println("Task bot started.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("bot stopped with error: %v", err)
	}
	log.Println("Shutdown complete.")
}
