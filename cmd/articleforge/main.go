package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"ArticleForge/internal/app"
	"ArticleForge/internal/config"
	"ArticleForge/internal/logging"
	"ArticleForge/internal/progress"
	"ArticleForge/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	slogger := logging.New(cfg.Logging.Level)
	cli := logger.New("articleforge")

	progressListener := func(u progress.Update) {
		if u.Err != nil {
			cli.Printf("%3d%% %s: %s (%v)", u.Progress, u.Status, u.Message, u.Err)
			return
		}
		cli.Printf("%3d%% %s: %s", u.Progress, u.Status, u.Message)
	}

	application, err := app.New(cfg, slogger, progressListener)
	if err != nil {
		slogger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer func() {
		if err := application.Close(context.Background()); err != nil {
			slogger.Warn("shutdown incomplete", "error", err)
		}
	}()

	if hint := strings.TrimSpace(strings.Join(os.Args[1:], " ")); hint != "" {
		article, err := application.RunOnce(ctx, hint)
		if err != nil {
			slogger.Error("generation run failed", "hint", hint, "error", err)
			os.Exit(1)
		}
		fmt.Printf("created article %s (%s)\n", article.Slug, article.ID)
		return
	}

	if err := application.StartScheduler(ctx); err != nil {
		slogger.Error("scheduler start failed", "error", err)
		os.Exit(1)
	}
	slogger.Info("scheduler running", "interval", cfg.Scheduler.IntervalDuration())
	<-ctx.Done()
}
