package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/timesheet-offline/timeclock-client-go/internal/admin"
	"github.com/timesheet-offline/timeclock-client-go/internal/api"
	"github.com/timesheet-offline/timeclock-client-go/internal/config"
	"github.com/timesheet-offline/timeclock-client-go/internal/kiosk"
	"github.com/timesheet-offline/timeclock-client-go/internal/nav"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/download"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/logging"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/storage"
	"github.com/timesheet-offline/timeclock-client-go/internal/pkg/timer"
	"github.com/timesheet-offline/timeclock-client-go/internal/session"
	"github.com/timesheet-offline/timeclock-client-go/internal/term"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := logging.New(os.Stderr, cfg.App.Env, cfg.App.LogLevel)

	saver, err := download.NewLocalSaver(cfg.App.DownloadDir)
	if err != nil {
		fmt.Println("Error preparing download directory:", err)
		return
	}

	console := term.NewConsole(os.Stdin, os.Stdout)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout, saver, console, logger)

	sess := session.NewStore(storage.NewFileStorage(cfg.Session.StoragePath), logger)
	sess.Restore()

	navc := nav.NewController()
	newKiosk := func() *kiosk.Machine {
		return kiosk.NewMachine(client, timer.System(), logger, cfg.Kiosk)
	}
	login := admin.NewLogin(client, sess, navc, logger)
	workspace := admin.NewWorkspace(client, sess, navc, console, console, logger, cfg.Kiosk.StatusInterval)

	app := term.NewApp(console, navc, sess, newKiosk, login, workspace, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Time clock starting", "api", cfg.API.BaseURL)
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
