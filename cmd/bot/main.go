package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"homeworkbot/internal/app"
	"homeworkbot/internal/config"
	logx "homeworkbot/pkg/logx"
)

var (
	cfgPath string
	envFile string

	rootCmd = &cobra.Command{
		Use:           "homeworkbot",
		Short:         "Polls homework review statuses and reports changes to Telegram",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&cfgPath, "config", "c", "", "optional config file (yaml or json)")
	flags.StringVar(&envFile, "env-file", ".env", "dotenv file with PRACTICUM_TOKEN, TELEGRAM_TOKEN, TELEGRAM_CHAT_ID")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	bootLog := logx.NewConsole("INFO").With(logx.String("comp", "main"))

	if err := config.LoadDotEnv(envFile); err != nil {
		bootLog.Critical("failed to read env file", logx.String("path", envFile), logx.Err(err))
		return err
	}

	a, err := app.NewApp(app.Options{ConfigPath: cfgPath})
	if err != nil {
		var ms *config.MissingSecretsError
		if errors.As(err, &ms) {
			bootLog.Critical("required environment variables are missing", logx.Strings("missing", ms.Missing))
		} else {
			bootLog.Critical("startup failed", logx.Err(err))
		}
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if err := a.Start(ctx); err != nil {
		bootLog.Critical("start failed", logx.Err(err))
		return err
	}

	reason := app.StopAppStop
	select {
	case sig := <-sigCh:
		reason = app.StopSIGTERM
		if sig == os.Interrupt {
			reason = app.StopSIGINT
		}
	case <-a.Done():
		reason = app.StopFatalError
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer stopCancel()
	_ = a.Stop(stopCtx, reason)

	if reason == app.StopFatalError {
		if err := a.Err(); err != nil {
			return fmt.Errorf("fatal: %w", err)
		}
	}
	return nil
}
