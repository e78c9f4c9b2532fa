package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/example/irctc-booker/internal/application/workflow"
	"github.com/example/irctc-booker/internal/domain/booking"
	"github.com/example/irctc-booker/internal/infrastructure/browser"
	"github.com/example/irctc-booker/internal/infrastructure/config"
	"github.com/example/irctc-booker/internal/infrastructure/irctc"
	"github.com/example/irctc-booker/internal/infrastructure/ocr"
)

func newBookCmd() *cobra.Command {
	var (
		configPath  string
		headless    bool
		userDataDir string
		logLevel    string
	)

	c := &cobra.Command{
		Use:   "book",
		Short: "Run one booking attempt end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setupLogger(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			raw, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plan, err := booking.ParsePlan(raw, time.Now())
			if err != nil {
				return fmt.Errorf("invalid booking config: %w", err)
			}
			log.Info("booking plan validated",
				zap.String("train", plan.TrainNumber),
				zap.String("quota", string(plan.Quota)),
				zap.Bool("tatkal_window", plan.Schedule.TatkalWindow),
				zap.Int("passengers", len(plan.Passengers)))

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			drv, err := browser.New(ctx, log, browser.Options{
				Headless:    headless,
				UserDataDir: userDataDir,
			})
			if err != nil {
				return err
			}

			orch := &workflow.Orchestrator{
				Driver: drv,
				Captcha: &workflow.CaptchaResolver{
					Enabled:   plan.CaptchaAutoSolve,
					Extractor: ocr.New(),
					Log:       log,
				},
				Log: log,
				URL: irctc.TrainSearchURL,
				Sel: irctc.Selectors(),
			}

			state, runErr := orch.Run(ctx, plan)

			if orch.Committed() {
				// Payment may need the operator: the UPI approval, or
				// recovery from a late failure. The session stays open
				// until they are done.
				color.Yellow("run reached %s; browser left open for manual completion", state)
				fmt.Fprint(os.Stdout, "press Enter to close the browser... ")
				waitForEnter(cmd)
				_ = drv.Close(context.Background())
			} else {
				_ = drv.Close(context.Background())
			}

			if runErr != nil {
				return fmt.Errorf("booking run failed: %w", runErr)
			}
			color.Green("booking run completed: payment submitted")
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to the booking properties file")
	c.Flags().BoolVar(&headless, "headless", false, "run the browser headless (captcha entry then requires auto-solve)")
	c.Flags().StringVar(&userDataDir, "user-data-dir", "", "persistent Chrome profile directory")
	c.Flags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return c
}

func waitForEnter(cmd *cobra.Command) {
	r := bufio.NewReader(cmd.InOrStdin())
	_, _ = r.ReadString('\n')
}
