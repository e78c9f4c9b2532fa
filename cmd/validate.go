package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/irctc-booker/internal/domain/booking"
	"github.com/example/irctc-booker/internal/infrastructure/config"
)

func newValidateCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate the booking properties without touching the site",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := config.Load(configPath)
			if err != nil {
				return err
			}
			plan, err := booking.ParsePlan(raw, time.Now())
			if err != nil {
				color.Red("invalid booking config: %v", err)
				return fmt.Errorf("booking config %s is invalid", configPath)
			}

			color.Green("booking config %s is valid", configPath)
			fmt.Fprintf(os.Stdout, "  route:      %s -> %s on %s\n",
				plan.FromStation, plan.ToStation, plan.JourneyDateLiteral())
			fmt.Fprintf(os.Stdout, "  train:      %s class=%s quota=%s\n",
				plan.TrainNumber, plan.Class, plan.Quota)
			fmt.Fprintf(os.Stdout, "  passengers: %d\n", len(plan.Passengers))
			fmt.Fprintf(os.Stdout, "  schedule:   tatkal_window=%t search_label=%q\n",
				plan.Schedule.TatkalWindow, plan.Schedule.SearchDateLabel)
			if plan.TatkalRules() {
				color.Yellow("  tatkal timing gates are active for this run")
			}
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", config.DefaultPath, "path to the booking properties file")
	return c
}
