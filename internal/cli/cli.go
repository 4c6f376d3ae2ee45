package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/klokku/eventcalendar/internal/app"
	"github.com/klokku/eventcalendar/internal/config"
	"github.com/klokku/eventcalendar/internal/event_bus"
	"github.com/klokku/eventcalendar/internal/utils"
	"github.com/klokku/eventcalendar/pkg/page"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "./config/application.yaml"

func NewRootCommand() *cobra.Command {
	var configPath string
	var listen string

	serve := func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if listen != "" {
			cfg.Listen = listen
		}
		log.WithFields(log.Fields{
			"listen":         cfg.Listen,
			"seed":           cfg.Calendar.Seed,
			"week_start":     cfg.Calendar.WeekStart,
			"sweep_interval": cfg.Sweep.Interval,
		}).Info("Effective configuration")

		application, err := app.NewApplication(cfg)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return application.Run(ctx)
	}

	rootCmd := &cobra.Command{
		Use:           "eventcalendar",
		Short:         "A single page calendar with expiring events",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "Path to the YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calendar page and API",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config)")
	rootCmd.Flags().StringVar(&listen, "listen", "", "HTTP listen address (overrides config)")

	var dateString string
	monthCmd := &cobra.Command{
		Use:   "month",
		Short: "Print the month grid of a freshly started calendar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			clock := utils.SystemClock{}
			selected := utils.StartOfDay(clock.Now())
			if dateString != "" {
				selected, err = utils.ParseDate(dateString)
				if err != nil {
					return err
				}
			}
			store := app.NewStore(cfg, clock, event_bus.NewEventBus())
			month := page.BuildMonth(selected, clock.Now(), cfg.Calendar.FirstWeekday(), store.EventsOnDate)
			return page.RenderText(cmd.OutOrStdout(), month)
		},
	}
	monthCmd.Flags().StringVar(&dateString, "date", "", "Day to select, YYYY-MM-DD (default today)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(monthCmd)
	rootCmd.AddCommand(configCmd)

	return rootCmd
}

// Execute runs the command tree with a background context.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
