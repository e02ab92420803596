package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"atlasui/internal/api"
	"atlasui/internal/config"
	"atlasui/internal/logging"
	"atlasui/internal/telemetry"
	"atlasui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// runtime holds what every subcommand needs once flags are parsed.
type runtime struct {
	cfg      config.Config
	logger   *slog.Logger
	client   *api.Client
	provider *telemetry.Provider
	cleanup  func()
}

func (r *runtime) close() {
	if r.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.provider.Shutdown(ctx); err != nil && r.logger != nil {
			r.logger.Warn("tracer shutdown", "error", err)
		}
	}
	if r.cleanup != nil {
		r.cleanup()
	}
}

// newRootCmd builds the command tree. The returned func releases logging and
// tracing and must run after Execute.
func newRootCmd(getenv func(string) string) (*cobra.Command, func()) {
	rt := &runtime{}
	var (
		apiURL   string
		timeout  time.Duration
		logFile  string
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "atlasui",
		Short:         "Browse workout sessions and exercises from the WorkoutTracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(getenv)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("api-url") {
				cfg.APIURL = apiURL
			}
			if flags.Changed("timeout") {
				cfg.Timeout = timeout
			}
			if flags.Changed("log-file") {
				cfg.LogFile = logFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return rt.setup(cmd.Context(), cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			model := ui.NewAppModel(rt.client, rt.logger).AsTeaModel()
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run ui: %w", err)
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiURL, "api-url", config.DefaultAPIURL, "WorkoutTracker API base URL (env "+config.EnvAPIURL+")")
	pf.DurationVar(&timeout, "timeout", config.DefaultTimeout, "per-request timeout (env "+config.EnvAPITimeout+")")
	pf.StringVar(&logFile, "log-file", "", "log file path, empty for the user cache dir (env "+config.EnvLogFile+")")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error (env "+config.EnvLogLevel+")")

	sessionsCmd := &cobra.Command{
		Use:   "sessions",
		Short: "Print workout sessions as a table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := rt.client.ListWorkouts(cmd.Context())
			if err != nil {
				return err
			}
			return ui.RenderPlain(cmd.OutOrStdout(), ui.SessionsTitle, api.SessionColumns, rows)
		},
	}

	exercisesCmd := &cobra.Command{
		Use:   "exercises [workout-id]",
		Short: "Print the exercises of one workout session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := rt.client.ListExercises(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return ui.RenderPlain(cmd.OutOrStdout(), ui.ExercisesTitle, api.ExerciseColumns, rows)
		},
	}

	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(exercisesCmd)
	return rootCmd, rt.close
}

// setup wires logging, tracing and the API client from cfg.
func (r *runtime) setup(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger, cleanup, err := logging.Setup(logging.Options{
		File:   cfg.LogFile,
		Level:  cfg.LogLevel,
		SeqURL: cfg.SeqURL,
	})
	if err != nil {
		return err
	}
	r.cfg, r.logger, r.cleanup = cfg, logger, cleanup

	telemetry.RouteErrors(logger)
	provider, err := telemetry.NewProvider(ctx, cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		// Tracing is optional; keep going without it.
		logger.Warn("tracing disabled", "error", err)
		provider = nil
	}
	r.provider = provider

	r.client = api.NewClient(cfg.BaseURL(),
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(logger),
		api.WithTracer(provider.Tracer()),
	)
	logger.Info("starting", "api_url", cfg.BaseURL(), "timeout", cfg.Timeout.String())
	return nil
}
