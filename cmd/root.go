package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/signup/internal/app"
	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	logFile   string
)

var rootCmd = &cobra.Command{
	Use:   "signup",
	Short: "A terminal user registration form",
	Long: `A terminal registration form with inline validation. Accepted
registrations show a confirmation card that returns to an empty form after a
configurable delay.`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .signup/config.yaml or ~/.config/signup/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging (also SIGNUP_DEBUG)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"debug log path (default: debug.log, also SIGNUP_LOG)")
	rootCmd.Flags().Duration("success-delay", 0,
		"how long the success card stays up (overrides form.success_delay)")
	rootCmd.Flags().String("locale", "",
		"message language: en or pt-BR (overrides form.locale)")
}

// loadConfig resolves and reads the config file. Flags named after config
// keys override the file. The returned path is empty when no file exists.
func loadConfig(cmd *cobra.Command) (config.Config, string, error) {
	path, found := config.Locate(cfgFile)
	if !found {
		path = ""
	}

	v := viper.New()
	if f := cmd.Flags().Lookup("success-delay"); f != nil && f.Changed {
		_ = v.BindPFlag("form.success_delay", f)
	}
	if f := cmd.Flags().Lookup("locale"); f != nil && f.Changed {
		_ = v.BindPFlag("form.locale", f)
	}

	cfg, err := config.Load(v, path)
	if err != nil {
		return config.Config{}, "", err
	}
	return cfg, path, nil
}

// setupLogging installs the file logger when debug mode is on.
func setupLogging() (debug bool, cleanup func(), err error) {
	debug = debugFlag || os.Getenv("SIGNUP_DEBUG") != ""
	if !debug {
		return false, func() {}, nil
	}

	logPath := logFile
	if logPath == "" {
		logPath = os.Getenv("SIGNUP_LOG")
	}
	if logPath == "" {
		logPath = "debug.log"
	}

	cleanup, err = log.Init(logPath)
	if err != nil {
		return false, nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "Signup starting", "version", version, "logPath", logPath)
	return true, cleanup, nil
}

// newController builds the registration controller from cfg.
func newController(cfg config.Config, provider *tracing.Provider) (*registration.Controller, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	opts := registration.DefaultOptions()
	opts.SuccessDelay = cfg.Form.SuccessDelay
	opts.RevalidateOnChange = cfg.Form.RevalidateOnChange
	opts.Catalog = cat
	opts.Tracer = provider.Tracer()
	return registration.New(opts), nil
}

// shutdownTracing flushes spans with a bounded wait.
func shutdownTracing(provider *tracing.Provider) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := provider.Shutdown(ctx); err != nil {
		log.ErrorErr(log.CatTrace, "Tracing shutdown failed", err)
	}
}

func runApp(cmd *cobra.Command, _ []string) error {
	cfg, configPath, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	debug, cleanup, err := setupLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	// The stdout exporter would draw over the alt screen; hold its output
	// until the program exits.
	var spans bytes.Buffer
	if cfg.Tracing.Exporter == tracing.ExporterStdout {
		cfg.Tracing.Writer = &spans
	}
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	ctrl, err := newController(cfg, provider)
	if err != nil {
		return err
	}

	model := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Debug:      debug,
		Controller: ctrl,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(&model, opts...)

	_, err = p.Run()

	// Stops the watcher and the pending revert timer.
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	shutdownTracing(provider)
	if spans.Len() > 0 {
		_, _ = io.Copy(cmd.OutOrStdout(), &spans)
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
