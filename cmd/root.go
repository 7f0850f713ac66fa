package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/zhubert/codechat/internal/api"
	"github.com/zhubert/codechat/internal/app"
	"github.com/zhubert/codechat/internal/clipboard"
	"github.com/zhubert/codechat/internal/config"
	"github.com/zhubert/codechat/internal/logger"
	"github.com/zhubert/codechat/internal/session"
)

var (
	serverURL             string
	requestTimeout        string
	logPath               string
	debugMode             bool
	quietMode             bool
	version, commit, date string

	// settings is filled in before any command runs.
	settings *config.Settings
)

// Seams replaced in tests.
var (
	loadConfig = config.Load
	newBackend = func(s *config.Settings) api.Backend {
		return api.NewClient(s.ServerURL, s.RequestTimeout)
	}
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "codechat",
	Short: "Terminal client for a CodeChat coding assistant",
	Long: `CodeChat is a terminal client for a coding-assistant backend.

Run it without arguments for the interactive chat, or use the subcommands
to manage conversations and ask one-off questions from scripts.`,
	PersistentPreRunE: loadSettings,
	RunE:              runTUI,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&serverURL, "server", config.DefaultServerURL, "Backend base URL")
	pf.StringVar(&requestTimeout, "timeout", config.DefaultRequestTimeout.String(), "Request timeout (e.g. 90s, 2m)")
	pf.StringVar(&logPath, "log", logger.DefaultLogPath, "Debug log file")
	pf.BoolVar(&debugMode, "debug", false, "Enable debug logging")
	pf.BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to warnings and errors")
}

// loadSettings merges flags, environment, and the env file, then opens the log.
func loadSettings(cmd *cobra.Command, args []string) error {
	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	s, err := config.LoadSettings(v)
	if err != nil {
		return err
	}
	settings = s

	if err := logger.Init(s.LogPath); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	initLogLevel(s)
	logger.WithComponent("cmd").Debug("settings loaded", "server", s.ServerURL, "timeout", s.RequestTimeout)
	return nil
}

func initLogLevel(s *config.Settings) {
	switch {
	case s.Quiet:
		logger.SetLevel(logger.LevelWarn)
	case s.Debug:
		logger.SetDebug(true)
	default:
		logger.SetDebug(false)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("codechat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("codechat %s\n", version)
}

// commandContext is cancelled on SIGINT or SIGTERM.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// openSession loads the preference file and connects a session to the backend.
func openSession() (*session.Session, *config.Config, api.Backend, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	backend := newBackend(settings)
	return session.New(backend, cfg), cfg, backend, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	defer logger.Close()

	m := app.New(app.Deps{
		Config:    cfg,
		Backend:   newBackend(settings),
		Clipboard: clipboard.NewSystem(),
		Version:   version,
	})
	defer m.Close()
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
