package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ravinder2932/Media-Management/internal/config"
	"github.com/ravinder2932/Media-Management/internal/db"
	"github.com/ravinder2932/Media-Management/internal/portal"
)

type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

func NewRootCmd(v VersionInfo) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "media-management",
		Short: "Login-gated media portal: folders, uploads, share links, admin panel",
		Long: `media-management runs an interactive portal over an in-memory state store.
All users, folders, files, and share links live in process memory and are
discarded when the shell exits.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config path (default: platform user config)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print config location and effective config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			fmt.Printf("Config path: %s\n", path)
			if err := config.Validate(cfg); err != nil {
				fmt.Printf("Validation: failed (%v)\n", err)
			} else {
				fmt.Println("Validation: ok")
			}
			b, _ := json.MarshalIndent(cfg, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := strings.TrimSpace(configPath)
			if path == "" {
				p, err := config.PathFromEnv()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("Config written to %s\n", path)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("media-management %s\ncommit: %s\nbuilt: %s\n", v.Version, v.Commit, v.Date)
		},
	}

	cmd.AddCommand(configCmd, initCmd, versionCmd)
	return cmd
}

func loadConfig(override string) (string, config.Config, error) {
	path := strings.TrimSpace(override)
	if path == "" {
		p, err := config.PathFromEnv()
		if err != nil {
			return "", config.Config{}, err
		}
		path = p
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return "", config.Config{}, err
	}
	return path, cfg, nil
}

func newLogger(level string) *slog.Logger {
	handlerLevel := new(slog.LevelVar)
	handlerLevel.Set(parseLogLevel(level))
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: handlerLevel}))
}

func parseLogLevel(value string) slog.Level {
	switch strings.ToLower(value) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runShell(configPath string) error {
	path, cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	store, err := db.Open()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := portal.New(store, cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	go p.Session.Watch(ctx)

	fmt.Printf("media-management portal (config: %s)\n", path)
	fmt.Println("State is held in memory only and will be lost on exit.")
	fmt.Println("Type 'help' for commands.")
	return newShell(p, cfg).run(ctx)
}
