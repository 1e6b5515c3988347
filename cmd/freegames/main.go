// Package main provides the freegames CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/free-games-service/internal/app/games"
	"github.com/preston-bernstein/free-games-service/internal/config"
	"github.com/preston-bernstein/free-games-service/internal/display"
	domaingames "github.com/preston-bernstein/free-games-service/internal/domain/games"
	"github.com/preston-bernstein/free-games-service/internal/logging"
	"github.com/preston-bernstein/free-games-service/internal/metrics"
	"github.com/preston-bernstein/free-games-service/internal/providers"
	"github.com/preston-bernstein/free-games-service/internal/server"
)

var version = "dev"

const commandTimeout = 45 * time.Second

// newService is swapped in tests to avoid live upstreams.
var newService = func(cfg config.Config, logger *slog.Logger) *games.Service {
	return server.NewGamesService(cfg, logger, metrics.NewRecorder())
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "freegames",
		Short:        "List free games and app deals",
		Long:         "freegames aggregates store giveaways and free mobile app deals into one listing.",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.SetVersionTemplate("freegames version {{.Version}}\n")

	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newFeedCmd())

	return rootCmd
}

func newGamesCmd() *cobra.Command {
	var platform string
	var window string
	var limit int

	cmd := &cobra.Command{
		Use:   "games",
		Short: "List free games",
		Long:  "List free games for a platform, newest first, optionally limited to the last week or month.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := domaingames.ParsePlatform(platform)
			if !ok {
				return fmt.Errorf("invalid platform %q: must be one of %v", platform, domaingames.Platforms)
			}
			filter, ok := domaingames.ParseTimeFilter(window)
			if !ok {
				return fmt.Errorf("invalid time %q: must be 'all', 'weekly' or 'monthly'", window)
			}
			if limit < 0 {
				return fmt.Errorf("invalid limit %d: must not be negative", limit)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			res := serviceFor(cmd).CollectByTime(ctx, filter, p)
			list := res.Games
			if limit > 0 && len(list) > limit {
				list = list[:limit]
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatGames(list, res.Outcomes))
			return nil
		},
	}

	cmd.Flags().StringVarP(&platform, "platform", "p", "all", "Platform (all, steam, playstation, xbox, gog, android, ios)")
	cmd.Flags().StringVarP(&window, "time", "t", "all", "Release window (all, weekly, monthly)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of games to display (0 for no limit)")

	return cmd
}

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show a single giveaway",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			game, err := serviceFor(cmd).GameByID(ctx, args[0])
			if errors.Is(err, providers.ErrNotFound) {
				return fmt.Errorf("giveaway %q not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("lookup giveaway %q: %w", args[0], err)
			}
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatDetail(game))
			return nil
		},
	}
}

func newFeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "feed <android|ios>",
		Short:     "Show raw mobile deals",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domaingames.PlatformAndroid), string(domaingames.PlatformIOS)},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := domaingames.ParsePlatform(args[0])
			if !ok || !p.IsMobile() {
				return fmt.Errorf("invalid feed %q: must be 'android' or 'ios'", args[0])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			list, outcome := serviceFor(cmd).FeedGames(ctx, p)
			fmt.Fprint(cmd.OutOrStdout(), display.NewTerminalFormatter().FormatDeals(list, outcome))
			return nil
		},
	}
}

// serviceFor loads configuration and builds the service. Logs go to stderr so
// they never interleave with the rendered listing.
func serviceFor(cmd *cobra.Command) *games.Service {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: .env not loaded: %v\n", err)
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "warn"
	}
	logger := logging.NewLogger(logging.Config{
		Level:   level,
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "freegames",
		Version: version,
		Output:  cmd.ErrOrStderr(),
	})
	return newService(config.Load(), logger)
}

