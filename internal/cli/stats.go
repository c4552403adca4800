package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"playstyle-quiz-service/internal/app"
	"playstyle-quiz-service/internal/config"
)

// NewStatsCmd groups statistics maintenance commands.
func NewStatsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Statistics maintenance",
	}

	var confirm bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Clear all aggregate statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("refusing to reset statistics without --yes")
			}
			return runStatsReset(cmd.Context(), *configPath)
		},
	}
	reset.Flags().BoolVar(&confirm, "yes", false, "confirm the reset")
	cmd.AddCommand(reset)
	return cmd
}

func runStatsReset(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := config.InitLogger(cfg.Log.Level, cfg.Log.Format)

	client := newRedisClient(cfg)
	if client == nil {
		return fmt.Errorf("redis not configured; in-memory statistics vanish with the server process")
	}
	defer client.Close()

	stats := app.NewStatsService(newStatsBackend(client, log), statsOptions(cfg), log)
	return stats.Reset(ctx)
}
