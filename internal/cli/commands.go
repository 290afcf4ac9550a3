package cli

import "github.com/spf13/cobra"

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "List players by descending Glory Points",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			var players []Player
			if err := client.Get("/api/v1/players", &players); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(players)
			return nil
		},
	}
}

func newGamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List games by descending creation time",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			var games []Game
			if err := client.Get("/api/v1/games", &games); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(games)
			return nil
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			var result HealthResult
			if err := client.Get("/api/v1/health", &result); err != nil {
				out.PrintError(err)
				return err
			}
			out.Print(result)
			return nil
		},
	}
}
