package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameShowCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameAbandonCmd())
	cmd.AddCommand(newGameFireCmd())
	cmd.AddCommand(newGamePollCmd())
	cmd.AddCommand(newGameStatsCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new game and wait for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult

			if err := client.Post("/api/v1/games", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Game)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List open games waiting for an opponent",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OpenGamesResult

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a game's full state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Game)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <id>",
		Short: "Join an open game as the second player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Game)
			return nil
		},
	}
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a game you created before anyone joins",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/cancel", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game cancelled")
			return nil
		},
	}
}

func newGameAbandonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "abandon <id>",
		Short: "Abandon an active game, forfeiting to your opponent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/abandon", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result.Game)
			return nil
		},
	}
}

func newGameFireCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fire <id> <x> <y>",
		Short: "Fire at a cell on your opponent's board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid x: %w", err)
			}

			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid y: %w", err)
			}

			req := map[string]int{"x": x, "y": y}
			var result MoveResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/moves", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGamePollCmd() *cobra.Command {
	var lastMoveID int64

	cmd := &cobra.Command{
		Use:   "poll <id>",
		Short: "Poll a game for moves newer than a cursor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/games/%s/poll?last_move_id=%d", args[0], lastMoveID)

			var result PollResult

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&lastMoveID, "last-move", 0, "ID of the last move already seen")

	return cmd
}

func newGameStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show your finished games",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result StatsResult

			if err := client.Get("/api/v1/games/stats", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
