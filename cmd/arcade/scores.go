package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

var (
	flagExport string
	flagImport string
	flagClear  bool
	flagLimit  int
	flagMine   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show, export or import high scores",
	Long: `Display the top high scores for the specified game. Without a game,
print a summary of every game played so far.

--mine lists your own best scores across all games.

--export writes the scores as plain text, one integer per line, best first.
--import reads the same format; imported scores belong to --player.

Examples:
  arcade scores
  arcade scores --mine
  arcade scores coins
  arcade scores mines --limit 25
  arcade scores coins --export coins.txt
  arcade scores coins --import old-scores.txt
  arcade scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagExport, "export", "", "Write scores to a text file, '-' for stdout")
	scoresCmd.Flags().StringVar(&flagImport, "import", "", "Read scores from a text file")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores for the game")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show or export (0 = all when exporting)")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Show your own best scores across all games")
	scoresCmd.MarkFlagsMutuallyExclusive("export", "import", "clear", "mine")
}

func runScores(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		if flagExport != "" || flagImport != "" || flagClear {
			return fmt.Errorf("--export, --import and --clear need a game")
		}
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening scores database: %w", err)
		}
		defer store.Close()
		if flagMine {
			return showPlayerScores(store, playerName())
		}
		return showSummary(store)
	}
	if flagMine {
		return fmt.Errorf("--mine lists every game, drop the game argument")
	}
	gameID := args[0]

	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown game %q, run 'arcade list' to see available games", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagExport != "":
		return exportScores(store, gameID, cmd.Flags().Changed("limit"))
	case flagImport != "":
		return importScores(store, gameID)
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", info.Title)
		return nil
	}

	scores, err := store.TopScores(gameID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "------", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", i+1, entry.Player, entry.Score, dateStr)
	}

	fmt.Println()
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Best: %d  Games: %d  Players: %d\n", stats.HighScore, stats.GamesCount, stats.Players)
	}
	return nil
}

// exportScores writes every score unless --limit was given explicitly.
func exportScores(store *storage.Store, gameID string, limited bool) error {
	limit := 0
	if limited {
		limit = flagLimit
	}

	if flagExport == "-" {
		_, err := store.ExportText(os.Stdout, gameID, limit)
		return err
	}

	f, err := os.Create(flagExport)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	n, err := store.ExportText(f, gameID, limit)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	log.Info("scores exported", "game", gameID, "count", n, "path", flagExport)
	fmt.Printf("Exported %d scores to %s\n", n, flagExport)
	return nil
}

func importScores(store *storage.Store, gameID string) error {
	f, err := os.Open(flagImport)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	n, err := store.ImportText(f, gameID, playerName())
	if err != nil {
		return err
	}
	log.Info("scores imported", "game", gameID, "count", n, "path", flagImport)
	fmt.Printf("Imported %d scores from %s\n", n, flagImport)
	return nil
}

// showSummary prints one row per game that has scores.
func showSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No scores recorded yet. Run 'arcade list' to pick a game.")
		return nil
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Game", "Games", "Players", "Best", "Avg", "Last played")
	for _, info := range registry.List() {
		st, ok := all[info.ID]
		if !ok {
			continue
		}
		t.Row(info.Title,
			strconv.Itoa(st.GamesCount),
			strconv.Itoa(st.Players),
			strconv.Itoa(st.HighScore),
			fmt.Sprintf("%.0f", st.AvgScore),
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println(t)
	return nil
}

// showPlayerScores prints a player's best scores in any game.
func showPlayerScores(store *storage.Store, player string) error {
	scores, err := store.PlayerScores(player, flagLimit)
	if err != nil {
		return err
	}
	fmt.Printf("Best scores - %s\n\n", player)
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "Rank", "Game", "Score", "Date")
	fmt.Printf("  %-4s  %-16s  %-10s  %s\n", "----", "----", "-----", "----")
	for i, e := range scores {
		title := e.GameID
		if info, ok := registry.Lookup(e.GameID); ok {
			title = info.Title
		}
		fmt.Printf("  %-4d  %-16s  %-10d  %s\n", i+1, title, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
