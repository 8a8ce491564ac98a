package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/registry"
)

var flagListIDs bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game registered in the arcade.

Use --ids to print one game ID per line, for scripts and shell completion.`,
	Args: cobra.NoArgs,
	Run:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListIDs, "ids", false, "Print game IDs only")
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	out := cmd.OutOrStdout()

	if flagListIDs {
		for _, g := range games {
			fmt.Fprintln(out, g.ID)
		}
		return
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No games available.")
		return
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers("ID", "Title", "Description").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, g := range games {
		t.Row(g.ID, g.Title, g.Description)
	}

	fmt.Fprintln(out, t)
	fmt.Fprintln(out, "Run 'arcade play <id>' to play a game.")
}
