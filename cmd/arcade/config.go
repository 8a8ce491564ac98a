package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/config"
)

var flagDefaults string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show where configuration is read from",
	Long: `List each configuration file and the source it is loaded from:
an explicit path, ~/.arcade/configs, ./configs, or the embedded default.

--defaults <name> prints the embedded YAML for arcade, coins, snake, mines or pong,
ready to copy into ~/.arcade/configs and edit.

Examples:
  arcade config
  arcade config --defaults coins > ~/.arcade/configs/coins.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagDefaults, "defaults", "", "Print the embedded default YAML for a config name")
}

var configNames = []string{"arcade", "coins", "snake", "mines", "pong"}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults != "" {
		data := config.GetDefaultYAML(flagDefaults)
		if data == nil {
			return fmt.Errorf("no embedded config named %q, use one of %v", flagDefaults, configNames)
		}
		_, err := os.Stdout.Write(data)
		return err
	}

	fmt.Printf("User config directory: %s\n\n", config.UserConfigDir())
	for _, name := range configNames {
		custom := ""
		if name == "arcade" {
			custom = flagConfig
		}
		source := config.Locate(name, custom)
		if source == "" {
			source = "(embedded default)"
		}
		fmt.Printf("  %-7s %s\n", name, source)
	}

	fmt.Println()
	fmt.Printf("Controls: up=%s down=%s left=%s right=%s action_a=%s action_b=%s pause=%s restart=%s quit=%s\n",
		arcadeCfg.Controls.Up, arcadeCfg.Controls.Down, arcadeCfg.Controls.Left, arcadeCfg.Controls.Right,
		arcadeCfg.Controls.ActionA, arcadeCfg.Controls.ActionB, arcadeCfg.Controls.Pause,
		arcadeCfg.Controls.Restart, arcadeCfg.Controls.Quit)
	return nil
}
