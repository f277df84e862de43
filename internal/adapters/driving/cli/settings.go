package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the key path, projection policy and open pacing.

Settings are stored in ~/.gifex/config.toml unless --config is given.
Flags on find and open override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting.

Keys:
  search.container_key  key holding the list container (favoriteGifs)
  search.list_key       key of the GIF list (gifs)
  search.policy         skip, strict or keep
  open.target           src or id
  open.rate             links per second, 0 for no pacing
  open.burst            links launched back to back`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Container key: %s\n", settings.Search.Path.Container)
	cmd.Printf("  List key: %s\n", settings.Search.Path.List)
	cmd.Printf("  Policy: %s (%s)\n", settings.Search.Policy, settings.Search.Policy.Description())
	cmd.Println()

	cmd.Println("[Open]")
	cmd.Printf("  Target: %s\n", settings.Open.Target)
	if settings.Open.Rate > 0 {
		cmd.Printf("  Rate: %g links/s\n", settings.Open.Rate)
	} else {
		cmd.Println("  Rate: unpaced")
	}
	cmd.Printf("  Burst: %d\n", settings.Open.Burst)
	cmd.Println()

	cmd.Printf("Config file: %s\n", settingsService.Path())
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w (keys: %s)", key, err, strings.Join(settingsService.Keys(), ", "))
	}

	cmd.Printf("Set %s to %s\n", key, value)
	return nil
}
