// Package cli implements the gifex command line with cobra.
package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gifex/internal/core/ports/driving"
	"github.com/custodia-labs/gifex/internal/logger"
)

// version is set at build time.
var version = "dev"

var (
	verbose   bool
	configDir string
)

// Services wired in by main.
var (
	loaderService   driving.LoaderService
	finderService   driving.FinderService
	dispatchService driving.DispatchService
	settingsService driving.SettingsService
)

// configure runs once flags are parsed, before any command.
var configure func(configDir string) error

var rootCmd = &cobra.Command{
	Use:   "gifex",
	Short: "Export saved GIFs from a Discord data package",
	Long: `gifex reads the user.json file of a Discord data package
(package/Account/user.json), finds your saved GIFs under
favoriteGifs -> gifs and lists or opens every link.

Run 'gifex tui' for the interactive exporter.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if configure != nil {
			return configure(configDir)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log pipeline steps to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default ~/.gifex)")
}

// Services bundles the core services used by the commands.
type Services struct {
	Loader   driving.LoaderService
	Finder   driving.FinderService
	Dispatch driving.DispatchService
	Settings driving.SettingsService
}

// SetServices sets the services used by the commands.
func SetServices(s Services) {
	loaderService = s.Loader
	finderService = s.Finder
	dispatchService = s.Dispatch
	settingsService = s.Settings
}

// SetConfigure registers fn to run after flag parsing with the value of
// --config. main uses it to build services that depend on the config
// location.
func SetConfigure(fn func(configDir string) error) {
	configure = fn
}

// SetVersion sets the version reported by 'gifex version'.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command. Command output goes to stdout so it can
// be piped; errors and issues go to stderr.
func Execute() error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.Execute()
}

var errNoLoader = errors.New("loader service not configured")
