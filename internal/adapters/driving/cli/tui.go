package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/gifex/internal/adapters/driving/tui"
	"github.com/custodia-labs/gifex/internal/core/ports/driving"
)

// TUIConfig holds configuration for the TUI command.
type TUIConfig struct {
	LoaderService   driving.LoaderService
	FinderService   driving.FinderService
	DispatchService driving.DispatchService
	SettingsService driving.SettingsService
	WatchService    driving.WatchService
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

var tuiWatch bool

// tuiRun starts the app. Tests replace it to avoid taking over the terminal.
var tuiRun = func(app *tui.App) error {
	return app.Run()
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui [file]",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for gifex.

Type the path of package/Account/user.json (or pick it with p), and the
saved GIFs are listed in a table. Open them one at a time or all at once.

Controls:
  Enter    - Load file / Open selected GIF
  Tab      - Switch between path and table
  ↑/k, ↓/j - Navigate GIFs
  o        - Open selected GIF
  Ctrl+O   - Open all GIFs
  p        - Pick a file
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	tuiCmd.Flags().BoolVarP(&tuiWatch, "watch", "w", false, "reload the file when it changes on disk")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	// Build ports from configuration
	ports := &tui.Ports{}

	if tuiConfig != nil {
		ports.Loader = tuiConfig.LoaderService
		ports.Finder = tuiConfig.FinderService
		ports.Dispatch = tuiConfig.DispatchService
		ports.Settings = tuiConfig.SettingsService
		ports.Watch = tuiConfig.WatchService
	}

	// Create the TUI app
	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	var path string
	if len(args) == 1 {
		path = args[0]
	}
	app.WithContext(cmd.Context()).WithFile(path, tuiWatch)

	if err := tuiRun(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
