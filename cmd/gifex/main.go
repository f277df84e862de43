// Command gifex lists and opens the saved GIFs of a Discord data package.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/custodia-labs/gifex/internal/adapters/driven/browser"
	"github.com/custodia-labs/gifex/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gifex/internal/adapters/driven/watch"
	"github.com/custodia-labs/gifex/internal/adapters/driving/cli"
	"github.com/custodia-labs/gifex/internal/core/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// watchDebounce collapses the burst of events an editor save produces.
const watchDebounce = 150 * time.Millisecond

func main() {
	cli.SetVersion(version)
	cli.SetConfigure(configure)

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

// configure builds the services once --config is known.
func configure(configDir string) error {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}

	loader := services.NewLoaderService()
	finder := services.NewFinderService()
	dispatch := services.NewDispatchService(browser.NewOpener())
	settings := services.NewSettingsService(store)
	watcher := services.NewWatchService(watch.NewWatcher(watchDebounce))

	cli.SetServices(cli.Services{
		Loader:   loader,
		Finder:   finder,
		Dispatch: dispatch,
		Settings: settings,
	})
	cli.SetTUIConfig(&cli.TUIConfig{
		LoaderService:   loader,
		FinderService:   finder,
		DispatchService: dispatch,
		SettingsService: settings,
		WatchService:    watcher,
	})
	return nil
}
