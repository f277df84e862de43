package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/session"
)

var (
	openTarget string
	openRate   float64
	openBurst  int
	openDryRun bool
	openYes    bool
)

// stdinIsTerminal reports whether the confirmation prompt can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var openCmd = &cobra.Command{
	Use:   "open [file]",
	Short: "Open every saved GIF in the browser",
	Long: `Finds the saved GIFs like 'gifex find' and opens each link in a new
browser tab. Links are launched a few per second (see --rate) so the
browser keeps up.

By default the src link (the media file) is opened. Use --target id to
open the Tenor page instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVarP(&openTarget, "target", "t", "", "link to open: src or id (default from settings, src)")
	openCmd.Flags().Float64Var(&openRate, "rate", -1, "links per second, 0 for no pacing (default from settings)")
	openCmd.Flags().IntVar(&openBurst, "burst", 0, "links launched back to back (default from settings)")
	openCmd.Flags().BoolVar(&openDryRun, "dry-run", false, "print the links instead of opening them")
	openCmd.Flags().BoolVarP(&openYes, "yes", "y", false, "do not ask for confirmation")
	addSearchFlags(openCmd)
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	if dispatchService == nil {
		return errors.New("dispatch service not configured")
	}

	opts, err := openOptions()
	if err != nil {
		return err
	}

	state, err := loadAndFind(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	cmd.Println(bannerStyle.Render(state.Banner()))
	if state.Status() == session.StatusEmpty {
		return nil
	}
	printIssues(cmd, state.Result.Issues)
	if state.Count() == 0 {
		return nil
	}

	if !opts.DryRun && !openYes {
		ok, err := confirmOpen(cmd, state.Count())
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := dispatchService.OpenAll(ctx, state.Result.Set, opts)
	if report != nil {
		printReport(cmd, report)
	}
	if err != nil {
		return fmt.Errorf("open interrupted: %w", err)
	}
	if len(report.Failed) > 0 {
		return fmt.Errorf("%d of %d links could not be opened", len(report.Failed), report.Requested)
	}
	return nil
}

// openOptions merges stored settings with the open flags.
func openOptions() (domain.OpenOptions, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return domain.OpenOptions{}, fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *stored
	}

	opts := settings.OpenOptions()
	if openTarget != "" {
		opts.Target = domain.OpenTarget(openTarget)
		if !opts.Target.IsValid() {
			return domain.OpenOptions{}, fmt.Errorf("unknown target %q (want src or id)", openTarget)
		}
	}
	if openRate >= 0 {
		opts.Rate = openRate
	}
	if openBurst > 0 {
		opts.Burst = openBurst
	}
	opts.DryRun = openDryRun
	return opts, nil
}

// confirmOpen asks before opening n tabs. A non-interactive stdin needs --yes.
func confirmOpen(cmd *cobra.Command, n int) (bool, error) {
	if !stdinIsTerminal() {
		return false, fmt.Errorf("refusing to open %d tabs without confirmation; pass --yes", n)
	}

	cmd.Printf("This will open %d new tabs. Continue? [y/N] ", n)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false, nil
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func printReport(cmd *cobra.Command, report *domain.DispatchReport) {
	if report.DryRun {
		cmd.Printf("Would open %d links:\n", len(report.Opened))
		for _, link := range report.Opened {
			cmd.Printf("  %s\n", link)
		}
	} else {
		cmd.Printf("Opened %d of %d links\n", len(report.Opened), report.Requested)
	}
	for _, f := range report.Failed {
		cmd.PrintErrf("  failed %s: %s\n", f.ID, f.Reason)
	}
}
