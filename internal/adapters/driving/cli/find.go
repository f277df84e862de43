package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/gifex/internal/core/domain"
	"github.com/custodia-labs/gifex/internal/core/session"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	findFormat string

	searchContainer string
	searchList      string
	searchPolicy    string
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true)
	noticeStyle = lipgloss.NewStyle().Faint(true)
)

var findCmd = &cobra.Command{
	Use:   "find [file]",
	Short: "List the saved GIFs in an export file",
	Long: `Reads a Discord user.json, finds favoriteGifs -> gifs and prints
every GIF identifier with its src link.

Entries without a string src are skipped and reported unless --policy
says otherwise:
  skip    - leave them out (default)
  strict  - fail on the first one
  keep    - list them with an empty link`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVarP(&findFormat, "format", "f", formatTable, "output format: table, json or yaml")
	addSearchFlags(findCmd)
	rootCmd.AddCommand(findCmd)
}

// addSearchFlags registers the key path and policy flags shared by
// find and open. Empty values fall back to settings.
func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&searchContainer, "container", "", "container key (default from settings, favoriteGifs)")
	cmd.Flags().StringVar(&searchList, "list", "", "list key (default from settings, gifs)")
	cmd.Flags().StringVar(&searchPolicy, "policy", "", "entries without src: skip, strict or keep")
}

// findOutput is the machine-readable form of a search.
type findOutput struct {
	File   string              `json:"file" yaml:"file"`
	Path   string              `json:"path" yaml:"path"`
	Count  int                 `json:"count" yaml:"count"`
	GIFs   []domain.GifRecord  `json:"gifs" yaml:"gifs"`
	Issues []domain.EntryIssue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

func runFind(cmd *cobra.Command, args []string) error {
	switch findFormat {
	case formatTable, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", findFormat)
	}

	state, err := loadAndFind(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	switch findFormat {
	case formatJSON:
		return outputFindJSON(cmd, state)
	case formatYAML:
		return outputFindYAML(cmd, state)
	default:
		return outputFindTable(cmd, state)
	}
}

// loadAndFind loads path and runs the search configured by settings and
// flags, returning the resulting session state. Failures come back as
// errors carrying the banner text.
func loadAndFind(ctx context.Context, path string) (session.State, error) {
	var state session.State
	if loaderService == nil {
		return state, errNoLoader
	}
	if finderService == nil {
		return state, errors.New("finder service not configured")
	}

	keyPath, policy, err := searchOptions()
	if err != nil {
		return state, err
	}

	doc, err := loaderService.LoadFile(ctx, path)
	if err != nil {
		return state, asUserError(err)
	}
	state = session.Update(state, session.Loaded{Document: doc})

	result, err := finderService.Find(ctx, doc, keyPath, policy)
	if err != nil {
		return session.Update(state, session.SearchFailed{Err: err}), asUserError(err)
	}
	return session.Update(state, session.Searched{Result: result}), nil
}

// searchOptions merges stored settings with the search flags.
func searchOptions() (domain.KeyPath, domain.ProjectionPolicy, error) {
	settings := domain.DefaultAppSettings()
	if settingsService != nil {
		stored, err := settingsService.Get()
		if err != nil {
			return domain.KeyPath{}, "", fmt.Errorf("failed to get settings: %w", err)
		}
		settings = *stored
	}

	keyPath := settings.Search.Path
	if searchContainer != "" {
		keyPath.Container = searchContainer
	}
	if searchList != "" {
		keyPath.List = searchList
	}

	policy := settings.Search.Policy
	if searchPolicy != "" {
		policy = domain.ProjectionPolicy(searchPolicy)
		if !policy.IsValid() {
			return domain.KeyPath{}, "", fmt.Errorf("unknown policy %q (want skip, strict or keep)", searchPolicy)
		}
	}
	return keyPath, policy, nil
}

func newFindOutput(state session.State) findOutput {
	out := findOutput{
		File:  state.Document.Name,
		Path:  state.Result.Path.String(),
		Count: state.Count(),
		GIFs:  state.Result.Set.Records(),
	}
	if out.GIFs == nil {
		out.GIFs = []domain.GifRecord{}
	}
	out.Issues = state.Result.Issues
	return out
}

func outputFindJSON(cmd *cobra.Command, state session.State) error {
	data, err := json.MarshalIndent(newFindOutput(state), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFindYAML(cmd *cobra.Command, state session.State) error {
	data, err := yaml.Marshal(newFindOutput(state))
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func outputFindTable(cmd *cobra.Command, state session.State) error {
	doc := state.Document
	cmd.Println(noticeStyle.Render(fmt.Sprintf("%s (%s)", doc.Name, humanize.Bytes(uint64(doc.Size)))))
	cmd.Println(bannerStyle.Render(state.Banner()))

	if state.Status() == session.StatusEmpty {
		return nil
	}

	if state.Count() > 0 {
		cmd.Println(gifTable(state.Result.Set.Records()))
	}
	printIssues(cmd, state.Result.Issues)
	return nil
}

// gifTable renders records as a numbered table.
func gifTable(records []domain.GifRecord) string {
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.ID, r.Src})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "ID", "SRC").
		Rows(rows...).
		String()
}

func printIssues(cmd *cobra.Command, issues []domain.EntryIssue) {
	if len(issues) == 0 {
		return
	}
	cmd.PrintErrf("%d entries have no usable src link:\n", len(issues))
	for _, issue := range issues {
		cmd.PrintErrf("  %s: %s\n", issue.ID, issue.Reason)
	}
}
