package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/logger"
)

var (
	fetchOutputDir string
	fetchJSON      bool
	fetchShowTrace bool
	fetchTimeout   time.Duration
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [identifier]",
	Short: "Fetch the specification PDF for a product identifier",
	Long: `Resolves a 12-digit product identifier to its specification PDF.

Candidate URLs are probed in the configured order, newest API generation
first. The first URL that answers with a real PDF is downloaded and
saved into the output directory. Separators in the identifier are
ignored, so "9114 015 10832" and "9114.015.10832" both work.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutputDir, "output", "o", ".", "directory to save the PDF into")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "print the outcome as JSON")
	fetchCmd.Flags().BoolVar(&fetchShowTrace, "show-trace", false, "print the probe trace even on success")
	fetchCmd.Flags().DurationVar(&fetchTimeout, "timeout", 0, "transfer timeout for the committed download (e.g. 30s)")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if resolverService == nil {
		return errors.New("resolver not configured")
	}
	if fileSaver == nil {
		return errors.New("file saver not configured")
	}

	ctx := cmd.Context()

	// Strip separators before validation so formatted identifiers
	// ("9114.015.10832") resolve; shape errors still surface below.
	input := domain.Normalize(args[0])

	runID := uuid.NewString()[:8]
	logger.Debug("Run %s: raw input %q, normalised %q", runID, args[0], input)

	if fetchTimeout > 0 {
		resolverService.SetTransferTimeout(fetchTimeout)
	}
	if cmd.Flags().Changed("output") {
		if s, ok := fileSaver.(interface{ SetDir(string) }); ok {
			s.SetDir(fetchOutputDir)
		}
	}

	bar := newProbeBar(cmd)
	resolverService.SetProbeListener(func(result domain.ProbeResult) {
		if bar != nil {
			_ = bar.Add(1)
		}
		logger.Debug("Run %s: %s", runID, result)
	})
	defer resolverService.SetProbeListener(nil)

	outcome, err := resolverService.Resolve(ctx, input)
	if bar != nil {
		_ = bar.Exit()
		fmt.Fprintln(cmd.ErrOrStderr())
	}
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}
	logger.Debug("Run %s: finished with status %s", runID, outcome.Status)

	savedPath := ""
	if outcome.Status == domain.StatusFound {
		savedPath, err = fileSaver.Save(ctx, outcome.Document)
		if err != nil {
			return fmt.Errorf("failed to save document: %w", err)
		}
	}

	if fetchJSON {
		if err := outputFetchJSON(cmd, outcome, savedPath); err != nil {
			return err
		}
	} else {
		outputFetchText(cmd, outcome, savedPath)
	}

	if outcome.Failed() {
		return errors.New(outcome.Message)
	}
	return nil
}

// newProbeBar builds a progress bar over the configured candidate count.
// Returns nil when the output is not a terminal or no count is known.
func newProbeBar(cmd *cobra.Command) *progressbar.ProgressBar {
	if fetchJSON || templateStore == nil || !term.IsTerminal(int(os.Stdout.Fd())) {
		return nil
	}

	groups, err := templateStore.Groups(cmd.Context())
	if err != nil {
		return nil
	}
	total := 0
	for _, group := range groups {
		total += len(group.Templates)
	}
	if total == 0 {
		return nil
	}

	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("Probing candidates"),
		progressbar.OptionThrottle(80*time.Millisecond),
	)
}

// fetchReport is the machine-readable outcome printed by --json.
type fetchReport struct {
	Status    string
	Message   string `json:",omitempty"`
	SourceURL string `json:",omitempty"`
	SavedPath string `json:",omitempty"`
	Trace     []fetchTraceEntry
}

type fetchTraceEntry struct {
	URL       string
	Verified  bool
	Attempts  int
	LastError string `json:",omitempty"`
}

func outputFetchJSON(cmd *cobra.Command, outcome *domain.Outcome, savedPath string) error {
	report := fetchReport{
		Status:    outcome.Status.String(),
		Message:   outcome.Message,
		SavedPath: savedPath,
		Trace:     make([]fetchTraceEntry, 0, len(outcome.Trace)),
	}
	if outcome.Document != nil {
		report.SourceURL = outcome.Document.SourceURL
	}
	for _, result := range outcome.Trace {
		report.Trace = append(report.Trace, fetchTraceEntry{
			URL:       result.URL,
			Verified:  result.Verified,
			Attempts:  result.Attempts,
			LastError: result.LastError,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal outcome: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFetchText(cmd *cobra.Command, outcome *domain.Outcome, savedPath string) {
	if outcome.Status == domain.StatusFound {
		cmd.Printf("Saved %s\n", outcome.Document.Filename)
		cmd.Printf("  Source: %s (%d bytes)\n", outcome.Document.SourceURL, outcome.Document.Size())
		cmd.Printf("  Path:   %s\n", savedPath)
		if fetchShowTrace {
			cmd.Println()
			printTrace(cmd, outcome.Trace)
		}
		return
	}

	printTrace(cmd, outcome.Trace)
}

func printTrace(cmd *cobra.Command, trace domain.Trace) {
	if len(trace) == 0 {
		return
	}
	cmd.Println("Probe trace:")
	cmd.Println(trace.String())
}
