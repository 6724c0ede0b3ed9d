// Package cli provides the command line interface for specfetch.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driven"
	"github.com/custodia-labs/specfetch-cli/internal/core/ports/driving"
	"github.com/custodia-labs/specfetch-cli/internal/logger"
)

// version is the build version, overridden at link time.
var version = "dev"

// Services the commands depend on, injected via SetConfig.
var (
	resolverService driving.Resolver
	fileSaver       driven.FileSaver
	templateStore   driven.TemplateStore
	templatesPath   string
)

// verbose enables debug logging for all commands.
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "specfetch",
	Short: "Fetch product specification PDFs by identifier",
	Long: `Specfetch resolves a 12-digit product identifier to its specification
PDF by probing a configured list of candidate URLs, newest API
generation first, and saves the first URL that answers with a real PDF.`,
	// The binary's main prints the returned error once; cobra stays quiet.
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Config holds the services the CLI commands depend on.
type Config struct {
	// Resolver performs identifier resolution.
	Resolver driving.Resolver

	// Saver persists fetched documents.
	Saver driven.FileSaver

	// Templates supplies the configured URL template groups.
	Templates driven.TemplateStore

	// TemplatesPath is the location of the template configuration file,
	// shown by "templates path".
	TemplatesPath string
}

// SetConfig injects the services the commands run against.
// Commands degrade with a "not configured" error when unset.
func SetConfig(config *Config) {
	if config == nil {
		return
	}
	resolverService = config.Resolver
	fileSaver = config.Saver
	templateStore = config.Templates
	templatesPath = config.TemplatesPath
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command
// context so an in-flight resolution stops between candidates.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}
