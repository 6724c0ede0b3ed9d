// Command specfetch resolves 12-digit product identifiers to
// specification PDFs and saves them locally.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/custodia-labs/specfetch-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driven/storage/filesystem"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driven/transport/httpclient"
	"github.com/custodia-labs/specfetch-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/specfetch-cli/internal/core/domain"
	"github.com/custodia-labs/specfetch-cli/internal/core/services"
	"github.com/custodia-labs/specfetch-cli/internal/signature"
)

// version is stamped at link time via -ldflags.
var version = "dev"

// configDirEnv overrides the default ~/.specfetch configuration directory.
const configDirEnv = "SPECFETCH_CONFIG_DIR"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the driven adapters to the core services and hands control
// to the CLI.
func run() error {
	templates, err := file.NewTemplateStore(os.Getenv(configDirEnv))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	groups, err := templates.Groups(context.Background())
	if err != nil {
		return fmt.Errorf("read template groups: %w", err)
	}

	transport := httpclient.New()
	transport.SetUserAgent("specfetch/" + version)

	prober := services.NewProber(transport, signature.PDF(), domain.DefaultProbePolicy())
	resolver := services.NewResolverService(transport, prober, groups)

	cli.SetVersion(version)
	cli.SetConfig(&cli.Config{
		Resolver:      resolver,
		Saver:         filesystem.NewSaver(""),
		Templates:     templates,
		TemplatesPath: templates.Path(),
	})

	return cli.Execute()
}
