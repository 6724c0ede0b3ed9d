package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect the URL template configuration",
	Long: `Shows the URL templates probed during resolution.
Templates are grouped by API generation; groups are probed in the
listed order and every template contains an {id} placeholder.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured template groups",
	RunE:  runTemplatesList,
}

var templatesPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the template configuration file location",
	RunE:  runTemplatesPath,
}

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesPathCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesList(cmd *cobra.Command, _ []string) error {
	if templateStore == nil {
		return errors.New("template store not configured")
	}

	groups, err := templateStore.Groups(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	total := 0
	for _, group := range groups {
		cmd.Printf("%s (%d templates)\n", group.Name, len(group.Templates))
		for _, template := range group.Templates {
			cmd.Printf("  %s\n", template)
		}
		cmd.Println()
		total += len(group.Templates)
	}

	cmd.Printf("Total: %d candidates across %d groups\n", total, len(groups))
	return nil
}

func runTemplatesPath(cmd *cobra.Command, _ []string) error {
	if templatesPath == "" {
		return errors.New("template store not configured")
	}

	cmd.Println(templatesPath)
	return nil
}
