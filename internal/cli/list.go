package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List components available in the registry",
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

// listEntry is one catalog row for display.
type listEntry struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

func runList(cmd *cobra.Command, args []string) error {
	settings := config.LoadSettings()
	logger := newLogger()
	defer logger.Sync()

	store := registry.NewStore(settings.CacheDir, settings.RegistryTTL, settings.AssetTTL, logger)
	client, err := newRegistryClient(settings, store, logger)
	if err != nil {
		return err
	}

	components, err := client.ListComponents()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}

	entries := make([]listEntry, 0, len(components))
	for _, component := range components {
		entries = append(entries, listEntry{
			Slug:        component.Slug,
			Name:        component.Record.Name,
			Category:    component.Record.Category,
			Description: component.Record.Description,
		})
	}

	if listJSON {
		out, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling component list: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	if summary, err := client.Summary(); err == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d components)\n\n", summary.Name, summary.Version, summary.ComponentCount)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tCATEGORY\tDESCRIPTION")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Slug, entry.Category, entry.Description)
	}
	return w.Flush()
}
