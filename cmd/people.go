package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/kozaktomas/face-kiosk/internal/config"
	"github.com/kozaktomas/face-kiosk/internal/registry"
	"github.com/spf13/cobra"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Manage the local person registry",
}

var peopleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered people",
	Long:  `Lists every person in the local registry file with the size of the stored descriptor.`,
	RunE:  runPeopleList,
}

var peopleRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a person from the registry",
	Long: `Removes every record matching the given name (case-insensitive).
Removing a name that does not exist is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runPeopleRemove,
}

func init() {
	rootCmd.AddCommand(peopleCmd)
	peopleCmd.AddCommand(peopleListCmd)
	peopleCmd.AddCommand(peopleRemoveCmd)
}

func openRegistry() (*registry.FileStore, error) {
	cfg := config.Load()
	store, err := registry.NewFileStore(cfg.Registry.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry %s: %w", cfg.Registry.Path, err)
	}
	return store, nil
}

func runPeopleList(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}

	people, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to read registry: %w", err)
	}

	if len(people) == 0 {
		fmt.Println("No people registered.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "UID\tNAME\tDESCRIPTOR")
	fmt.Fprintln(w, "---\t----\t----------")
	for i := range people {
		fmt.Fprintf(w, "%s\t%s\t%d values\n", people[i].UID, people[i].Name, len(people[i].Descriptor))
	}
	return w.Flush()
}

func runPeopleRemove(cmd *cobra.Command, args []string) error {
	store, err := openRegistry()
	if err != nil {
		return err
	}

	count, err := store.Remove(args[0])
	if err != nil {
		return fmt.Errorf("failed to remove %q: %w", args[0], err)
	}

	fmt.Printf("Registry now holds %d record(s).\n", count)
	return nil
}
