package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdxmph/addressbook/internal/db"
	"github.com/pdxmph/addressbook/internal/exchange"
)

// formatFor resolves the --format flag, falling back to the file extension
// and then to jsonl.
func formatFor(name, path string) (exchange.Format, error) {
	if name == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			name = "yaml"
		case ".toml":
			name = "toml"
		default:
			name = "jsonl"
		}
	}
	return exchange.CreateFormat(name)
}

func formatUsage() string {
	return "exchange format: " + strings.Join(exchange.ListFormats(), ", ") + " (default from file extension, else jsonl)"
}

func (a *app) exportCmd() *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every contact to a file or stdout",
		Example: `  addressbook export > contacts.jsonl
  addressbook export -o contacts.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, output)
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			contacts, err := store.AllContacts(cmd.Context())
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				err = f.Encode(cmd.OutOrStdout(), contacts)
			} else {
				err = exportFile(f, output, contacts)
			}
			if err != nil {
				return fmt.Errorf("exporting contacts: %w", err)
			}
			a.log.Info("exported contacts", "count", len(contacts), "format", f.Name())
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage())
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

// exportFile encodes contacts into path. A failed close fails the export so
// a short write is not reported as success.
func exportFile(f exchange.Format, path string, contacts []db.Contact) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	if err := f.Encode(file, contacts); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (a *app) importCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add contacts from a file; ids are reassigned",
		Long: `Import reads contacts from a file ("-" for stdin) and adds each one as a
new contact. Records without a name are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := formatFor(format, args[0])
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening import file: %w", err)
				}
				defer file.Close()
				r = file
			}

			contacts, err := f.Decode(r)
			if err != nil {
				return fmt.Errorf("importing contacts: %w", err)
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := exchange.Import(cmd.Context(), store, contacts)
			if err != nil {
				return err
			}
			a.log.Info("imported contacts", "added", len(result.Added), "skipped", result.Skipped)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contacts, skipped %d\n", len(result.Added), result.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", formatUsage())
	return cmd
}
