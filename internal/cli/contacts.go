package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/pdxmph/addressbook/internal/config"
	"github.com/pdxmph/addressbook/internal/db"
)

// contactFlags holds the field flags shared by add and edit
type contactFlags struct {
	name, phone, email, street, city, state, zip string
}

func (f *contactFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "contact name")
	fs.StringVar(&f.phone, "phone", "", "phone number")
	fs.StringVar(&f.email, "email", "", "email address")
	fs.StringVar(&f.street, "street", "", "street address")
	fs.StringVar(&f.city, "city", "", "city")
	fs.StringVar(&f.state, "state", "", "state or region")
	fs.StringVar(&f.zip, "zip", "", "postal code")
}

// apply copies the flags that were set on the command line onto c
func (f *contactFlags) apply(fs *pflag.FlagSet, c *db.Contact) {
	set := func(name, value string, dst *string) {
		if fs.Changed(name) {
			*dst = strings.TrimSpace(value)
		}
	}
	setNull := func(name, value string, dst *sql.NullString) {
		if fs.Changed(name) {
			*dst = db.NewNullString(strings.TrimSpace(value))
		}
	}
	set("name", f.name, &c.Name)
	setNull("phone", f.phone, &c.Phone)
	setNull("email", f.email, &c.Email)
	setNull("street", f.street, &c.Street)
	setNull("city", f.city, &c.City)
	setNull("state", f.state, &c.State)
	setNull("zip", f.zip, &c.Zip)
}

var errNameRequired = errors.New("name is required")

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every contact as id and name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd)
		},
	}
}

func (a *app) runList(cmd *cobra.Command) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	contacts, err := store.ListContacts(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, c := range contacts {
		fmt.Fprintf(out, "%d\t%s\n", c.ID, c.Name)
	}
	return nil
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id|uri>",
		Short: "Print all fields of one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := db.ParseContactRef(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			contact, err := store.GetContact(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printContact(cmd.OutOrStdout(), contact)
		},
	}
}

func printContact(w io.Writer, c *db.Contact) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", c.ID)
	fmt.Fprintf(tw, "URI:\t%s\n", db.ContactURI(c.ID))
	fmt.Fprintf(tw, "Name:\t%s\n", c.Name)
	for _, f := range []struct {
		label string
		value string
	}{
		{"Phone:", c.Phone.String},
		{"Email:", c.Email.String},
		{"Address:", c.Address()},
	} {
		if f.value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", f.label, f.value)
		}
	}
	return tw.Flush()
}

func (a *app) addCmd() *cobra.Command {
	var flags contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a contact and print its URI",
		Example: `  addressbook add --name "Ann Example" --phone 503-555-0100
  addressbook add --name Bob --city Salem --state OR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var contact db.Contact
			flags.apply(cmd.Flags(), &contact)
			if contact.Name == "" {
				return errNameRequired
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			id, err := store.AddContact(cmd.Context(), contact)
			if err != nil {
				return err
			}
			a.log.Info("contact added", "id", id)
			fmt.Fprintln(cmd.OutOrStdout(), db.ContactURI(id))
			return nil
		},
	}
	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) editCmd() *cobra.Command {
	var flags contactFlags
	cmd := &cobra.Command{
		Use:   "edit <id|uri>",
		Short: "Change the given fields of a contact",
		Long: `Edit loads the contact, replaces the fields named by flags and writes it
back. Fields without a flag keep their value; an empty value clears a field.`,
		Example: `  addressbook edit 3 --phone 503-555-0199
  addressbook edit addressbook://contacts/3 --email ""`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := db.ParseContactRef(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			contact, err := store.GetContact(cmd.Context(), id)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), contact)
			if contact.Name == "" {
				return errNameRequired
			}

			ok, err := store.UpdateContact(cmd.Context(), *contact)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("contact %d not updated", id)
			}
			a.log.Info("contact updated", "id", id)
			return printContact(cmd.OutOrStdout(), contact)
		},
	}
	flags.register(cmd.Flags())
	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id|uri>",
		Aliases: []string{"rm"},
		Short:   "Delete a contact",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := db.ParseContactRef(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ok, err := store.DeleteContact(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("contact %d: %w", id, db.ErrNotFound)
			}
			a.log.Info("contact deleted", "id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", db.ContactURI(id))
			return nil
		},
	}
}

func (a *app) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a new database and a default config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.Initialize(a.cfg.Database.Path, a.cfg.Database.Driver); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created database at %s\n", a.cfg.Database.Path)

			if _, err := os.Stat(a.configPath); errors.Is(err, os.ErrNotExist) {
				if err := a.saveConfig(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote config to %s\n", a.configPath)
			}
			return nil
		},
	}
}

// saveConfig writes the active config to the standard location, or to the
// --config path when one was given.
func (a *app) saveConfig() error {
	if !a.customConfig {
		return a.cfg.Save()
	}
	if err := os.MkdirAll(filepath.Dir(a.configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return a.cfg.SaveTo(a.configPath)
}

func (a *app) fixturesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fixtures <path>",
		Short: "Create a database filled with sample contacts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ExpandPath(args[0])
			err := db.CreateFixturesDatabase(path,
				db.WithDriver(a.cfg.Database.Driver),
				db.WithLogger(a.log),
			)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created fixtures database at %s\n", path)
			return nil
		},
	}
}
