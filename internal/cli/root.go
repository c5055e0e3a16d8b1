// Package cli wires the addressbook commands together with cobra and viper.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdxmph/addressbook/internal/config"
	"github.com/pdxmph/addressbook/internal/db"
	"github.com/pdxmph/addressbook/internal/logger"
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=v1.2.3"
var Version = "dev"

// Flag and viper keys. Each is also read from ADDRESSBOOK_<KEY>.
const (
	keyConfig    = "config"
	keyDB        = "db"
	keyDriver    = "driver"
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keyLogFile   = "log-file"
	keyAddr      = "addr"
)

// app carries what the commands share once PersistentPreRunE has run
type app struct {
	v            *viper.Viper
	cfg          *config.Config
	configPath   string
	customConfig bool
	log          *slog.Logger
	closeLog     func() error
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "addressbook",
		Short: "A local address book with a terminal UI",
		Long: `addressbook keeps contacts in a local SQLite database.

Run without a command to open the terminal UI, or to print the contact
list when output is not a terminal.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if isTerminal(cmd.OutOrStdout()) {
				return a.runTUI(cmd)
			}
			return a.runList(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "config file (default "+config.Path()+")")
	pf.String(keyDB, "", "database path (default from config)")
	pf.String(keyDriver, "", `database driver, "sqlite3" (cgo) or "sqlite" (pure Go)`)
	pf.String(keyLogLevel, "", "log level: debug, info, warn, error")
	pf.String(keyLogFormat, "", "log format: text or json")
	pf.String(keyLogFile, "", "write logs to this file")

	root.AddCommand(
		a.initCmd(),
		a.fixturesCmd(),
		a.listCmd(),
		a.showCmd(),
		a.addCmd(),
		a.editCmd(),
		a.deleteCmd(),
		a.exportCmd(),
		a.importCmd(),
		a.serveCmd(),
		a.tuiCmd(),
	)
	return root
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup merges config file, environment and flags, then builds the logger.
// Precedence is flag, then ADDRESSBOOK_* environment, then config file.
func (a *app) setup(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("ADDRESSBOOK")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	var (
		cfg *config.Config
		err error
	)
	a.configPath = config.ExpandPath(a.v.GetString(keyConfig))
	if a.configPath == "" {
		a.configPath = config.Path()
		cfg, err = config.Load()
	} else {
		a.customConfig = true
		cfg, err = config.LoadFrom(a.configPath)
	}
	if err != nil {
		return err
	}

	override := func(key string, dst *string, expand bool) {
		if !a.v.IsSet(key) {
			return
		}
		*dst = a.v.GetString(key)
		if expand {
			*dst = config.ExpandPath(*dst)
		}
	}
	override(keyDB, &cfg.Database.Path, true)
	override(keyDriver, &cfg.Database.Driver, false)
	override(keyLogLevel, &cfg.Log.Level, false)
	override(keyLogFormat, &cfg.Log.Format, false)
	override(keyLogFile, &cfg.Log.File, true)
	override(keyAddr, &cfg.Server.Addr, false)

	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.setLogger(logger.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Logfile: cfg.Log.File,
		Output:  cmd.ErrOrStderr(),
	})
	return nil
}

// setLogger replaces the logger, closing the log file of the previous one.
func (a *app) setLogger(options logger.Options) {
	if err := a.close(); err != nil {
		a.log.Warn("closing log file", "err", err)
	}
	a.log, a.closeLog = logger.New(options)
}

func (a *app) close() error {
	if a.closeLog == nil {
		return nil
	}
	err := a.closeLog()
	a.closeLog = nil
	return err
}

// openStore opens the configured database. The caller closes it.
func (a *app) openStore() (*db.DB, error) {
	return db.Open(a.cfg.Database.Path,
		db.WithDriver(a.cfg.Database.Driver),
		db.WithLogger(a.log),
	)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
