package cli

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdxmph/addressbook/internal/config"
	"github.com/pdxmph/addressbook/internal/logger"
	"github.com/pdxmph/addressbook/internal/tui"
)

func (a *app) tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd)
		},
	}
}

// runTUI takes over the terminal, so logs go to a file instead of stderr.
func (a *app) runTUI(cmd *cobra.Command) error {
	logfile := a.cfg.Log.File
	if logfile == "" {
		logfile = filepath.Join(config.Dir(), config.AppName+".log")
	}
	a.setLogger(logger.Options{
		Level:   a.cfg.Log.Level,
		Format:  a.cfg.Log.Format,
		Logfile: logfile,
	})

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	model := tui.New(store, tui.WithLogger(a.log))
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
