// Package main implements materia, a terminal tool that finds the reference
// materials closest to a set of typed properties.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"materia/internal/config"
	"materia/internal/dataset"
	"materia/internal/domain"
	"materia/internal/logging"
	"materia/internal/service"
	"materia/internal/session"
	"materia/internal/tui"
)

var version = "dev"

// app carries the flags and what every command needs once startup succeeded.
type app struct {
	cfgPath     string
	datasetPath string

	cfg     *config.AppConfig
	logger  *zap.Logger
	closeFn func() error
	dataset *domain.Dataset
}

func main() {
	a := &app{}
	if err := execute(a, newRootCmd(a)); err != nil {
		os.Exit(1)
	}
}

// execute runs cmd and releases the app's resources whether or not it failed.
func execute(a *app, cmd *cobra.Command) error {
	defer func() { _ = a.stop() }()
	return cmd.Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "materia",
		Short: "Find the materials closest to a set of properties",
		Long: `materia ranks a reference table of materials by similarity to the
numeric properties you type, for example:

  tipo=2, peso=1, resistencia=3, temperatura_max=200

Without a subcommand it opens an interactive chat.`,
		Version:       version,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.start()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInteractive()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/materia/config.yaml if not provided)")
	root.PersistentFlags().StringVar(&a.datasetPath, "dataset", "", "Dataset file (.csv, .xlsx, .yaml); overrides the config")
	root.AddCommand(newMatchCmd(a), newSchemaCmd(a))
	return root
}

func (a *app) start() error {
	_ = godotenv.Load()

	var err error
	if a.cfgPath == "" {
		a.cfg, _, err = config.LoadDefault()
	} else {
		a.cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.datasetPath != "" {
		a.cfg.Dataset.Path = a.datasetPath
	}

	a.logger, a.closeFn, err = logging.New(logging.Config{
		File:   a.cfg.Log.File,
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}

	a.dataset, err = dataset.Load(a.cfg.Dataset.Path, dataset.Options{
		Sheet:      a.cfg.Dataset.Sheet,
		NameColumn: a.cfg.Dataset.NameColumn,
	})
	if err != nil {
		a.logger.Error("dataset load failed", zap.Error(err))
		return err
	}
	a.logger.Info("dataset loaded",
		zap.String("path", a.cfg.Dataset.Path),
		zap.Int("rows", a.dataset.Len()),
		zap.Strings("columns", a.dataset.Schema))
	return nil
}

func (a *app) stop() error {
	if a.closeFn == nil {
		return nil
	}
	closeFn := a.closeFn
	a.closeFn = nil
	return closeFn()
}

func (a *app) runInteractive() error {
	svc := service.NewMatchService(a.dataset, a.cfg.Matching.TopK, a.logger)
	m := tui.New(svc, session.New(), a.cfg.UI.Title, a.logger)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return err
	}
	return nil
}
