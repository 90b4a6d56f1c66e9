package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/habit-tracker/internal/app"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/schedule"
	"github.com/nhle/habit-tracker/internal/store"
)

func runTUI(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	m := app.New(app.Options{
		Tracker:   e.tracker,
		Rollover:  schedule.NewRollover(time.Local, e.log),
		Theme:     e.themePreference(ctx),
		SaveTheme: e.saveTheme,
		WeekStart: e.cfg.Display.WeekStart,
		Logger:    e.log,
	})

	e.log.Info("starting tui")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

// themePreference prefers the theme last toggled in the UI over the config
// file value.
func (e *env) themePreference(ctx context.Context) string {
	mode, ok, err := e.store.GetSetting(ctx, store.SettingTheme)
	if err != nil {
		e.log.Warn("reading theme setting", zap.Error(err))
	}
	if ok && (mode == model.ThemeDark || mode == model.ThemeLight) {
		return mode
	}
	return e.cfg.Display.Theme
}

func (e *env) saveTheme(ctx context.Context, mode string) error {
	if err := e.store.SetSetting(ctx, store.SettingTheme, mode); err != nil {
		return err
	}
	e.cfg.Display.Theme = mode
	return model.SaveConfig(e.cfgPath, e.cfg)
}
