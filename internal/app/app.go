// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/pubsub"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/ui/logoverlay"
	"github.com/zjrosen/signup/internal/ui/regform"
	"github.com/zjrosen/signup/internal/ui/success"
	"github.com/zjrosen/signup/internal/ui/toaster"
	"github.com/zjrosen/signup/internal/watcher"
)

// Options configures the root model.
type Options struct {
	Config config.Config

	// ConfigPath is watched for live reloads when non-empty.
	ConfigPath string

	// Debug enables the log overlay (Ctrl+X toggle).
	Debug bool

	// Controller drives the form. The model closes it in Close.
	Controller *registration.Controller
}

// Model is the root application state.
type Model struct {
	ctrl *registration.Controller
	cfg  config.Config

	form    regform.Model
	success success.Model

	// Global state
	width  int
	height int

	toaster toaster.Model

	debugMode   bool
	logOverlay  logoverlay.Model
	logListener *log.LogListener

	// Controller mode events
	modeListener *pubsub.ContinuousListener[registration.ModeEvent]

	// Config file watcher for live reload
	watcherHandle   *watcher.Watcher
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates the root model. A watcher that fails to start is logged and
// skipped; the form works without live reload.
func New(opts Options) Model {
	ctx, cancel := context.WithCancel(context.Background())
	ctrl := opts.Controller

	m := Model{
		ctrl:         ctrl,
		cfg:          opts.Config,
		form:         regform.New(ctrl, opts.Config.UI.Width),
		success:      success.New(ctrl.Catalog()),
		toaster:      toaster.New(),
		debugMode:    opts.Debug,
		logOverlay:   logoverlay.New(),
		modeListener: pubsub.NewContinuousListener(ctx, ctrl.Events()),
		ctx:          ctx,
		cancel:       cancel,
	}

	if opts.ConfigPath != "" {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			err = w.Start()
			if err == nil {
				m.watcherHandle = w
				m.watcherListener = pubsub.NewContinuousListener(ctx, w.Broker())
			} else {
				_ = w.Stop()
			}
		}
		if err != nil {
			log.Warn(log.CatWatcher, "Config watcher disabled", "path", opts.ConfigPath, "error", err)
		}
	}

	if opts.Debug {
		m.logListener = log.NewListener(ctx)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.form.Init(),
		m.modeListener.Listen(),
	}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListener != nil {
		cmds = append(cmds, m.logListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.form = m.form.SetWidth(m.formWidth())
		m.success = m.success.SetSize(msg.Width, msg.Height)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.debugMode && key.Matches(msg, keys.App.ToggleLog) {
			m.logOverlay.Toggle()
			return m, nil
		}
		if m.logOverlay.Visible() {
			if key.Matches(msg, keys.App.Quit) {
				m.logOverlay.Hide()
				return m, nil
			}
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, keys.App.Quit) {
			return m, tea.Quit
		}
		if m.ctrl.Mode() != registration.ModeEditing {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		if m.logOverlay.Visible() || m.ctrl.Mode() != registration.ModeEditing {
			return m, nil
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd

	case pubsub.Event[registration.ModeEvent]:
		log.Debug(log.CatUI, "Mode event", "mode", msg.Payload.Mode, "cycle", msg.Payload.Cycle)
		if msg.Payload.Mode == registration.ModeEditing {
			m.form = m.form.Reset()
			return m, tea.Batch(m.form.Init(), m.modeListener.Listen())
		}
		return m, m.modeListener.Listen()

	case pubsub.Event[watcher.WatcherEvent]:
		var cmd tea.Cmd
		switch msg.Payload.Kind {
		case watcher.ConfigChanged:
			m, cmd = m.reloadConfig(msg.Payload.Path)
		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
		}
		return m, tea.Batch(cmd, m.listenWatcher())

	case log.LogEvent:
		m.logOverlay.Refresh()
		if m.logListener == nil {
			return m, nil
		}
		return m, m.logListener.Listen()

	case regform.SubmittedMsg:
		log.Debug(log.CatUI, "Submission accepted", "id", msg.Submission.ID)
		return m, nil

	case regform.SubmitFailedMsg:
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(
			m.ctrl.Catalog().Text(registration.MsgSubmissionFailed),
			toaster.StyleError,
			toaster.DefaultDuration,
		)
		return m, cmd

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil
	}

	// Cursor blink and other component-internal messages.
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

// reloadConfig applies the config file at path. A broken file keeps the
// current settings and shows an error toast.
func (m Model) reloadConfig(path string) (Model, tea.Cmd) {
	cfg, err := config.LoadFile(path)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", path)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show(fmt.Sprintf("Config reload failed: %v", err), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	cat, err := cfg.Catalog()
	if err != nil {
		cat = registration.DefaultCatalog()
	}
	m.cfg = cfg
	m.ctrl.SetCatalog(cat)
	m.ctrl.SetSuccessDelay(cfg.Form.SuccessDelay)
	m.form = m.form.SetCatalog(cat).SetWidth(m.formWidth())
	m.success = m.success.SetCatalog(cat)

	log.Info(log.CatConfig, "Config reloaded", "path", path, "locale", cfg.Form.Locale)
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Configuration reloaded", toaster.StyleInfo, toaster.DefaultDuration)
	return m, cmd
}

func (m Model) listenWatcher() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	return m.watcherListener.Listen()
}

// formWidth is the configured width, narrowed to fit the terminal.
func (m Model) formWidth() int {
	w := m.cfg.UI.Width
	if w <= 0 {
		w = regform.DefaultWidth
	}
	if m.width > 0 && w > m.width {
		w = m.width
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	var view string
	if m.ctrl.Mode() == registration.ModeSuccessDisplayed {
		view = m.success.View()
	} else {
		view = m.form.View()
		if m.width > 0 && m.height > 0 {
			view = lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
		}
	}

	if m.toaster.Visible() {
		view = m.toaster.Overlay(view, m.width, m.height)
	}
	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}

	return zone.Scan(view)
}

// Mode returns the controller's current mode.
func (m Model) Mode() registration.Mode {
	return m.ctrl.Mode()
}

// Close releases resources held by the application: listeners, the config
// watcher and the controller with its pending revert timer.
func (m *Model) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.ctrl.Close()

	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	return nil
}
