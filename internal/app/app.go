// Package app wires the editor core to the terminal and runs the main
// loop. One goroutine owns the editor: it drains key events from the
// terminal poller and work items such as config reloads, so no editor
// state is shared across goroutines.
package app

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/modalcore/internal/clipboard"
	"github.com/dshills/modalcore/internal/config"
	"github.com/dshills/modalcore/internal/editor"
	"github.com/dshills/modalcore/internal/input"
	"github.com/dshills/modalcore/internal/input/key"
	"github.com/dshills/modalcore/internal/input/keymap"
	"github.com/dshills/modalcore/internal/input/macro"
	"github.com/dshills/modalcore/internal/logging"
	"github.com/dshills/modalcore/internal/renderer"
	"github.com/dshills/modalcore/internal/renderer/backend"
	"github.com/dshills/modalcore/internal/vfs"
)

const (
	eventQueueSize = 100
	workQueueSize  = 16
)

// Options configures the application.
type Options struct {
	// Config is the initial configuration. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is watched for changes when set.
	ConfigPath string

	// Files are opened on startup. Missing files become new buffers.
	Files []string

	// FS defaults to the OS file system.
	FS vfs.FS

	// Clipboard backs the + and * registers. Nil uses clipboard.Default().
	Clipboard clipboard.Provider

	Logger  *logging.Logger
	Session string
}

// Application owns the editor and runs the event loop.
type Application struct {
	opts    Options
	cfg     *config.Config
	logger  *logging.Logger
	backend backend.Backend

	editor   *editor.Editor
	handler  *input.Handler
	recorder *macro.Recorder
	tap      *macro.Tap
	renderer *renderer.Renderer
	watcher  *config.Watcher

	events  chan key.Event
	work    chan func()
	lastGen uint64

	running atomic.Bool
	wg      sync.WaitGroup
}

// New builds the editor, key handler and macro recorder from opts and
// opens the startup files. A file that cannot be opened is reported in
// the status line rather than failing startup.
func New(b backend.Backend, opts Options) (*Application, error) {
	if b == nil {
		return nil, ErrNoBackend
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}
	if opts.FS == nil {
		opts.FS = vfs.NewOSFS()
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Default()
	}

	logger := logging.OrNull(opts.Logger)
	app := &Application{
		opts:    opts,
		cfg:     cfg,
		logger:  logger.WithComponent("app"),
		backend: b,
		events:  make(chan key.Event, eventQueueSize),
		work:    make(chan func(), workQueueSize),
	}

	app.editor = editor.New(
		editor.WithFS(opts.FS),
		editor.WithExternalRegisters(clipboard.NewRegisters(opts.Clipboard, logger)),
		editor.WithLogger(logger),
	)
	app.handler = input.NewHandler(nil, input.WithLogger(logger))
	app.recorder = macro.NewRecorder(macro.WithLogger(logger))
	app.tap = macro.Install(app.recorder, app.handler)
	app.renderer = renderer.New(b, renderer.DefaultOptions())

	if err := app.ApplyConfig(cfg); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	if path := cfg.Macros.PersistPath; path != "" {
		if err := macro.Load(opts.FS, app.recorder, path); err != nil {
			app.logger.Warn("load macros: %v", err)
			app.editor.SetStatusMessage(NewOperationError("load macros", path, err).Error())
		}
	}

	app.openFiles(opts.Files)
	return app, nil
}

func (app *Application) openFiles(files []string) {
	var failed error
	for _, path := range files {
		if err := app.editor.ExecuteCommand("edit " + path); err != nil {
			app.logger.Warn("open %s: %v", path, err)
			failed = NewOperationError("open", path, err)
		}
	}
	if app.editor.CurrentBuffer() == nil {
		if _, err := app.editor.CreateBuffer(""); err != nil {
			app.logger.Error("create scratch buffer: %v", err)
		}
	}
	if failed != nil {
		app.editor.SetStatusMessage(failed.Error())
	}
}

// Editor returns the editor. It must only be used from the goroutine
// running the event loop, or before Run and after it returns.
func (app *Application) Editor() *editor.Editor { return app.editor }

// Recorder returns the macro recorder.
func (app *Application) Recorder() *macro.Recorder { return app.recorder }

// Config returns the configuration last applied.
func (app *Application) Config() *config.Config { return app.cfg }

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool { return app.running.Load() }

// ApplyConfig pushes cfg into the editor, keymaps, macro recorder and
// renderer. The log level is fixed at startup.
func (app *Application) ApplyConfig(cfg *config.Config) error {
	stop, err := cfg.StopKey()
	if err != nil {
		return err
	}
	if err := keymap.LoadUser(app.handler.Registry(), cfg.Keymaps); err != nil {
		return err
	}

	s := app.editor.Settings()
	s.UndoLevels = cfg.Editing.UndoLevels
	s.ShiftWidth = cfg.Editing.ShiftWidth
	s.TabStop = cfg.Editing.TabWidth
	s.ExpandTab = cfg.Editing.ExpandTab
	app.editor.ApplySettings(s)

	app.recorder.SetStopKey(stop)

	opts := app.renderer.Options()
	opts.ShowLineNumbers = cfg.UI.ShowLineNumbers
	app.renderer.SetOptions(opts)

	app.cfg = cfg
	return nil
}

// Run initializes the backend and processes events until the editor
// requests quit or ctx is canceled. Macros are saved on the way out when
// a persist path is configured.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	if err := app.backend.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if app.opts.ConfigPath != "" {
		w, err := config.NewWatcher(app.opts.ConfigPath, config.WithWatcherLogger(app.opts.Logger))
		if err != nil {
			app.logger.Warn("config watcher disabled: %v", err)
		} else {
			app.watcher = w
			app.wg.Add(1)
			go app.forwardReloads(ctx, w)
		}
	}

	app.wg.Add(1)
	go app.pollInput(ctx)

	app.logger.Info("started session=%s", app.opts.Session)
	err := app.loop(ctx)

	cancel()
	if app.watcher != nil {
		if cerr := app.watcher.Close(); cerr != nil {
			app.logger.Warn("close watcher: %v", cerr)
		}
	}
	// Shutdown unblocks the poller's PollEvent.
	app.backend.Shutdown()
	app.wg.Wait()

	app.saveMacros()
	app.logger.Info("stopped")
	return err
}

func (app *Application) loop(ctx context.Context) error {
	app.renderer.Render(app.editor)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-app.events:
			if !ok {
				return nil
			}
			app.HandleKey(ev)
		case fn := <-app.work:
			fn()
		}
		if app.editor.QuitRequested() {
			return nil
		}
		app.renderer.Render(app.editor)
	}
}

// HandleKey dispatches one key through the macro middleware. Errors are
// already in the status line; they are only logged here. A panic in a
// handler is recovered so one bad key does not lose unsaved buffers.
func (app *Application) HandleKey(ev key.Event) {
	defer func() {
		if v := recover(); v != nil {
			perr := &RecoveredPanicError{Value: v, Stack: string(debug.Stack())}
			app.logger.Error("%v", perr)
			app.editor.SetStatusMessage(fmt.Sprintf("internal error: %v", v))
		}
	}()
	if err := app.tap.HandleKey(app.editor, ev); err != nil {
		app.logger.Debug("key %s: %v", ev, err)
	}
}

// pollInput is the only sender on the events channel. It exits when the
// backend is shut down or ctx is canceled.
func (app *Application) pollInput(ctx context.Context) {
	defer app.wg.Done()
	defer close(app.events)
	for {
		ev := app.backend.PollEvent()
		switch ev.Type {
		case backend.EventNone:
			return
		case backend.EventKey:
			select {
			case app.events <- ev.Key:
			case <-ctx.Done():
				return
			}
		case backend.EventResize:
			app.post(ctx, func() {})
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (app *Application) forwardReloads(ctx context.Context, w *config.Watcher) {
	defer app.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-w.Reloads():
			if !ok {
				return
			}
			app.post(ctx, func() { app.applyReload(r) })
		}
	}
}

func (app *Application) post(ctx context.Context, fn func()) {
	select {
	case app.work <- fn:
	case <-ctx.Done():
	}
}

// applyReload runs on the loop goroutine. Results older than one already
// applied, or superseded by a newer reload, are dropped.
func (app *Application) applyReload(r config.Reload) {
	if r.Generation <= app.lastGen || (app.watcher != nil && app.watcher.Stale(r)) {
		app.logger.Debug("drop stale config generation %d", r.Generation)
		return
	}
	app.lastGen = r.Generation
	gen := fmt.Sprintf("generation %d", r.Generation)
	if r.Err != nil {
		app.logger.Warn("config reload: %v", r.Err)
		app.editor.SetStatusMessage(NewOperationError("reload", app.opts.ConfigPath, r.Err).WithContext(gen).Error())
		return
	}
	if err := app.ApplyConfig(r.Config); err != nil {
		app.logger.Warn("apply config: %v", err)
		app.editor.SetStatusMessage(NewOperationError("reload", app.opts.ConfigPath, err).WithContext(gen).Error())
		return
	}
	app.logger.Info("config generation %d applied", r.Generation)
	app.editor.SetStatusMessage("config reloaded")
}

func (app *Application) saveMacros() {
	path := app.cfg.Macros.PersistPath
	if path == "" {
		return
	}
	if err := macro.Save(app.opts.FS, app.recorder, path, app.opts.Session); err != nil {
		app.logger.Error("%v", NewOperationError("save macros", path, err))
	}
}
