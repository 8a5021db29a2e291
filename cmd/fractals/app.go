package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fractal-explorer/core"
	"fractal-explorer/input"
	"fractal-explorer/internal/opengl"
	"fractal-explorer/prefs"
	"fractal-explorer/renderer"
	"fractal-explorer/scene"
	"fractal-explorer/sensor"
	"fractal-explorer/snapshot"
)

// turnStep is the manual camera turn per arrow key press, in radians.
const turnStep = 0.05

type options struct {
	scene       string
	prefsPath   string
	width       int
	height      int
	fullscreen  bool
	vsync       bool
	orientation string
	snapshotDir string
}

// app wires window callbacks to the active scene. Everything except the
// dispatcher goroutine runs on the main thread.
type app struct {
	opts   options
	logger *slog.Logger
	window *core.Window
	ctx    *opengl.Context
	store  *prefs.Values

	controller *scene.Controller
	mandelbrot *scene.Mandelbrot
	menger     *scene.MengerPrison
	source     *sensor.Manual
	dispatcher *input.Dispatcher
	emulator   *input.MouseEmulator

	pendingSize  renderer.Size
	resized      bool
	wantSnapshot bool
}

func run(opts options, logger *slog.Logger) error {
	scene.SetLogger(logger.With("component", "scene"))

	orientation, err := sensor.ParseOrientation(opts.orientation)
	if err != nil {
		return err
	}

	store := &prefs.Values{}
	if opts.prefsPath != "" {
		if store, err = prefs.LoadFile(opts.prefsPath); err != nil {
			return err
		}
	}

	a := &app{opts: opts, logger: logger, store: store, source: sensor.NewManual()}
	var sc scene.Scene
	switch opts.scene {
	case "mandelbrot":
		a.mandelbrot = scene.NewMandelbrot(store)
		sc = a.mandelbrot
	case "menger":
		a.menger = scene.NewMengerPrison(a.source, store, orientation, scene.SystemClock())
		sc = a.menger
	default:
		return fmt.Errorf("unknown scene %q", opts.scene)
	}
	a.controller = scene.NewController(sc)

	cfg := core.DefaultWindowConfig()
	cfg.Width, cfg.Height = opts.width, opts.height
	cfg.Fullscreen = opts.fullscreen
	cfg.VSync = opts.vsync
	cfg.Title = "Fractal Explorer - " + opts.scene
	window, err := core.NewWindow(cfg)
	if err != nil {
		return err
	}
	defer window.Destroy()
	a.window = window

	if a.ctx, err = opengl.NewContext(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	a.dispatcher = input.NewDispatcher(runCtx, func(e input.Event) { a.controller.TouchEvent(e) }, 64)
	defer a.dispatcher.Close()
	a.emulator = input.NewMouseEmulator(func(e input.Event) { a.dispatcher.Post(e) }, nil)
	a.bindCallbacks()
	a.window.SetStatus(a.status())

	err = a.loop()
	a.controller.Detach()
	a.savePrefs()
	return err
}

func (a *app) bindCallbacks() {
	a.window.SetCursorCallback(func(x, y float64) {
		r := a.window.PixelRatio()
		a.emulator.CursorMoved(x*r, y*r)
	})
	a.window.SetMouseButtonCallback(func(button int, pressed bool) {
		a.emulator.MouseButton(button, pressed)
	})
	a.window.SetScrollCallback(func(_, yoff float64) {
		a.emulator.Scrolled(yoff)
	})
	a.window.SetFramebufferSizeCallback(func(width, height int) {
		a.pendingSize = renderer.Size{Width: width, Height: height}
		a.resized = true
	})
	a.window.SetKeyCallback(a.key)
}

func (a *app) key(key int, repeat bool) {
	switch {
	case key == core.KeyEscape:
		a.window.Close()
	case key == core.KeyP && !repeat:
		a.wantSnapshot = true
	case key == core.KeyC && !repeat && a.mandelbrot != nil:
		i := (a.mandelbrot.AccentColorIndex() + 1) % len(scene.AccentColors)
		a.mandelbrot.SetAccentColorIndex(i)
		a.store.SetMandelbrotAccentColorIndex(i)
		a.logger.Info("accent color", "color", scene.AccentColors[i].Name)
		a.window.SetStatus(a.status())
	case key >= core.Key1 && key <= core.Key6 && a.menger != nil:
		a.menger.SetResolutionIndex(key - core.Key1)
		i := a.menger.ResolutionIndex()
		a.store.SetMengerResolutionIndex(i)
		a.logger.Info("resolution", "index", i, "factor", scene.ResolutionFactors[i])
		a.window.SetStatus(a.status())
	case key == core.KeyLeft:
		a.source.Turn(-turnStep, 0)
	case key == core.KeyRight:
		a.source.Turn(turnStep, 0)
	case key == core.KeyUp:
		a.source.Turn(0, turnStep)
	case key == core.KeyDown:
		a.source.Turn(0, -turnStep)
	case key == core.KeyR && !repeat:
		a.source.Reset()
	}
}

func (a *app) status() string {
	switch {
	case a.mandelbrot != nil:
		return a.mandelbrot.Status()
	case a.menger != nil:
		return a.menger.Status()
	}
	return ""
}

func (a *app) loop() error {
	if err := a.controller.Attach(); err != nil {
		return err
	}
	if err := a.controller.SurfaceCreated(a.ctx); err != nil {
		return err
	}
	width, height := a.window.GetFramebufferSize()
	a.pendingSize = renderer.Size{Width: width, Height: height}
	a.resized = true

	frames := 0
	last := time.Now()
	for !a.window.ShouldClose() {
		a.window.PollEvents()

		if a.resized && !a.pendingSize.Empty() {
			if err := a.controller.SurfaceChanged(a.ctx, a.pendingSize.Width, a.pendingSize.Height); err != nil {
				return err
			}
			a.resized = false
		}
		if a.resized {
			// minimized
			time.Sleep(50 * time.Millisecond)
			continue
		}

		if err := a.controller.DrawFrame(a.ctx); err != nil {
			return err
		}
		if a.wantSnapshot {
			a.wantSnapshot = false
			a.snapshot()
		}
		a.window.SwapBuffers()

		frames++
		if since := time.Since(last); since >= 5*time.Second {
			a.logger.Debug("frame rate", "fps", float64(frames)/since.Seconds())
			frames = 0
			last = time.Now()
		}
	}
	return nil
}

func (a *app) snapshot() {
	var src snapshot.Source
	switch {
	case a.mandelbrot != nil:
		src = a.mandelbrot
	case a.menger != nil:
		src = a.menger
	}
	width, height := a.window.GetFramebufferSize()
	img, err := snapshot.Capture(a.ctx, src, renderer.Size{Width: width, Height: height})
	if err != nil {
		a.logger.Warn("snapshot failed", "err", err)
		return
	}
	path, err := snapshot.SavePNG(a.opts.snapshotDir, snapshot.FileName(a.opts.scene, time.Now()), img)
	if err != nil {
		a.logger.Warn("snapshot failed", "err", err)
		return
	}
	a.logger.Info("snapshot saved", "path", path)
}

func (a *app) savePrefs() {
	if a.opts.prefsPath == "" {
		return
	}
	if err := prefs.SaveFile(a.opts.prefsPath, a.store); err != nil {
		a.logger.Warn("preferences not saved", "err", err)
	}
}
