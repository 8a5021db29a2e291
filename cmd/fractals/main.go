package main

import (
	"flag"
	"log/slog"
	"os"
)

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "mandelbrot", "scene to show: mandelbrot or menger")
	flag.StringVar(&opts.prefsPath, "prefs", "fractals.json", "preference file; empty disables loading and saving")
	flag.IntVar(&opts.width, "width", 1280, "window width")
	flag.IntVar(&opts.height, "height", 720, "window height")
	flag.BoolVar(&opts.fullscreen, "fullscreen", false, "open fullscreen on the primary monitor")
	flag.BoolVar(&opts.vsync, "vsync", true, "wait for vertical sync")
	flag.StringVar(&opts.orientation, "orientation", "portrait", "starting orientation for the prison camera: portrait or landscape")
	flag.StringVar(&opts.snapshotDir, "snapshot-dir", "snapshots", "directory for P key snapshots")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	logger.Info("starting", "scene", opts.scene, "size", [2]int{opts.width, opts.height}, "prefs", opts.prefsPath)
	if err := run(opts, logger); err != nil {
		logger.Error("fractals exited", "err", err)
		os.Exit(1)
	}
}
