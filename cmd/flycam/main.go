package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/flycam/internal/configwatch"
	"github.com/leterax/flycam/pkg/camera"
	"github.com/leterax/flycam/pkg/input"
	"github.com/leterax/flycam/pkg/render"
)

func init() {
	// This is needed to ensure that OpenGL functions are called from the same thread
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so deferred closes flush the recording
func run() error {
	configPath := flag.String("config", "", "Camera config file (YAML, empty for defaults)")
	watch := flag.Bool("watch", false, "Reload the camera tuning when the config file changes")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	vsync := flag.Bool("vsync", true, "Enable vsync")
	orbit := flag.Bool("orbit", false, "Start orbiting the origin instead of flying")
	recordPath := flag.String("record", "", "Record camera input to this file")
	replayPath := flag.String("replay", "", "Play back camera input from this file (the recording's start pose wins over -config)")
	flag.Parse()

	if *recordPath != "" && *replayPath != "" {
		return errors.New("-record and -replay cannot be combined")
	}
	if *watch && *configPath == "" {
		return errors.New("-watch needs -config")
	}

	cfg := camera.DefaultConfig()
	cfg.Position = []float32{0, 8, 25}
	if *configPath != "" {
		var err error
		cfg, err = camera.LoadConfig(*configPath)
		if err != nil {
			return fmt.Errorf("failed to load camera config: %w", err)
		}
	}

	opts := render.Options{
		Width:  *width,
		Height: *height,
		Title:  "flycam",
		VSync:  *vsync,
		Camera: cfg,
		Target: mgl32.Vec3{0, 0, 0},
	}
	if *orbit {
		opts.Mode = input.Orbit
	}

	if *watch {
		watcher, err := configwatch.New(*configPath)
		if err != nil {
			return fmt.Errorf("failed to watch camera config: %w", err)
		}
		defer watcher.Close()
		opts.Tuning = watcher.Configs
	}

	if *replayPath != "" {
		f, err := os.Open(*replayPath)
		if err != nil {
			return fmt.Errorf("failed to open replay: %w", err)
		}
		defer f.Close()
		opts.Replay = f
	}

	if *recordPath != "" {
		f, err := os.Create(*recordPath)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		opts.Record = f
	}

	renderer, err := render.NewRenderer(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}

	log.Println("WASD/Space/Shift to move, C to capture the mouse, O to switch mode, P to print the camera")

	err = renderer.Run()

	fmt.Print("final camera: ")
	renderer.Camera().PrintInfo(os.Stdout)

	if err != nil {
		return fmt.Errorf("failed to finish recording: %w", err)
	}
	return nil
}
