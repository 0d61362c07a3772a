package main

import (
	"fmt"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"

	"voxview/internal/camera"
	"voxview/internal/config"
	"voxview/internal/frame"
	"voxview/internal/graphics/canvas"
	"voxview/internal/graphics/present"
	"voxview/internal/input"
	"voxview/internal/world"
)

// hudFontSize is the pixel size used for a configured HUD font.
const hudFontSize = 14

func setupWindow(width, height int) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, "voxview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Disable V-Sync; the FPS limiter paces frames
	glfw.SwapInterval(0)
	window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)

	return window, nil
}

// viewer holds everything the main loop touches.
type viewer struct {
	cfg       *config.Config
	window    *glfw.Window
	presenter *present.Presenter
	canvas    *canvas.Canvas
	input     *input.InputManager
	camera    *camera.Camera
	driver    *frame.Driver
	streamer  *world.ChunkStreamer
	limiter   *frame.FPSLimiter

	showProfiling bool
}

// teardown releases partially built resources in reverse order.
type teardown []func()

func (t *teardown) push(f func()) { *t = append(*t, f) }

func (t teardown) run() {
	for i := len(t) - 1; i >= 0; i-- {
		t[i]()
	}
}

func setupViewer(cfg *config.Config) (v *viewer, err error) {
	var undo teardown
	defer func() {
		if err != nil {
			undo.run()
		}
	}()

	window, err := setupWindow(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	undo.push(window.Destroy)

	presenter, err := present.New()
	if err != nil {
		return nil, err
	}
	undo.push(presenter.Dispose)
	fbW, fbH := window.GetFramebufferSize()
	presenter.SetViewport(fbW, fbH)

	cv := canvas.New(cfg.Width, cfg.Height, frame.Background(cfg))
	if cfg.HUDFont != "" {
		face, err := canvas.LoadFace(cfg.HUDFont, hudFontSize)
		if err != nil {
			log.Printf("voxview: hud font: %v, using built-in face", err)
		} else {
			cv.SetFace(face)
		}
	}

	manager, streamer, err := frame.NewChunkManager(cfg)
	if err != nil {
		return nil, err
	}

	im := input.NewInputManager()
	im.SetCallbacks(window)
	im.SetCaptured(true)

	cam := frame.NewCamera(cfg)
	v = &viewer{
		cfg:       cfg,
		window:    window,
		presenter: presenter,
		canvas:    cv,
		input:     im,
		camera:    cam,
		driver:    frame.NewDriver(cfg, cv, cam, im, manager),
		streamer:  streamer,
		limiter:   frame.NewFPSLimiter(cfg.FPSLimit),
	}
	v.setupWindowCallbacks()

	log.Printf("voxview: seed %d, %s world, %s noise, chunk size %d, render distance %d, async %v",
		cfg.Seed, cfg.WorldType, cfg.Noise, cfg.ChunkSize, cfg.RenderDistance, cfg.AsyncGeneration)
	return v, nil
}

func (v *viewer) setupWindowCallbacks() {
	v.window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		v.presenter.SetViewport(fbWidth, fbHeight)
	})
	v.window.SetSizeCallback(func(w *glfw.Window, width, height int) {
		v.canvas.Resize(width, height)
	})
	v.window.SetFocusCallback(func(w *glfw.Window, focused bool) {
		v.driver.SetPaused(!focused)
	})
}

func (v *viewer) closeWorkers() {
	if v.streamer != nil {
		v.streamer.Close()
	}
}

func (v *viewer) dispose() {
	v.presenter.Dispose()
	v.window.Destroy()
}
