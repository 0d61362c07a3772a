package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/frame"
	"voxview/internal/graphics"
	"voxview/internal/input"
	"voxview/internal/profiling"
)

// slowFrame is the frame time above which a breakdown is logged.
const slowFrame = 50 * time.Millisecond

func (v *viewer) run() {
	frames := 0
	fps := 0
	lastFPSCheck := time.Now()
	lastTime := time.Now()

	for !v.window.ShouldClose() {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		glfw.PollEvents()
		v.handleInputActions()

		stats := v.driver.Tick(dt)
		if v.input.Captured() {
			v.drawCrosshair()
		}
		if v.showProfiling {
			v.canvas.DrawText(v.hudLines(stats, fps), 8, 18, color.Black)
		}

		func() { defer profiling.Track("present.Present")(); v.presenter.Present(v.canvas.Image()) }()
		func() { defer profiling.Track("glfw.SwapBuffers")(); v.window.SwapBuffers() }()

		// Clear edge flags at end of frame
		v.input.PostUpdate()

		frames++
		if time.Since(lastFPSCheck) >= time.Second {
			fps = frames
			frames = 0
			lastFPSCheck = time.Now()
		}

		if total := time.Since(now); total > slowFrame {
			log.Printf("voxview: slow frame %.2fms (%d faces, %d chunks): %s",
				millis(total), stats.FacesDrawn, stats.Chunks, profiling.TopN(4))
		}

		v.limiter.Wait(v.driver.Paused())
	}
}

func (v *viewer) handleInputActions() {
	im := v.input

	if im.JustPressed(input.ActionPause) {
		captured := !im.Captured()
		im.SetCaptured(captured)
		if captured {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		} else {
			v.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
		}
	}
	if im.JustPressed(input.ActionToggleOutlines) {
		v.driver.Settings.ToggleOutlines()
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		v.showProfiling = !v.showProfiling
	}

	step := v.cfg.ChunkSize
	if im.JustPressed(input.ActionRenderDistanceUp) {
		v.driver.Settings.SetRenderDistance(v.driver.Settings.RenderDistance() + step)
		log.Printf("voxview: render distance %d", v.driver.Settings.RenderDistance())
	}
	if im.JustPressed(input.ActionRenderDistanceDown) {
		v.driver.Settings.SetRenderDistance(v.driver.Settings.RenderDistance() - step)
		log.Printf("voxview: render distance %d", v.driver.Settings.RenderDistance())
	}
}

func (v *viewer) hudLines(stats frame.Stats, fps int) []string {
	p := v.camera.Position
	return []string{
		fmt.Sprintf("fps %d  frame %.1fms  world %.1fms", fps, millis(stats.Duration), millis(stats.WorldTime)),
		fmt.Sprintf("pos %.1f %.1f %.1f", p[0], p[1], p[2]),
		fmt.Sprintf("yaw %.0f pitch %.0f", degrees(v.camera.Yaw), degrees(v.camera.Pitch)),
		fmt.Sprintf("chunks %d drawn, %d resident, %d new, %d evicted", stats.Chunks, stats.Resident, stats.Installed, stats.Evicted),
		fmt.Sprintf("faces %d/%d, %d clipped", stats.FacesDrawn, stats.FacesTested, stats.FacesClipped),
		targetLine(stats.Target),
		profiling.TopN(3),
	}
}

func targetLine(t graphics.PickResult) string {
	if !t.Hit {
		return "target none"
	}
	p := t.Cube.Pos
	return fmt.Sprintf("target %s at %d %d %d (%.1f)", t.Cube.Block, p.X, p.Y, p.Z, t.Distance)
}

// drawCrosshair paints a plus sign in the middle of the canvas.
func (v *viewer) drawCrosshair() {
	w, h := v.canvas.Size()
	cx, cy := float64(w)/2, float64(h)/2
	const size, thickness = 8.0, 1.0
	white := color.NRGBA{255, 255, 255, 255}
	v.canvas.FillPolygon([]mgl64.Vec2{
		{cx - size, cy - thickness}, {cx + size, cy - thickness},
		{cx + size, cy + thickness}, {cx - size, cy + thickness},
	}, white)
	v.canvas.FillPolygon([]mgl64.Vec2{
		{cx - thickness, cy - size}, {cx + thickness, cy - size},
		{cx + thickness, cy + size}, {cx - thickness, cy + size},
	}, white)
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}

func degrees(rad float64) float64 {
	return math.Mod(rad*180/math.Pi, 360)
}
