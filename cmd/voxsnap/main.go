// Command voxsnap renders a single frame of the world to a PNG file without
// opening a window.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"voxview/internal/config"
	"voxview/internal/frame"
	"voxview/internal/graphics/canvas"
)

func main() {
	flags := config.BindFlags(flag.CommandLine)
	x := flag.Float64("x", 0, "camera x")
	y := flag.Float64("y", 0, "camera y")
	z := flag.Float64("z", 2, "camera z (height)")
	yaw := flag.Float64("yaw", 0, "camera yaw in degrees, 0 looks along +y")
	pitch := flag.Float64("pitch", 0, "camera pitch in degrees, clamped to [-90, 90]")
	out := flag.String("out", "", "output file (default: snapshot-<uuid>.png)")
	flag.Parse()

	cfg, err := flags.Resolve()
	if err != nil {
		log.Fatalf("voxsnap: %v", err)
	}
	// A snapshot is one synchronous frame.
	cfg.AsyncGeneration = false

	manager, _, err := frame.NewChunkManager(cfg)
	if err != nil {
		log.Fatalf("voxsnap: %v", err)
	}

	cam := frame.NewCamera(cfg)
	cam.Position = mgl64.Vec3{*x, *y, *z}
	cam.Yaw = mgl64.DegToRad(*yaw)
	cam.Pitch = mgl64.Clamp(mgl64.DegToRad(*pitch), -mgl64.DegToRad(90), mgl64.DegToRad(90))

	cv := canvas.New(cfg.Width, cfg.Height, frame.Background(cfg))
	stats := frame.NewDriver(cfg, cv, cam, nil, manager).Tick(0)

	path := *out
	if path == "" {
		path = fmt.Sprintf("snapshot-%s.png", uuid.New().String())
	}
	if err := writePNG(cv, path); err != nil {
		log.Fatalf("voxsnap: %v", err)
	}

	fmt.Printf("%s: %d chunks, %d cubes, %d/%d faces drawn in %v\n",
		path, stats.Chunks, stats.Cubes, stats.FacesDrawn, stats.FacesTested, stats.Duration)
	if coords := manager.Store().Coords(); len(coords) > 0 {
		minX, maxX := coords[0].X, coords[0].X
		for _, c := range coords {
			minX, maxX = min(minX, c.X), max(maxX, c.X)
		}
		fmt.Printf("resident chunks x %d..%d, y %d..%d\n", minX, maxX, coords[0].Y, coords[len(coords)-1].Y)
	}
}

func writePNG(cv *canvas.Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := cv.WritePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
