package frame

import (
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"voxview/internal/camera"
	"voxview/internal/config"
	"voxview/internal/world"
)

type eventLog struct {
	events []string
}

func (l *eventLog) add(e string) {
	if n := len(l.events); n > 0 && l.events[n-1] == e {
		return
	}
	l.events = append(l.events, e)
}

type logSurface struct {
	log     *eventLog
	fills   int
	strokes int
}

func (s *logSurface) Size() (int, int) { return 320, 240 }
func (s *logSurface) Clear()           { s.log.add("clear") }

func (s *logSurface) FillPolygon(pts []mgl64.Vec2, c color.NRGBA) {
	s.log.add("fill")
	s.fills++
}

func (s *logSurface) StrokePolygon(pts []mgl64.Vec2, c color.NRGBA) {
	s.strokes++
}

type scriptedInput struct {
	log    *eventLog
	intent camera.Intent
	calls  int
}

func (in *scriptedInput) Intent() camera.Intent {
	in.log.add("intent")
	in.calls++
	return in.intent
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.WorldType = "flat"
	cfg.FlatLevel = -1
	cfg.RenderDistance = 16
	cfg.MoveSpeed = 2
	return cfg
}

func newTestDriver(t *testing.T, cfg *config.Config, intent camera.Intent) (*Driver, *logSurface, *scriptedInput) {
	t.Helper()
	m, streamer, err := NewChunkManager(cfg)
	if err != nil {
		t.Fatalf("NewChunkManager: %v", err)
	}
	if streamer != nil {
		t.Cleanup(streamer.Close)
	}
	log := &eventLog{}
	s := &logSurface{log: log}
	in := &scriptedInput{log: log, intent: intent}
	return NewDriver(cfg, s, NewCamera(cfg), in, m), s, in
}

func TestTickOrder(t *testing.T) {
	d, s, _ := newTestDriver(t, testConfig(), camera.Intent{Forward: true})
	stats := d.Tick(0.5)

	if len(s.log.events) < 3 {
		t.Fatalf("events = %v", s.log.events)
	}
	want := []string{"clear", "intent", "fill"}
	for i, e := range want {
		if s.log.events[i] != e {
			t.Fatalf("events = %v, want prefix %v", s.log.events, want)
		}
	}
	if stats.FacesDrawn == 0 || stats.FacesDrawn != s.fills {
		t.Errorf("FacesDrawn = %d, fills = %d", stats.FacesDrawn, s.fills)
	}
	if !d.Camera.Position.ApproxEqual(mgl64.Vec3{0, 1, 2}) {
		t.Errorf("camera at %v, want (0, 1, 2)", d.Camera.Position)
	}
	if stats.Resident == 0 || stats.Resident != d.Chunks.Store().Len() {
		t.Errorf("Resident = %d", stats.Resident)
	}
}

func TestTickCountsInstalledChunks(t *testing.T) {
	d, _, _ := newTestDriver(t, testConfig(), camera.Intent{})

	first := d.Tick(0)
	if first.Installed == 0 || first.Installed != first.Resident {
		t.Errorf("first tick Installed = %d, Resident = %d", first.Installed, first.Resident)
	}
	if first.WorldTime <= 0 || first.WorldTime > first.Duration {
		t.Errorf("WorldTime = %v, Duration = %v", first.WorldTime, first.Duration)
	}

	second := d.Tick(0)
	if second.Installed != 0 {
		t.Errorf("second tick installed %d resident chunks again", second.Installed)
	}
}

func TestTickEvictsAfterDrawing(t *testing.T) {
	d, _, _ := newTestDriver(t, testConfig(), camera.Intent{})
	d.Chunks.Store().Add(world.NewChunk(10, 10, 8))

	stats := d.Tick(1.0 / 60)
	if stats.Evicted != 1 {
		t.Errorf("Evicted = %d, want 1", stats.Evicted)
	}
	if d.Chunks.Store().Has(world.ChunkCoord{10, 10}) {
		t.Error("distant chunk still resident")
	}
}

func TestTickPaused(t *testing.T) {
	d, _, in := newTestDriver(t, testConfig(), camera.Intent{Forward: true, MouseDX: 100})
	d.SetPaused(true)
	before := d.Camera.Position

	d.Tick(1)
	if d.Camera.Position != before || d.Camera.Yaw != 0 {
		t.Errorf("paused camera moved to %v yaw %v", d.Camera.Position, d.Camera.Yaw)
	}
	if in.calls != 1 {
		t.Errorf("input sampled %d times, want 1", in.calls)
	}
	if !d.Paused() {
		t.Error("Paused = false")
	}
}

func TestTickFollowsSettings(t *testing.T) {
	d, s, _ := newTestDriver(t, testConfig(), camera.Intent{})
	d.Tick(0)
	if s.strokes == 0 {
		t.Fatal("outlines enabled by default but nothing stroked")
	}

	d.Settings.ToggleOutlines()
	s.strokes = 0
	d.Tick(0)
	if s.strokes != 0 {
		t.Errorf("stroked %d faces after turning outlines off", s.strokes)
	}
}

func TestTickPrefetches(t *testing.T) {
	cfg := testConfig()
	cfg.AsyncGeneration = true
	cfg.Workers = 1
	d, _, _ := newTestDriver(t, cfg, camera.Intent{})

	stats := d.Tick(0)
	if stats.Queued == 0 {
		t.Error("async tick queued nothing")
	}
}

func TestNewGenerator(t *testing.T) {
	cfg := config.Default()
	if _, ok := mustGenerator(t, cfg).(*world.Generator); !ok {
		t.Error("default world should use the noise generator")
	}

	cfg.WorldType = "flat"
	if _, ok := mustGenerator(t, cfg).(*world.FlatGenerator); !ok {
		t.Error("flat world should use the flat generator")
	}

	cfg = config.Default()
	cfg.Noise = "worley"
	if _, err := NewGenerator(cfg); !errors.Is(err, world.ErrUnknownNoise) {
		t.Errorf("err = %v, want ErrUnknownNoise", err)
	}
}

func mustGenerator(t *testing.T, cfg *config.Config) world.ChunkGenerator {
	t.Helper()
	g, err := NewGenerator(cfg)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

func TestNewCamera(t *testing.T) {
	cfg := config.Default()
	cfg.FOV = 75
	cfg.ZFar = 50
	cam := NewCamera(cfg)
	if cam.FOV != 75 || cam.ZFar != 50 || cam.Position != (mgl64.Vec3{0, 0, 2}) {
		t.Errorf("camera = %+v", cam)
	}
}

func TestFPSLimiter(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	f.Wait(false)
	if time.Since(start) > 50*time.Millisecond {
		t.Error("unlimited Wait blocked")
	}

	f.SetLimit(100)
	start = time.Now()
	for range 3 {
		f.Wait(false)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("3 frames at 100 fps took %v", elapsed)
	}
}
