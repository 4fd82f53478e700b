package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/time/rate"

	"tileworld/internal/config"
	"tileworld/internal/player"
	"tileworld/internal/stream"
	"tileworld/internal/terrain"
	"tileworld/internal/trace"
	"tileworld/internal/world"
)

// host drives the streamer the way a windowed application would: one
// OnFrame and one draw per tick, with the viewer walking a scripted path.
type host struct {
	cfg      *config.Config
	logger   *log.Logger
	streamer *stream.Streamer
	recorder *trace.Recorder
	player   *player.Player
	renderer *countingRenderer
	limiter  *rate.Limiter
	dt       float32
}

func newHost(cfg *config.Config, logger *log.Logger) (*host, error) {
	generator, err := terrain.NewNoiseGeneratorFromConfig(cfg.Noise)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}

	opts := stream.Options{
		PollInterval: cfg.Streaming.PollInterval.Duration(),
		Logger:       logger,
		PreviewDir:   cfg.Preview.Dir,
	}
	var recorder *trace.Recorder
	if cfg.Trace.Dir != "" {
		recorder = trace.NewRecorder(cfg.Trace.Dir, logger)
		opts.Observer = recorder
	}

	streamer, err := stream.NewStreamer(stream.NewCamera(cfg.Viewport), generator, opts)
	if err != nil {
		return nil, fmt.Errorf("build streamer: %w", err)
	}

	return &host{
		cfg:      cfg,
		logger:   logger,
		streamer: streamer,
		recorder: recorder,
		player:   player.New(mgl32.Vec2{float32(cfg.Sim.StartX), float32(cfg.Sim.StartY)}, cfg.Sim.Seed),
		renderer: &countingRenderer{},
		limiter:  rate.NewLimiter(rate.Limit(cfg.Sim.FrameRate), 1),
		dt:       1 / float32(cfg.Sim.FrameRate),
	}, nil
}

// Run activates the streamer, plays the walk path and deactivates on exit.
func (h *host) Run(ctx context.Context) error {
	if h.recorder != nil {
		h.logger.Printf("tracing chunk lifecycle to %s (session %s)", h.cfg.Trace.Dir, h.recorder.Session())
		defer func() {
			if err := h.recorder.Close(); err != nil {
				h.logger.Printf("close trace: %v", err)
			}
		}()
	}

	if err := h.streamer.Activate(ctx, h.player.Position); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	defer h.streamer.Deactivate()

	inputs := expandPath(h.cfg.Sim.Path, h.cfg.Sim.FrameRate)
	limit := len(inputs)
	if h.cfg.Sim.MaxFrames > 0 && h.cfg.Sim.MaxFrames < limit {
		limit = h.cfg.Sim.MaxFrames
	}

	for frame := 0; frame < limit; frame++ {
		if err := h.limiter.Wait(ctx); err != nil {
			h.logger.Printf("stopping after %d frames: %v", frame, err)
			return nil
		}
		h.step(frame, inputs[frame])
	}
	h.logger.Printf("walk finished after %d frames at %v", limit, h.player.Position)
	return nil
}

func (h *host) step(frame int, in player.Input) {
	h.player.Update(h.dt, in)
	h.player.Animate(h.dt)

	f := h.streamer.OnFrame(h.player.Position)
	stats, ok := f.Draw(h.renderer)
	if !ok {
		h.renderer.misses++
	}
	h.renderer.add(stats)

	if (frame+1)%h.cfg.Sim.FrameRate != 0 {
		return
	}
	var resident int
	if m := h.streamer.Manager(); m != nil {
		m.View(func(v world.View) { resident = v.Len() })
	}
	generate, evict := h.pendingWork()
	h.logger.Printf("frame %d pos=(%.1f,%.1f) chunk=%v state=%v sprite=%d depth=%.3f draws ground=%d shadows=%d trees=%d misses=%d resident=%d pending=%d/%d",
		frame+1, h.player.Position.X(), h.player.Position.Y(), f.Coord, h.player.State, h.player.Sprite(), f.PlayerDepth(h.player.Position.Y()),
		h.renderer.total.Ground, h.renderer.total.Shadows, h.renderer.total.Trees, h.renderer.misses, resident, generate, evict)
	h.renderer.reset()
}

func (h *host) pendingWork() (generate, evict int) {
	if m := h.streamer.Manager(); m != nil {
		return m.Pending()
	}
	return 0, 0
}

// expandPath turns walk legs into one input per frame.
func expandPath(legs []config.WalkLeg, frameRate int) []player.Input {
	var out []player.Input
	for _, leg := range legs {
		frames := int(leg.For.Duration().Seconds()*float64(frameRate) + 0.5)
		in := inputFor(leg.Direction)
		for i := 0; i < frames; i++ {
			out = append(out, in)
		}
	}
	return out
}

func inputFor(direction string) player.Input {
	switch direction {
	case "left":
		return player.Input{Left: true}
	case "right":
		return player.Input{Right: true}
	case "up":
		return player.Input{Up: true}
	case "down":
		return player.Input{Down: true}
	}
	return player.Input{}
}

// countingRenderer stands in for a GPU renderer and only counts draw calls.
type countingRenderer struct {
	total  stream.DrawStats
	misses int
}

func (r *countingRenderer) DrawGround(mgl32.Vec3, uint8)                    {}
func (r *countingRenderer) DrawShadow(mgl32.Vec3, mgl32.Vec2)               {}
func (r *countingRenderer) DrawTree(mgl32.Vec3, mgl32.Vec2, world.TreeType) {}

func (r *countingRenderer) add(s stream.DrawStats) {
	r.total.Ground += s.Ground
	r.total.Shadows += s.Shadows
	r.total.Trees += s.Trees
}

func (r *countingRenderer) reset() {
	r.total = stream.DrawStats{}
	r.misses = 0
}
