// objview - spin an OBJ or glTF model in the terminal.
//
// Controls:
//
//	Space       - Pause/resume the spin
//	+/-         - Spin faster/slower
//	Up/Down     - Tilt the model
//	X           - Toggle wireframe
//	B           - Toggle bounding boxes
//	R           - Reset orientation
//	?           - Toggle HUD
//	Esc/Q       - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/taigrr/meshkit/internal/assets"
	"github.com/taigrr/meshkit/internal/config"
	"github.com/taigrr/meshkit/internal/logger"
	"github.com/taigrr/meshkit/pkg/math3d"
	"github.com/taigrr/meshkit/pkg/models"
	"github.com/taigrr/meshkit/pkg/render"
)

var (
	targetFPS = flag.Int("fps", 0, "Target FPS (overrides config)")
	spinSpeed = flag.Float64("spin", 0, "Spin speed in radians per second (overrides config)")
	bgColor   = flag.String("bg", "", "Background color R,G,B (overrides config)")
	wireframe = flag.Bool("wireframe", false, "Start in wireframe mode")
	watch     = flag.Bool("watch", false, "Reload the model when the file changes")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "objview - Terminal model viewer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: objview [options] <model.obj|model.glb>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Space       - Pause/resume spin\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Spin faster/slower\n")
		fmt.Fprintf(os.Stderr, "  Up/Down     - Tilt\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  B           - Toggle bounding boxes\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset orientation\n")
		fmt.Fprintf(os.Stderr, "  ?           - Toggle HUD\n")
		fmt.Fprintf(os.Stderr, "  Esc/Q       - Quit\n")
	}
	config.ParseFlags()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file with this command's flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load("")
	if err != nil {
		return nil, err
	}
	if *targetFPS > 0 {
		cfg.View.FPS = *targetFPS
	}
	if *spinSpeed != 0 {
		cfg.View.SpinSpeed = *spinSpeed
	}
	if *bgColor != "" {
		cfg.View.Background = *bgColor
	}
	if *wireframe {
		cfg.View.Wireframe = true
	}
	if *watch {
		cfg.View.Watch = true
	}
	if cfg.View.FPS <= 0 {
		cfg.View.FPS = 30
	}
	return cfg, nil
}

func run(modelPath string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the viewer, so logs only go to the file.
	if cfg.Logging.LogFile != "" {
		if err := logger.Setup(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.LogFile}); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()
	}
	log := logger.Named("objview")

	lib := assets.NewLibrary(cfg.Parse)
	asset, err := lib.Load(modelPath)
	if err != nil {
		return fmt.Errorf("load model: %w", err)
	}
	log.Info("loaded", zap.String("path", asset.Path), zap.Stringer("id", asset.ID))

	background, err := parseColor(cfg.View.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reloads := make(chan *assets.Asset, 1)
	if cfg.View.Watch {
		go func() {
			err := lib.Watch(ctx, modelPath, func(a *assets.Asset, err error) {
				if err != nil {
					log.Warn("reload failed", zap.Error(err))
					return
				}
				select {
				case reloads <- a:
				default:
				}
			})
			if err != nil {
				log.Error("watch stopped", zap.Error(err))
			}
		}()
	}

	term := uv.DefaultTerminal()
	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}
	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)
	defer func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}()

	v := newViewer(cfg.View, background)
	v.setModel(asset.Model)
	v.resize(width, height)
	hud := NewHUD(filepath.Base(modelPath), asset.Model.TriangleCount())

	ticker := time.NewTicker(time.Second / time.Duration(cfg.View.FPS))
	defer ticker.Stop()
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil

		case a := <-reloads:
			v.setModel(a.Model)
			hud.SetModel(filepath.Base(a.Path), a.Model.TriangleCount())

		case ev := <-term.Events():
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				v.resize(width, height)
			case uv.KeyPressEvent:
				if ev.MatchString("escape", "q", "ctrl+c") {
					return nil
				}
				v.handleKey(ev)
			}

		case now := <-ticker.C:
			dt := now.Sub(lastFrame).Seconds()
			lastFrame = now
			if dt > 0.1 {
				dt = 0.1
			}

			v.update(dt)
			v.draw()

			area := image.Rect(0, 0, width, height)
			v.fb.Draw(term, area)
			hud.UpdateFPS()
			if v.showHUD {
				hud.Draw(term, area, v)
			}
			if err := term.Display(); err != nil {
				return fmt.Errorf("display: %w", err)
			}
		}
	}
}

// viewer holds the scene and interaction state.
type viewer struct {
	cfg        config.ViewConfig
	background render.Color

	fb     *render.Framebuffer
	camera *render.Camera
	raster *render.Rasterizer
	wire   *render.Wireframe

	meshes    []*models.Mesh
	transform math3d.Transform

	// The spin rate eases toward target through a critically damped spring.
	spring      harmonica.Spring
	speed       float64
	speedVel    float64
	targetSpeed float64
	paused      bool

	wireframe  bool
	showBounds bool
	showHUD    bool
}

func newViewer(cfg config.ViewConfig, background render.Color) *viewer {
	fb := render.NewFramebuffer(1, 2)
	camera := render.NewCamera()
	camera.Frame(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	return &viewer{
		cfg:         cfg,
		background:  background,
		fb:          fb,
		camera:      camera,
		raster:      render.NewRasterizer(camera, fb),
		wire:        render.NewWireframe(camera, fb),
		transform:   math3d.NewTransform(),
		spring:      harmonica.NewSpring(harmonica.FPS(cfg.FPS), 4.0, 1.0),
		targetSpeed: cfg.SpinSpeed,
		wireframe:   cfg.Wireframe,
		showBounds:  cfg.ShowBounds,
		showHUD:     true,
	}
}

// setModel copies the model's meshes, centred on the origin and scaled so
// the largest extent is 2.
func (v *viewer) setModel(model *models.Model) {
	v.meshes = v.meshes[:0]
	lo, hi, ok := model.Bounds()
	if !ok {
		return
	}

	size := hi.Sub(lo)
	maxDim := max(size.X, size.Y, size.Z)
	scale := float32(1)
	if maxDim > 0 {
		scale = 2 / maxDim
	}
	center := lo.Add(hi).Scale(0.5)
	fit := math3d.ScaleTranslation(
		math3d.V4(scale, scale, scale, 1),
		math3d.V4FromV3(center.Scale(-scale), 1),
	)

	for _, mesh := range model.Meshes {
		if mesh.VertexCount() == 0 {
			continue
		}
		m := mesh.Clone()
		m.Transform(fit)
		v.meshes = append(v.meshes, m)
	}
}

func (v *viewer) resize(cols, rows int) {
	v.fb.Resize(cols, rows*2)
	v.raster.Resize()
	if rows > 0 {
		v.camera.AspectRatio = float32(cols) / float32(rows*2)
	}
}

func (v *viewer) handleKey(ev uv.KeyPressEvent) {
	switch {
	case ev.MatchString("space"):
		v.paused = !v.paused
	case ev.MatchString("+", "="):
		v.targetSpeed += 0.25
	case ev.MatchString("-", "_"):
		v.targetSpeed -= 0.25
	case ev.MatchString("up"):
		v.transform.Rotate(math3d.QuatFromAxisAngle(math3d.UnitX(), -0.1))
	case ev.MatchString("down"):
		v.transform.Rotate(math3d.QuatFromAxisAngle(math3d.UnitX(), 0.1))
	case ev.MatchString("x"):
		v.wireframe = !v.wireframe
	case ev.MatchString("b"):
		v.showBounds = !v.showBounds
	case ev.MatchString("r"):
		v.transform = math3d.NewTransform()
		v.targetSpeed = v.cfg.SpinSpeed
	case ev.MatchString("?", "shift+/"):
		v.showHUD = !v.showHUD
	}
}

// update advances the spin by one frame.
func (v *viewer) update(dt float64) {
	target := v.targetSpeed
	if v.paused {
		target = 0
	}
	v.speed, v.speedVel = v.spring.Update(v.speed, v.speedVel, target)
	v.transform.Rotate(math3d.QuatFromAxisAngle(math3d.UnitY(), float32(v.speed*dt)))
}

var lightDir = math3d.V3(-0.4, -0.6, -1)

func (v *viewer) draw() {
	v.fb.Clear(v.background)
	v.raster.ClearDepth()

	model := v.transform.Matrix()
	for _, mesh := range v.meshes {
		if v.wireframe {
			v.wire.DrawMesh(mesh, model, render.RGB(0, 255, 128))
		} else {
			v.raster.DrawMesh(mesh, model, render.RGB(200, 200, 200), lightDir)
		}
		if v.showBounds {
			lo, hi := mesh.GetBounds()
			v.wire.DrawBounds(lo, hi, model, render.ColorCyan)
		}
	}
}

// rotationDegrees reports the spin angle around +Y, for the HUD.
func (v *viewer) rotationDegrees() float64 {
	q := v.transform.Rotation
	return float64(2 * math32.Atan2(q.B, q.D) * 180 / math32.Pi)
}

// parseColor reads an "R,G,B" triple with each channel in 0-255.
func parseColor(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.ColorBlack, fmt.Errorf("want R,G,B, got %q", s)
	}

	var rgb [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.ColorBlack, fmt.Errorf("channel %d of %q: %w", i+1, s, err)
		}
		rgb[i] = uint8(n)
	}
	return render.RGB(rgb[0], rgb[1], rgb[2]), nil
}
