// objconv - parse OBJ and glTF models, report their contents and convert
// them to GLB.
//
// Usage:
//
//	objconv [options] <model> [model...]
//
// Every input is parsed concurrently. With -o a single input is written to
// that GLB path; with -out-dir each input becomes <dir>/<name>.glb.
// -png renders a shaded preview of each input next to its GLB.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/taigrr/meshkit/internal/assets"
	"github.com/taigrr/meshkit/internal/config"
	"github.com/taigrr/meshkit/internal/logger"
	"github.com/taigrr/meshkit/pkg/math3d"
	"github.com/taigrr/meshkit/pkg/models"
	"github.com/taigrr/meshkit/pkg/render"
)

var (
	outPath = flag.String("o", "", "Write the single input model to this GLB path")
	outDir  = flag.String("out-dir", "", "Write each input as <dir>/<name>.glb (overrides config)")
	preview = flag.Bool("png", false, "Also render a PNG preview for each exported model")
	verbose = flag.Bool("v", false, "List every mesh")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "objconv - Model inspector and GLB converter\n\n")
		fmt.Fprintf(os.Stderr, "Usage: objconv [options] <model> [model...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	config.ParseFlags()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(paths []string) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}
	if *outDir != "" {
		cfg.Export.Dir = *outDir
	}
	if *outPath != "" && len(paths) > 1 {
		return fmt.Errorf("-o takes exactly one input, got %d", len(paths))
	}

	logOpts := logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.LogFile, Console: true}
	if err := logger.Setup(logOpts); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Named("objconv")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	lib := assets.NewLibrary(cfg.Parse)
	loaded, err := lib.LoadAll(ctx, paths)
	if err != nil {
		return err
	}

	printStats(os.Stdout, loaded, *verbose)

	for _, asset := range loaded {
		dst := exportPath(asset.Path, cfg.Export.Dir)
		if dst == "" {
			continue
		}

		if err := models.ExportGLB(asset.Model, dst); err != nil {
			return fmt.Errorf("export %s: %w", asset.Path, err)
		}
		log.Info("exported", zap.String("from", asset.Path), zap.String("to", dst))

		if *preview {
			png := strings.TrimSuffix(dst, filepath.Ext(dst)) + ".png"
			if err := renderPreview(asset.Model, cfg.Export, png); err != nil {
				return fmt.Errorf("preview %s: %w", asset.Path, err)
			}
			log.Info("rendered preview", zap.String("path", png))
		}
	}

	return nil
}

// exportPath picks the GLB destination for src, or "" when nothing should
// be written.
func exportPath(src, dir string) string {
	if *outPath != "" {
		return *outPath
	}
	if dir == "" {
		return ""
	}
	name := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	return filepath.Join(dir, name+".glb")
}

func printStats(out *os.File, loaded []*assets.Asset, meshes bool) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tMESHES\tVERTICES\tTRIANGLES\tBOUNDS")

	for _, asset := range loaded {
		m := asset.Model
		bounds := "-"
		if lo, hi, ok := m.Bounds(); ok {
			bounds = formatBounds(lo, hi)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n",
			filepath.Base(asset.Path), m.Len(), m.VertexCount(), m.TriangleCount(), bounds)

		if !meshes {
			continue
		}
		for _, mesh := range m.Meshes {
			attrs := ""
			if mesh.HasNormals {
				attrs += " +normals"
			}
			if mesh.HasUVs {
				attrs += " +uvs"
			}
			fmt.Fprintf(w, "  %s%s\t\t%d\t%d\t%s\n",
				mesh.Name, attrs, mesh.VertexCount(), mesh.TriangleCount(), formatBounds(mesh.BoundsMin, mesh.BoundsMax))
		}
	}
	w.Flush()
}

func formatBounds(lo, hi math3d.Vec3) string {
	return fmt.Sprintf("(%.3g, %.3g, %.3g)..(%.3g, %.3g, %.3g)", lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
}

// renderPreview draws model shaded into a PNG.
func renderPreview(model *models.Model, cfg config.ExportConfig, path string) error {
	fb := render.NewFramebuffer(cfg.PNGWidth, cfg.PNGHeight)
	fb.Clear(render.RGB(30, 30, 40))

	camera := render.NewCamera()
	camera.AspectRatio = float32(cfg.PNGWidth) / float32(cfg.PNGHeight)
	if lo, hi, ok := model.Bounds(); ok {
		camera.Frame(lo, hi)
	}

	raster := render.NewRasterizer(camera, fb)
	light := math3d.V3(-0.4, -0.6, -1)
	for _, mesh := range model.Meshes {
		raster.DrawMesh(mesh, math3d.Identity(), render.RGB(200, 200, 200), light)
	}

	return fb.SavePNG(path)
}
