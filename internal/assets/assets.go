// Package assets caches loaded models by path, hands out stable IDs and
// reloads models when their files change.
package assets

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/taigrr/meshkit/internal/config"
	"github.com/taigrr/meshkit/internal/logger"
	"github.com/taigrr/meshkit/pkg/models"
)

// ErrUnsupportedFormat is returned for files that are not .obj, .glb or .gltf.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// Asset is one loaded model file. Assets are immutable; Reload publishes a
// new Asset carrying the same ID.
type Asset struct {
	ID       uuid.UUID
	Path     string
	Model    *models.Model
	LoadedAt time.Time
}

// Library loads models and caches them by absolute path. It is safe for
// concurrent use.
type Library struct {
	opts config.ParseConfig
	log  *zap.Logger

	mu     sync.RWMutex
	assets map[string]*Asset
}

// NewLibrary creates an empty library that parses with opts.
func NewLibrary(opts config.ParseConfig) *Library {
	return &Library{
		opts:   opts,
		log:    logger.Named("assets"),
		assets: make(map[string]*Asset),
	}
}

// LoadModel parses the file at path, choosing the loader by extension.
func LoadModel(path string, opts config.ParseConfig) (*models.Model, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		loader := models.NewOBJLoader()
		loader.SharedPools = opts.SharedPools
		loader.CalculateNormals = opts.CalculateNormals
		return loader.Load(path)
	case ".glb", ".gltf":
		loader := models.NewGLTFLoader()
		loader.CalculateNormals = opts.CalculateNormals
		return loader.Load(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load returns the cached asset for path, loading it on first use.
func (l *Library) Load(path string) (*Asset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	l.mu.RLock()
	asset, ok := l.assets[abs]
	l.mu.RUnlock()
	if ok {
		return asset, nil
	}

	return l.load(abs, uuid.Nil)
}

// Reload parses path again and replaces the cached asset, keeping its ID.
// On failure the previous asset stays cached.
func (l *Library) Reload(path string) (*Asset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	l.mu.RLock()
	prev, ok := l.assets[abs]
	l.mu.RUnlock()

	id := uuid.Nil
	if ok {
		id = prev.ID
	}
	return l.load(abs, id)
}

// load parses abs and stores the result. A nil id allocates a new one.
func (l *Library) load(abs string, id uuid.UUID) (*Asset, error) {
	start := time.Now()
	model, err := LoadModel(abs, l.opts)
	if err != nil {
		l.log.Warn("load failed", zap.String("path", abs), zap.Error(err))
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// A concurrent first load may have won; keep its ID.
	if id == uuid.Nil {
		if cur, ok := l.assets[abs]; ok {
			id = cur.ID
		} else {
			id = uuid.New()
		}
	}

	asset := &Asset{
		ID:       id,
		Path:     abs,
		Model:    model,
		LoadedAt: time.Now(),
	}
	l.assets[abs] = asset

	l.log.Debug("loaded model",
		zap.String("path", abs),
		zap.Stringer("id", id),
		zap.Int("meshes", model.Len()),
		zap.Int("triangles", model.TriangleCount()),
		zap.Duration("took", time.Since(start)),
	)
	return asset, nil
}

// Get returns the cached asset for path without loading it.
func (l *Library) Get(path string) (*Asset, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	asset, ok := l.assets[abs]
	return asset, ok
}

// ByID returns the cached asset with the given ID.
func (l *Library) ByID(id uuid.UUID) (*Asset, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, asset := range l.assets {
		if asset.ID == id {
			return asset, true
		}
	}
	return nil, false
}

// Assets returns every cached asset ordered by path.
func (l *Library) Assets() []*Asset {
	l.mu.RLock()
	out := make([]*Asset, 0, len(l.assets))
	for _, asset := range l.assets {
		out = append(out, asset)
	}
	l.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Asset) int {
		return strings.Compare(a.Path, b.Path)
	})
	return out
}

// LoadAll loads paths concurrently, at most opts.Workers at a time. The
// result is in the order of paths. The first failure cancels the
// remaining loads and is returned.
func (l *Library) LoadAll(ctx context.Context, paths []string) ([]*Asset, error) {
	workers := l.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	out := make([]*Asset, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			asset, err := l.Load(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			out[i] = asset
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
