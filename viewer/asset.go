package viewer

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"arview/xr"
)

// AssetState is the load state of the current asset.
type AssetState uint8

const (
	AssetNone AssetState = iota
	AssetLoading
	AssetReady
	AssetFailed
)

func (s AssetState) String() string {
	switch s {
	case AssetNone:
		return "none"
	case AssetLoading:
		return "loading"
	case AssetReady:
		return "ready"
	case AssetFailed:
		return "failed"
	}
	return "unknown"
}

// RestPosition is the default resting point an asset returns to outside AR.
var RestPosition = mgl32.Vec3{0, 0, 0}

// UnitScale is the uniform scale assets keep in both modes.
var UnitScale = mgl32.Vec3{1, 1, 1}

// Asset wraps the single placeable asset: its renderable, load state, and
// disposal. Loading a new source disposes the previous renderable first, so
// at most one instance is ever attached to the scene. Provider callbacks
// resolve on host goroutines and are checked against a generation counter;
// callbacks from a superseded load are discarded.
type Asset struct {
	log      *zap.Logger
	provider xr.AssetProvider

	mu         sync.Mutex
	gen        uint64
	src        xr.AssetSource
	state      AssetState
	renderable xr.Renderable
	loadErr    error
	// defaultVisible is the visibility a freshly loaded asset gets:
	// true in inspection mode, false in AR until placed.
	defaultVisible bool
}

// NewAsset returns an empty handle. log may be nil.
func NewAsset(provider xr.AssetProvider, log *zap.Logger) *Asset {
	if log == nil {
		log = zap.NewNop()
	}
	return &Asset{log: log, provider: provider, defaultVisible: true}
}

// Load replaces the current asset with one loaded from src. Any previous
// renderable is disposed, and its source released, before the new load
// starts; pending callbacks from the replaced load are invalidated.
func (a *Asset) Load(src xr.AssetSource) {
	a.mu.Lock()
	a.gen++
	gen := a.gen
	if a.renderable != nil {
		a.renderable.Dispose()
		a.renderable = nil
	}
	if !a.src.Zero() {
		a.src.Release()
	}
	a.src = src
	a.state = AssetLoading
	a.loadErr = nil
	a.mu.Unlock()

	a.log.Info("loading asset", zap.String("ref", src.Ref))
	a.provider.Load(src,
		func(r xr.Renderable) { a.ready(gen, r) },
		func(err error) { a.fail(gen, err) },
	)
}

func (a *Asset) ready(gen uint64, r xr.Renderable) {
	a.mu.Lock()
	if gen != a.gen {
		ref := a.src.Ref
		a.mu.Unlock()
		a.log.Debug("discarding superseded asset load", zap.String("current", ref))
		r.Dispose()
		return
	}
	r.SetPosition(RestPosition)
	r.SetScale(UnitScale)
	r.SetOrientation(mgl32.QuatIdent())
	r.SetVisible(a.defaultVisible)
	a.renderable = r
	a.state = AssetReady
	ref := a.src.Ref
	a.mu.Unlock()
	a.log.Info("asset ready", zap.String("ref", ref))
}

func (a *Asset) fail(gen uint64, err error) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.state = AssetFailed
	a.loadErr = err
	ref := a.src.Ref
	a.mu.Unlock()
	a.log.Warn("asset load failed", zap.String("ref", ref), zap.Error(err))
}

// Renderable returns the attached renderable, or nil while none is loaded.
func (a *Asset) Renderable() xr.Renderable {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderable
}

// State returns the current load state.
func (a *Asset) State() AssetState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Err returns the load error after a failed load, else nil. This is the
// user-visible failure indicator.
func (a *Asset) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadErr
}

// SetDefaultVisible sets the visibility applied when a load completes, and
// applies it to the current renderable immediately.
func (a *Asset) SetDefaultVisible(v bool) {
	a.mu.Lock()
	a.defaultVisible = v
	r := a.renderable
	a.mu.Unlock()
	if r != nil {
		r.SetVisible(v)
	}
}

// ResetTransform returns the renderable to the resting point at unit scale.
// No-op while nothing is loaded.
func (a *Asset) ResetTransform() {
	a.mu.Lock()
	r := a.renderable
	a.mu.Unlock()
	if r == nil {
		return
	}
	r.SetPosition(RestPosition)
	r.SetScale(UnitScale)
}

// Dispose releases the renderable and the source reference. Idempotent, and
// safe after a failed load. Pending load callbacks are invalidated.
func (a *Asset) Dispose() {
	a.mu.Lock()
	a.gen++
	r := a.renderable
	src := a.src
	a.renderable = nil
	a.src = xr.AssetSource{}
	a.state = AssetNone
	a.loadErr = nil
	a.mu.Unlock()
	if r != nil {
		r.Dispose()
	}
	if !src.Zero() {
		src.Release()
	}
}
