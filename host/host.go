// Package host is the desktop implementation of the viewer's collaborators:
// an ebiten render loop, a simulated AR session with ground-plane hit
// testing, an orbit camera rig, and an asynchronous asset provider. A
// headless runner drives the same frame step without a window.
package host

import (
	"time"

	"go.uber.org/zap"

	"arview/xr"
)

// Config tunes the host.
type Config struct {
	Width  int
	Height int
	TPS    int

	// AcquireLatency delays reference-space and hit-test-source resolution,
	// the way a real device does.
	AcquireLatency time.Duration
	// LoadLatency delays asset provider resolution.
	LoadLatency time.Duration
	// DenyHitTest makes sessions decline hit testing.
	DenyHitTest bool

	Logger *zap.Logger
}

// StepFunc is the per-frame entry point of the hosted application. now is in
// seconds; data is nil outside AR.
type StepFunc func(now float64, data *xr.FrameData) error

// Host owns the simulated XR surface and the scene. All methods are called
// from the render loop goroutine unless noted otherwise.
type Host struct {
	cfg Config
	log *zap.Logger

	scene    *scene
	orbit    *Orbit
	provider *Provider

	session *simSession // nil in inspection mode
	tick    uint64

	startFns  []func(xr.Session)
	endFns    []func()
	selectFns []func()
	loadFns   []func(xr.AssetSource)

	// reticleFn reports the reticle pose for drawing; set by the app.
	reticleFn func() (xr.Pose, bool)
	// statusFn supplies the overlay line; set by the app.
	statusFn func() string
}

// New builds a host. The zero values of cfg are filled with defaults.
func New(cfg Config) *Host {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.TPS <= 0 {
		cfg.TPS = 60
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	sc := newScene()
	return &Host{
		cfg:      cfg,
		log:      cfg.Logger,
		scene:    sc,
		orbit:    NewOrbit(),
		provider: NewProvider(sc, cfg.LoadLatency, cfg.Logger),
	}
}

// Provider returns the asset provider collaborator.
func (h *Host) Provider() *Provider { return h.provider }

// Orbit returns the orbit controls collaborator.
func (h *Host) Orbit() *Orbit { return h.orbit }

// OnSessionStart registers a session-start listener.
func (h *Host) OnSessionStart(fn func(xr.Session)) {
	h.startFns = append(h.startFns, fn)
}

// OnSessionEnd registers a session-end listener.
func (h *Host) OnSessionEnd(fn func()) {
	h.endFns = append(h.endFns, fn)
}

// OnSelect registers a listener for the user select trigger.
func (h *Host) OnSelect(fn func()) {
	h.selectFns = append(h.selectFns, fn)
}

// OnLoad registers a listener for UI load-asset requests.
func (h *Host) OnLoad(fn func(xr.AssetSource)) {
	h.loadFns = append(h.loadFns, fn)
}

// SetReticleFunc installs the reticle state accessor used for drawing.
func (h *Host) SetReticleFunc(fn func() (xr.Pose, bool)) { h.reticleFn = fn }

// SetStatusFunc installs the overlay status accessor.
func (h *Host) SetStatusFunc(fn func() string) { h.statusFn = fn }

// InAR reports whether a session is running.
func (h *Host) InAR() bool { return h.session != nil }

// StartSession begins a simulated AR session and notifies listeners.
// No-op while one is already running.
func (h *Host) StartSession() {
	if h.session != nil {
		return
	}
	s := newSimSession(h.cfg.AcquireLatency, h.cfg.DenyHitTest)
	h.session = s
	h.log.Info("session started", zap.String("session", s.ID().String()))
	for _, fn := range h.startFns {
		fn(s)
	}
}

// EndSession ends the running session, fires its end listeners, and notifies
// host listeners. No-op while none is running.
func (h *Host) EndSession() {
	if h.session == nil {
		return
	}
	s := h.session
	h.session = nil
	s.End()
	h.log.Info("session ended", zap.String("session", s.ID().String()))
	for _, fn := range h.endFns {
		fn()
	}
}

// ToggleSession flips between inspection and AR.
func (h *Host) ToggleSession() {
	if h.session == nil {
		h.StartSession()
	} else {
		h.EndSession()
	}
}

func (h *Host) emitSelect() {
	for _, fn := range h.selectFns {
		fn()
	}
}

func (h *Host) emitLoad(src xr.AssetSource) {
	for _, fn := range h.loadFns {
		fn(src)
	}
}

// step advances one frame: the tick counter, the device simulation, and the
// hosted application.
func (h *Host) step(app StepFunc) error {
	h.tick++
	now := float64(h.tick) / float64(h.cfg.TPS)

	var data *xr.FrameData
	if h.session != nil {
		data = &xr.FrameData{
			Frame: newSimFrame(devicePose(now)),
			Space: simSpace{kind: xr.SpaceLocal},
		}
	}
	if app == nil {
		return nil
	}
	return app(now, data)
}

func (h *Host) reticleState() (xr.Pose, bool) {
	if h.reticleFn == nil {
		return xr.Pose{}, false
	}
	return h.reticleFn()
}

func (h *Host) status() string {
	if h.statusFn == nil {
		return ""
	}
	return h.statusFn()
}
