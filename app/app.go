// Package app wires the viewer core to a host: session notifications, user
// input, asset loading, and the drawing accessors the host needs.
package app

import (
	"fmt"

	"go.uber.org/zap"

	"arview/host"
	"arview/internal/config"
	"arview/viewer"
	"arview/xr"
)

// App is one running viewer application.
type App struct {
	log    *zap.Logger
	viewer *viewer.Viewer
	src    xr.AssetSource
}

// New builds the core, binds it to h, and starts the initial asset load.
func New(h *host.Host, cfg config.Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	policy := viewer.PolicyPositionOnly
	if cfg.PlacementPolicy == "pose" {
		policy = viewer.PolicyFullPose
	}

	v := viewer.New(h.Provider(), h.Orbit(), viewer.Config{Policy: policy, Logger: log})
	a := &App{log: log, viewer: v, src: assetSource(cfg.AssetRef)}

	h.OnSessionStart(v.SessionStarted)
	h.OnSessionEnd(v.SessionEnded)
	h.OnSelect(v.Select)
	h.OnLoad(func(src xr.AssetSource) { v.Asset().Load(src) })
	h.SetReticleFunc(func() (xr.Pose, bool) {
		r := v.Reticle()
		return r.Pose(), r.Visible()
	})
	h.SetStatusFunc(a.status)

	v.Asset().Load(a.src)
	return a
}

func assetSource(ref string) xr.AssetSource {
	if ref == "" {
		return xr.URLSource(host.BuiltinCube)
	}
	return xr.URLSource(ref)
}

// Source returns the asset source a UI load request re-loads.
func (a *App) Source() xr.AssetSource { return a.src }

// Step is the per-frame entry point handed to the host runners.
func (a *App) Step(now float64, data *xr.FrameData) error {
	a.viewer.Frame(now, data)
	return nil
}

// status is the overlay line: load failures are the user-visible failure
// indicator required of the core.
func (a *App) status() string {
	if err := a.viewer.Asset().Err(); err != nil {
		return fmt.Sprintf("asset load failed: %v", err)
	}
	if a.viewer.Asset().State() == viewer.AssetLoading {
		return fmt.Sprintf("loading %s", a.src.Ref)
	}
	if a.viewer.Mode() == viewer.ModeAR {
		if a.viewer.Reticle().Visible() {
			return "space/click: place asset   [tab] exit ar"
		}
		return "scanning for a surface   [tab] exit ar"
	}
	return "drag: orbit   wheel: zoom   [tab] enter ar   [l] reload"
}
