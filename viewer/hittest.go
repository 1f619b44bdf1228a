package viewer

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"arview/xr"
)

// acquireState tracks the hit-test source acquisition for one session.
type acquireState uint8

const (
	acquireIdle acquireState = iota
	acquireRequested
	acquireReady
)

// HitTest owns the surface-detection capability of one AR session: it issues
// the reference-space/hit-test-source request chain at most once per session,
// samples the source every frame, and tears everything down on session end.
//
// The request chain resolves on a host goroutine; commits are guarded by the
// identity of the session captured at request time, so a resolution arriving
// after that session ended (or after a new session started) is discarded
// instead of resurrecting a stale source.
type HitTest struct {
	log *zap.Logger

	mu      sync.Mutex
	state   acquireState
	session uuid.UUID // session the current request/source belongs to
	source  xr.HitTestSource
}

// NewHitTest returns an idle manager. log may be nil.
func NewHitTest(log *zap.Logger) *HitTest {
	if log == nil {
		log = zap.NewNop()
	}
	return &HitTest{log: log}
}

// EnsureSource issues the acquisition chain for session unless one was
// already issued this session. The requested state is recorded before the
// chain starts, so per-frame callers never issue a second request while the
// first is pending.
func (h *HitTest) EnsureSource(session xr.Session) {
	h.mu.Lock()
	if h.state != acquireIdle {
		h.mu.Unlock()
		return
	}
	h.state = acquireRequested
	h.session = session.ID()
	h.mu.Unlock()

	// Fires even if the chain below never resolves.
	session.OnEnd(h.Reset)

	id := session.ID()
	session.RequestReferenceSpace(xr.SpaceViewer, func(space xr.ReferenceSpace, err error) {
		if err != nil {
			h.degrade(id, "reference space request failed", err)
			return
		}
		session.RequestHitTestSource(space, func(src xr.HitTestSource, err error) {
			if err != nil {
				h.degrade(id, "hit-test source request failed", err)
				return
			}
			h.commit(id, src)
		})
	})
}

// commit stores a resolved source, unless the session it was requested for is
// no longer the live one.
func (h *HitTest) commit(id uuid.UUID, src xr.HitTestSource) {
	h.mu.Lock()
	if h.state != acquireRequested || h.session != id {
		h.mu.Unlock()
		h.log.Debug("discarding stale hit-test source", zap.String("session", id.String()))
		src.Cancel()
		return
	}
	h.state = acquireReady
	h.source = src
	h.mu.Unlock()
	h.log.Debug("hit-test source ready", zap.String("session", id.String()))
}

// degrade records an acquisition failure. The request is not retried within
// the session; every subsequent Sample reports no hit.
func (h *HitTest) degrade(id uuid.UUID, msg string, err error) {
	h.mu.Lock()
	stale := h.state != acquireRequested || h.session != id
	h.mu.Unlock()
	if stale {
		return
	}
	h.log.Warn(msg, zap.String("session", id.String()), zap.Error(err))
}

// Sample queries the current frame for surface hits. It reports the first
// hit's pose, or ok = false when no source exists yet or no surface was found.
func (h *HitTest) Sample(frame xr.Frame, space xr.ReferenceSpace) (xr.Pose, bool) {
	h.mu.Lock()
	src := h.source
	h.mu.Unlock()
	if src == nil {
		return xr.Pose{}, false
	}
	results := frame.HitTestResults(src)
	if len(results) == 0 {
		return xr.Pose{}, false
	}
	return results[0].Pose(space)
}

// Reset cancels any stored source and clears the requested state. Idempotent;
// safe while a request chain is still pending (its late resolution will be
// discarded by the identity check).
func (h *HitTest) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.source != nil {
		h.source.Cancel()
		h.source = nil
	}
	h.state = acquireIdle
	h.session = uuid.Nil
}
