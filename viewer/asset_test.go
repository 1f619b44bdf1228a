package viewer

import (
	"errors"
	"testing"

	"arview/xr"
)

func TestLoadDisposesPreviousInstance(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("first.obj"))
	first := p.succeed(t, 0)

	a.Load(xr.URLSource("second.obj"))
	if first.disposed != 1 {
		t.Fatalf("first renderable disposed %d times, want 1", first.disposed)
	}

	second := p.succeed(t, 1)
	if got := a.Renderable(); got != second {
		t.Fatalf("Renderable() = %v, want the second instance", got)
	}
	if second.disposed != 0 {
		t.Fatal("live renderable was disposed")
	}
}

func TestLateReadyFromSupersededLoadIgnored(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("slow.obj"))
	a.Load(xr.URLSource("fast.obj"))

	// The superseded load resolves late.
	stale := p.succeed(t, 0)

	if stale.disposed != 1 {
		t.Fatalf("stale renderable disposed %d times, want 1", stale.disposed)
	}
	if a.Renderable() != nil {
		t.Fatal("stale renderable attached")
	}
	if got := a.State(); got != AssetLoading {
		t.Fatalf("State() = %s, want loading", got)
	}
}

func TestLateFailureFromSupersededLoadIgnored(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("slow.obj"))
	a.Load(xr.URLSource("fast.obj"))

	p.fail(t, 0, errors.New("decode error"))

	if got := a.State(); got != AssetLoading {
		t.Fatalf("State() = %s after stale failure, want loading", got)
	}
	if a.Err() != nil {
		t.Fatalf("Err() = %v after stale failure, want nil", a.Err())
	}
}

func TestReadyInitializesTransform(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("model.obj"))
	r := p.succeed(t, 0)

	if r.pos != RestPosition {
		t.Fatalf("position = %v, want %v", r.pos, RestPosition)
	}
	if r.scale != UnitScale {
		t.Fatalf("scale = %v, want %v", r.scale, UnitScale)
	}
	if !r.visible {
		t.Fatal("renderable not visible after inspection-mode load")
	}
	if got := a.State(); got != AssetReady {
		t.Fatalf("State() = %s, want ready", got)
	}
}

func TestLoadRespectsARVisibilityDefault(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)
	a.SetDefaultVisible(false)

	a.Load(xr.URLSource("model.obj"))
	r := p.succeed(t, 0)

	if r.visible {
		t.Fatal("renderable visible after load in ar mode, want hidden until placed")
	}
}

func TestFailedLoadLeavesNoRenderable(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("broken.obj"))
	loadErr := errors.New("unsupported format")
	p.fail(t, 0, loadErr)

	if a.Renderable() != nil {
		t.Fatal("renderable attached after failed load")
	}
	if got := a.State(); got != AssetFailed {
		t.Fatalf("State() = %s, want failed", got)
	}
	if !errors.Is(a.Err(), loadErr) {
		t.Fatalf("Err() = %v, want %v", a.Err(), loadErr)
	}
}

func TestDisposeIdempotentAndSafeAfterFailure(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	a.Load(xr.URLSource("broken.obj"))
	p.fail(t, 0, errors.New("decode error"))

	a.Dispose()
	a.Dispose()

	if got := a.State(); got != AssetNone {
		t.Fatalf("State() = %s after Dispose, want none", got)
	}
	if a.Err() != nil {
		t.Fatalf("Err() = %v after Dispose, want nil", a.Err())
	}
}

func TestBlobSourceReleasedWhenSuperseded(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	released := 0
	a.Load(xr.BlobSource("blob:abc", func() { released++ }))
	p.succeed(t, 0)

	a.Load(xr.URLSource("next.obj"))
	if released != 1 {
		t.Fatalf("blob released %d times after superseding load, want 1", released)
	}
}

func TestBlobSourceReleasedOnDispose(t *testing.T) {
	p := &fakeProvider{}
	a := NewAsset(p, nil)

	released := 0
	a.Load(xr.BlobSource("blob:abc", func() { released++ }))
	p.succeed(t, 0)

	a.Dispose()
	a.Dispose()
	if released != 1 {
		t.Fatalf("blob released %d times after Dispose, want 1", released)
	}
}
