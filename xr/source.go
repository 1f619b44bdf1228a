package xr

// AssetSource identifies where an asset comes from: a URL/path, or a blob
// handed over by the host UI (file picker). Blob sources carry a release hook
// so the underlying reference can be revoked once the asset is disposed.
type AssetSource struct {
	Ref     string
	release func()
}

// URLSource wraps a URL or file path.
func URLSource(ref string) AssetSource {
	return AssetSource{Ref: ref}
}

// BlobSource wraps a host-owned blob reference. release may be nil.
func BlobSource(ref string, release func()) AssetSource {
	return AssetSource{Ref: ref, release: release}
}

// Release revokes the underlying reference, if any. Idempotent only if the
// hook itself is; callers release a source at most once.
func (s AssetSource) Release() {
	if s.release != nil {
		s.release()
	}
}

// Zero reports whether the source is empty.
func (s AssetSource) Zero() bool {
	return s.Ref == "" && s.release == nil
}
