package auditlog

import "context"

// Metadata describes where a submission came from.
type Metadata struct {
	Source     string
	RemoteAddr string
}

type metadataKey struct{}

// WithMetadata attaches audit metadata to a context. Empty fields keep
// any value already present.
func WithMetadata(ctx context.Context, meta Metadata) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	existing, _ := ctx.Value(metadataKey{}).(Metadata)
	merged := Metadata{
		Source:     pick(meta.Source, existing.Source),
		RemoteAddr: pick(meta.RemoteAddr, existing.RemoteAddr),
	}
	return context.WithValue(ctx, metadataKey{}, merged)
}

// MetadataFromContext returns audit metadata stored in the context.
func MetadataFromContext(ctx context.Context) Metadata {
	if ctx == nil {
		return Metadata{}
	}
	meta, _ := ctx.Value(metadataKey{}).(Metadata)
	return meta
}

func pick(next, fallback string) string {
	if next != "" {
		return next
	}
	return fallback
}
