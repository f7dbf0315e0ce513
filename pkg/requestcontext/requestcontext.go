// Package requestcontext carries per-request values set by middleware.
package requestcontext

import "context"

type (
	requestIDKey struct{}
	actorIDKey   struct{}
	clientIPKey  struct{}
	userAgentKey struct{}
)

// WithRequestID stores the request correlation id.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request correlation id, or "" when unset.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithActorID stores the authenticated admin actor.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDKey{}, actorID)
}

// ActorID returns the authenticated admin actor, or "" when unset.
func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(actorIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithClientIP stores the remote address of the caller.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the remote address of the caller.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey{}).(string); ok {
		return v
	}
	return ""
}

// WithUserAgent stores the raw User-Agent header.
func WithUserAgent(ctx context.Context, ua string) context.Context {
	return context.WithValue(ctx, userAgentKey{}, ua)
}

// UserAgent returns the raw User-Agent header.
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(userAgentKey{}).(string); ok {
		return v
	}
	return ""
}

// Vendor identifies the marketplace vendor a dashboard request acts for.
type Vendor struct {
	ID       string
	ShopName string
}

type vendorKey struct{}

// WithVendor stores the authenticated vendor.
func WithVendor(ctx context.Context, v Vendor) context.Context {
	return context.WithValue(ctx, vendorKey{}, v)
}

// VendorFrom returns the authenticated vendor and whether one was set.
func VendorFrom(ctx context.Context) (Vendor, bool) {
	v, ok := ctx.Value(vendorKey{}).(Vendor)
	return v, ok
}
