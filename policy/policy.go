// Package policy provides optional per-call overrides of the process-wide
// region configuration, attached to a context.  It is deliberately decoupled
// from the rest of the module so that using it is entirely opt-in – callers
// that do not embed a Policy in their context keep the configured defaults.
package policy

import (
	"context"

	"github.com/viant/parallel/config"
)

// Policy overrides selected region settings for the regions entered with a
// context carrying it.  Nil pointer fields leave the corresponding setting
// untouched; a nil *Policy is the zero-cost default.
type Policy struct {
	// NumThreads replaces the per-depth thread-count list when non-empty.
	NumThreads []int

	// Nested overrides the nesting flag when non-nil.
	Nested *bool

	// ThreadLimit overrides the process-wide thread limit when non-nil;
	// 0 removes the limit.
	ThreadLimit *int
}

// Apply overlays the policy on cfg and returns the merged copy; cfg itself
// is not modified.
func (p *Policy) Apply(cfg *config.Config) *config.Config {
	merged := cfg.Clone()
	if p == nil {
		return merged
	}
	if len(p.NumThreads) > 0 {
		merged.NumThreads = append([]int(nil), p.NumThreads...)
	}
	if p.Nested != nil {
		merged.Nested = *p.Nested
	}
	if p.ThreadLimit != nil {
		merged.ThreadLimit = *p.ThreadLimit
	}
	return merged
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds the policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy or nil.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}

// Bool returns a pointer suitable for the Nested field.
func Bool(v bool) *bool { return &v }

// Int returns a pointer suitable for the ThreadLimit field.
func Int(v int) *int { return &v }
