// Package shared provides the coordination backend for parallel regions:
// locks, lists, dicts, queues and shape-aware arrays that may be referenced
// from every worker of a region.
//
// All containers are allocated through a Manager.  The process-wide default
// manager is re-created after each region's workers have joined (see
// Reset); handles allocated from a superseded manager refuse further
// allocations, which surfaces accidental reuse of a stale backend across
// regions instead of silently leaking it.
package shared
