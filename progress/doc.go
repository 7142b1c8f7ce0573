// Package progress defines primitives for reporting and aggregating the
// progress of a parallel region.  It abstracts away the delivery mechanism so
// that callers can consume progress updates in a uniform way regardless of
// whether they are rendered to a terminal, logged or forwarded to an external
// observer.
package progress
