// Package schedule implements the two work-distribution strategies used by
// parallel regions: a static, contiguous partition of an index range
// (Static) and a queue-backed dynamic schedule that lets workers claim items
// on demand (Dynamic).
//
// Index ranges follow Python range semantics: Bounds of one value is the
// exclusive stop with start 0 and step 1, two values are start and stop, and
// three values add the step, which may be negative.
package schedule
