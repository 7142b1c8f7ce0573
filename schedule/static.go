package schedule

import (
	"fmt"
)

// Static partitions the index range described by bounds into numThreads
// contiguous chunks and returns the chunk owned by threadNum.
//
// With L items, base = L/numThreads and rem = L%numThreads, the rem
// lowest-indexed workers receive base+1 items and the remaining workers
// base items, so chunk sizes differ by at most one.  The union of all
// chunks reconstructs the range exactly, with no gaps or overlaps.  The
// function is pure: repeated calls with the same arguments yield the same
// result.
func Static(numThreads, threadNum int, bounds ...int) ([]int, error) {
	if numThreads < 1 {
		return nil, fmt.Errorf("%w: numThreads must be positive, got %d", ErrBounds, numThreads)
	}
	if threadNum < 0 || threadNum >= numThreads {
		return nil, fmt.Errorf("%w: threadNum %d out of range [0,%d)", ErrBounds, threadNum, numThreads)
	}
	start, stop, step, err := normalizeBounds(bounds)
	if err != nil {
		return nil, err
	}

	total := rangeLen(start, stop, step)
	base := total / numThreads
	rem := total % numThreads

	size := base
	if threadNum < rem {
		size++
	}
	// Offset = sum of chunk sizes of all lower-indexed workers.
	offset := threadNum * base
	if threadNum < rem {
		offset += threadNum
	} else {
		offset += rem
	}

	chunk := make([]int, size)
	for i := 0; i < size; i++ {
		chunk[i] = start + (offset+i)*step
	}
	return chunk, nil
}
