package tagval

import "fmt"

// Segment is a window of count elements starting at offset within array.
//
// A Segment is a logical type of its own: a Value holding a []T never
// satisfies a Segment[T] request and vice versa, even when the window covers
// the whole slice.
type Segment[T any] struct {
	array  []T
	offset int
	count  int
}

// NewSegment returns the window array[offset:offset+count]. It panics when
// the window does not fit in array.
func NewSegment[T any](array []T, offset, count int) Segment[T] {
	if offset < 0 || count < 0 || offset > len(array)-count {
		panic(fmt.Sprintf("tagval: segment [%d:%d] out of range for length %d", offset, offset+count, len(array)))
	}
	return Segment[T]{array: array, offset: offset, count: count}
}

// SegmentOf returns a Segment covering all of array.
func SegmentOf[T any](array []T) Segment[T] {
	return Segment[T]{array: array, count: len(array)}
}

// Array returns the underlying slice the window is taken from.
func (s Segment[T]) Array() []T { return s.array }

func (s Segment[T]) Offset() int { return s.offset }

func (s Segment[T]) Count() int { return s.count }

// Slice returns the windowed elements. The result aliases Array and has its
// capacity clipped to the window.
func (s Segment[T]) Slice() []T {
	end := s.offset + s.count
	return s.array[s.offset:end:end]
}
