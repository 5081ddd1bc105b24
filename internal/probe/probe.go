package probe

import (
	"context"
	"math"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/tagval"
)

// Result is the outcome of probing one kind.
type Result struct {
	Kind       tagval.Kind
	Iterations int
	Allocs     uint64 // heap allocations observed across all iterations
	Mismatches int    // iterations where a retrieval disagreed with the input
}

// OK reports whether the kind round-tripped without allocating.
func (r Result) OK() bool {
	return r.Allocs == 0 && r.Mismatches == 0
}

// probeFunc runs n iterations and returns the number of mismatches.
type probeFunc func(n int) int

var cases = map[tagval.Kind]probeFunc{
	tagval.KindBool:       scalarCase(true),
	tagval.KindInt8:       scalarCase(int8(math.MinInt8)),
	tagval.KindInt16:      scalarCase(int16(math.MaxInt16)),
	tagval.KindInt32:      scalarCase(int32(math.MinInt32)),
	tagval.KindInt64:      scalarCase(int64(math.MaxInt64)),
	tagval.KindInt:        scalarCase(-1),
	tagval.KindUint8:      scalarCase(uint8(math.MaxUint8)),
	tagval.KindUint16:     scalarCase(uint16(0xBEEF)),
	tagval.KindUint32:     scalarCase(uint32(math.MaxUint32)),
	tagval.KindUint64:     scalarCase(uint64(math.MaxUint64)),
	tagval.KindUint:       scalarCase(uint(42)),
	tagval.KindUintptr:    scalarCase(^uintptr(0)),
	tagval.KindChar:       scalarCase(tagval.Char(0xD83D)),
	tagval.KindFloat32:    scalarCase(float32(math.NaN())),
	tagval.KindFloat64:    scalarCase(math.Copysign(0, -1)),
	tagval.KindDecimal:    scalarCase(tagval.NewDecimal(-1999, 2)),
	tagval.KindTime:       scalarCase(time.Date(2001, time.September, 9, 1, 46, 40, 5, time.FixedZone("probe", -7*3600))),
	tagval.KindOffsetTime: scalarCase(tagval.NewOffsetTime(1_000_000_000, 5, 90*time.Minute)),
}

// scalarCase exercises Of, Get, TryGet on the nullable form and OfAny on a
// pre-boxed copy of sample. Results are compared as Values so that floats
// compare by bit pattern and times by instant and location.
func scalarCase[T tagval.Scalar](sample T) probeFunc {
	boxed := any(sample)
	return func(n int) int {
		var mismatches int
		for i := 0; i < n; i++ {
			v := tagval.Of(sample)
			got, err := tagval.Get[T](v)
			if err != nil || tagval.Of(got) != v {
				mismatches++
				continue
			}
			nv, ok := tagval.TryGet[tagval.Nullable[T]](v)
			if !ok || !nv.Valid || tagval.OfNullable(nv) != v {
				mismatches++
				continue
			}
			if tagval.OfAny(boxed) != v {
				mismatches++
			}
		}
		return mismatches
	}
}

// Run probes every kind the plan selects. It checks ctx between kinds.
func Run(ctx context.Context, plan Plan, log logrus.FieldLogger) ([]Result, error) {
	kinds, err := plan.resolve()
	if err != nil {
		return nil, err
	}
	n := plan.Iterations
	if n <= 0 {
		n = DefaultIterations
	}

	results := make([]Result, 0, len(kinds))
	for _, k := range kinds {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		fn := cases[k]
		fn(1) // warm the type caches

		var before, after runtime.MemStats
		runtime.ReadMemStats(&before)
		mismatches := fn(n)
		runtime.ReadMemStats(&after)

		r := Result{
			Kind:       k,
			Iterations: n,
			Allocs:     after.Mallocs - before.Mallocs,
			Mismatches: mismatches,
		}
		log.WithFields(logrus.Fields{
			"kind":       k,
			"iterations": n,
			"allocs":     r.Allocs,
			"mismatches": r.Mismatches,
		}).Debug("probed")
		results = append(results, r)
	}
	return results, nil
}
