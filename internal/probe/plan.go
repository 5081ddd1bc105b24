// Package probe runs every scalar kind through the tagval construction and
// retrieval paths and reports round-trip mismatches and heap allocations.
package probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rawbytedev/tagval"
)

// DefaultIterations is used when a plan does not set iterations.
const DefaultIterations = 1000

// ErrUnknownKind is returned for a plan entry that names no scalar kind.
var ErrUnknownKind = errors.New("probe: unknown kind")

// Plan selects what a probe run exercises.
type Plan struct {
	Iterations int      `yaml:"iterations"`
	Kinds      []string `yaml:"kinds"` // empty means every scalar kind
}

// DefaultPlan probes every scalar kind DefaultIterations times.
func DefaultPlan() Plan {
	return Plan{Iterations: DefaultIterations}
}

// LoadPlan decodes a YAML plan from r. Unknown fields are rejected.
func LoadPlan(r io.Reader) (Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return Plan{}, fmt.Errorf("probe: decode plan: %w", err)
	}
	if p.Iterations < 0 {
		return Plan{}, fmt.Errorf("probe: negative iterations %d", p.Iterations)
	}
	if p.Iterations == 0 {
		p.Iterations = DefaultIterations
	}
	if _, err := p.resolve(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// LoadPlanFile reads a plan from the named file.
func LoadPlanFile(path string) (Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return Plan{}, fmt.Errorf("probe: open plan: %w", err)
	}
	defer f.Close()
	return LoadPlan(f)
}

// resolve maps the plan's kind names onto scalar kinds, in plan order.
func (p Plan) resolve() ([]tagval.Kind, error) {
	if len(p.Kinds) == 0 {
		return tagval.Kinds(), nil
	}
	kinds := make([]tagval.Kind, 0, len(p.Kinds))
	for _, name := range p.Kinds {
		k, ok := tagval.ParseKind(name)
		if !ok || !k.IsScalar() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
