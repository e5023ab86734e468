package fixture

import (
	"context"
	"fmt"

	"go.viam.com/descartes/trellis"
)

// Container is a trellis.SamplesContainer that recomputes a slot's
// SampleGroup on first access instead of requiring every slot to be
// populated up front, a memory-constrained alternative to DenseContainer.
// Set still works normally for callers (such as GraphSolver.Build) that
// compute samples eagerly; Has/At fall back to the backing Sampler only
// for slots nothing has Set yet.
type Container struct {
	ctx      context.Context
	samplers []trellis.PointSampler
	stored   []*trellis.SampleGroup
}

// NewContainer wraps samplers for lazy, on-demand sample generation.
// ctx is used for every Generate call At triggers.
func NewContainer(ctx context.Context, samplers []trellis.PointSampler) *Container {
	return &Container{ctx: ctx, samplers: samplers}
}

// Allocate implements trellis.SamplesContainer.
func (c *Container) Allocate(n int) {
	c.stored = make([]*trellis.SampleGroup, n)
}

// Clear implements trellis.SamplesContainer.
func (c *Container) Clear() {
	for i := range c.stored {
		c.stored[i] = nil
	}
}

// Has implements trellis.SamplesContainer. It reports true even for slots
// not yet generated, as long as a backing sampler exists for them, since
// At will succeed by generating on demand.
func (c *Container) Has(i int) bool {
	if i < 0 || i >= len(c.stored) {
		return false
	}
	return c.stored[i] != nil || (i < len(c.samplers) && c.samplers[i] != nil)
}

// Size implements trellis.SamplesContainer.
func (c *Container) Size() int {
	return len(c.stored)
}

// At implements trellis.SamplesContainer, generating and caching the slot's
// SampleGroup on first access if it was never explicitly Set.
func (c *Container) At(i int) (trellis.SampleGroup, error) {
	if i < 0 || i >= len(c.stored) {
		return trellis.SampleGroup{}, fmt.Errorf("fixture: index %d out of range [0, %d)", i, len(c.stored))
	}
	if c.stored[i] != nil {
		return *c.stored[i], nil
	}
	if i >= len(c.samplers) || c.samplers[i] == nil {
		return trellis.SampleGroup{}, fmt.Errorf("fixture: no sample group and no sampler for index %d", i)
	}
	sg, err := c.samplers[i].Generate(c.ctx)
	if err != nil {
		return trellis.SampleGroup{}, fmt.Errorf("fixture: generating on demand for index %d: %w", i, err)
	}
	sg.PointID = i
	c.stored[i] = &sg
	return sg, nil
}

// Set implements trellis.SamplesContainer.
func (c *Container) Set(i int, g trellis.SampleGroup) error {
	if i < 0 || i >= len(c.stored) {
		return fmt.Errorf("fixture: index %d out of range [0, %d)", i, len(c.stored))
	}
	c.stored[i] = &g
	return nil
}
