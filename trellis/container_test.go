package trellis

import (
	"testing"

	"go.viam.com/test"
)

func TestDenseContainer(t *testing.T) {
	c := NewDenseContainer()
	c.Allocate(3)
	test.That(t, c.Size(), test.ShouldEqual, 3)
	test.That(t, c.Has(0), test.ShouldBeFalse)

	sg, err := NewSampleGroup(0, [][]float64{{1, 2}, {3, 4}})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, c.Set(0, sg), test.ShouldBeNil)
	test.That(t, c.Has(0), test.ShouldBeTrue)
	test.That(t, c.Has(1), test.ShouldBeFalse)

	got, err := c.At(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.NumSamples, test.ShouldEqual, 2)
	test.That(t, got.NumDOFs, test.ShouldEqual, 2)

	_, err = c.At(1)
	test.That(t, err, test.ShouldNotBeNil)

	c.Clear()
	test.That(t, c.Has(0), test.ShouldBeFalse)
	test.That(t, c.Size(), test.ShouldEqual, 3)
}

func TestDenseContainerOutOfRange(t *testing.T) {
	c := NewDenseContainer()
	c.Allocate(1)

	sg, err := NewSampleGroup(0, [][]float64{{0}})
	test.That(t, err, test.ShouldBeNil)

	test.That(t, c.Set(5, sg), test.ShouldNotBeNil)
	test.That(t, c.Has(-1), test.ShouldBeFalse)
	test.That(t, c.Has(5), test.ShouldBeFalse)
}
