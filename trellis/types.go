package trellis

import "fmt"

// VirtualPointID is the point_id carried by the virtual source vertex.
const VirtualPointID = -1

// PointData is a single joint-space configuration: one IK candidate.
type PointData struct {
	// PointID identifies the waypoint this configuration belongs to, or
	// VirtualPointID for the synthetic source.
	PointID int
	// Values holds one value per degree of freedom, in joint order.
	Values []float64
}

// DOFs returns the number of degrees of freedom this configuration carries.
func (p PointData) DOFs() int {
	return len(p.Values)
}

// SampleGroup is the complete set of IK candidates produced for one
// waypoint. Values is row-major: sample i's DOFs occupy
// Values[i*NumDOFs : (i+1)*NumDOFs].
type SampleGroup struct {
	PointID    int
	NumSamples int
	NumDOFs    int
	Values     []float64
}

// NewSampleGroup builds a SampleGroup from a slice of per-sample DOF
// vectors, validating that every sample shares the same DOF count.
func NewSampleGroup(pointID int, samples [][]float64) (SampleGroup, error) {
	if len(samples) == 0 {
		return SampleGroup{}, fmt.Errorf("%w: waypoint %d: no samples given", ErrInvalidSamples, pointID)
	}
	numDOFs := len(samples[0])
	values := make([]float64, 0, len(samples)*numDOFs)
	for i, s := range samples {
		if len(s) != numDOFs {
			return SampleGroup{}, fmt.Errorf(
				"%w: waypoint %d: sample %d has %d dofs, expected %d",
				ErrInvalidSamples, pointID, i, len(s), numDOFs)
		}
		values = append(values, s...)
	}
	return SampleGroup{
		PointID:    pointID,
		NumSamples: len(samples),
		NumDOFs:    numDOFs,
		Values:     values,
	}, nil
}

// At returns the PointData for the sample at the given index.
func (sg SampleGroup) At(sampleIndex int) PointData {
	start := sampleIndex * sg.NumDOFs
	end := start + sg.NumDOFs
	values := make([]float64, sg.NumDOFs)
	copy(values, sg.Values[start:end])
	return PointData{PointID: sg.PointID, Values: values}
}

// single returns a one-sample SampleGroup wrapping the chosen sample,
// the shape GraphSolver.solve returns per waypoint.
func (sg SampleGroup) single(sampleIndex int) SampleGroup {
	pd := sg.At(sampleIndex)
	return SampleGroup{
		PointID:    sg.PointID,
		NumSamples: 1,
		NumDOFs:    sg.NumDOFs,
		Values:     pd.Values,
	}
}

// Validate checks a SampleGroup's invariants: a positive sample count and
// a Values slice of exactly NumSamples*NumDOFs entries.
func (sg SampleGroup) Validate() error {
	if sg.NumSamples < 1 {
		return fmt.Errorf("%w: waypoint %d: num_samples must be >= 1, got %d", ErrInvalidSamples, sg.PointID, sg.NumSamples)
	}
	if len(sg.Values) != sg.NumSamples*sg.NumDOFs {
		return fmt.Errorf(
			"%w: waypoint %d: values length %d does not match num_samples*num_dofs (%d*%d)",
			ErrInvalidSamples, sg.PointID, len(sg.Values), sg.NumSamples, sg.NumDOFs)
	}
	return nil
}

// VertexProperties identifies which (waypoint, sample) a trellis vertex
// stands for. PointID == VirtualPointID marks the synthetic source.
type VertexProperties struct {
	PointID     int
	SampleIndex int
}

func (v VertexProperties) isVirtual() bool {
	return v.PointID == VirtualPointID
}

// EdgeProperties is one scored transition between two adjacent-layer
// samples, as produced by an EdgeEvaluator.
type EdgeProperties struct {
	SrcVtx VertexProperties
	DstVtx VertexProperties
	Weight float64
	Valid  bool
}
