package ode

// Mapper tracks the offset and width of the primary block (index 0) and
// each secondary block (index 1..n) inside a single concatenated state
// vector of total width D. Secondaries are numbered in registration order
// starting at 1. A Mapper is append-only for the lifetime of its
// [ExpandableODE]: AddSecondary never removes or reorders an existing
// block.
type Mapper struct {
	primaryDim  int
	secondary   []int // width of each secondary block, in registration order
	offsets     []int // offsets[0] = 0 (primary); offsets[k] = offset of secondary k
	totalDim    int
}

// NewMapper constructs a mapper for a primary block of width primaryDim.
func NewMapper(primaryDim int) *Mapper {
	return &Mapper{
		primaryDim: primaryDim,
		offsets:    []int{0},
		totalDim:   primaryDim,
	}
}

// AddSecondary registers a new secondary block of the given width,
// returning its 1-based index.
func (m *Mapper) AddSecondary(dim int) int {
	m.secondary = append(m.secondary, dim)
	m.offsets = append(m.offsets, m.totalDim)
	m.totalDim += dim
	return len(m.secondary)
}

// NumberOfEquations returns 1 (primary) plus the number of registered
// secondary equations.
func (m *Mapper) NumberOfEquations() int { return 1 + len(m.secondary) }

// TotalDimension returns D, the width of the concatenated state vector.
func (m *Mapper) TotalDimension() int { return m.totalDim }

// dim returns the width of block index (0 = primary, >=1 = secondary).
func (m *Mapper) dim(index int) (int, error) {
	if index < 0 || index > len(m.secondary) {
		return 0, ErrOutOfRange
	}
	if index == 0 {
		return m.primaryDim, nil
	}
	return m.secondary[index-1], nil
}

// Extract returns a copy of the block at index (0 = primary, >=1 =
// secondary) from complete.
func (m *Mapper) Extract(index int, complete []float64) ([]float64, error) {
	if len(complete) != m.totalDim {
		return nil, ErrDimensionMismatch
	}
	d, err := m.dim(index)
	if err != nil {
		return nil, err
	}
	off := m.offsets[index]
	block := make([]float64, d)
	copy(block, complete[off:off+d])
	return block, nil
}

// Insert writes block into complete at index's offset.
func (m *Mapper) Insert(index int, block []float64, complete []float64) error {
	if len(complete) != m.totalDim {
		return ErrDimensionMismatch
	}
	d, err := m.dim(index)
	if err != nil {
		return err
	}
	if len(block) != d {
		return ErrDimensionMismatch
	}
	off := m.offsets[index]
	copy(complete[off:off+d], block)
	return nil
}

// ExtractS is the [Scalar]-generic counterpart of Extract, used directly
// by the generic engine types.
func ExtractS[S Scalar[S]](m *Mapper, index int, complete []S) ([]S, error) {
	if len(complete) != m.totalDim {
		return nil, ErrDimensionMismatch
	}
	d, err := m.dim(index)
	if err != nil {
		return nil, err
	}
	off := m.offsets[index]
	block := make([]S, d)
	copy(block, complete[off:off+d])
	return block, nil
}

// InsertS is the [Scalar]-generic counterpart of Insert.
func InsertS[S Scalar[S]](m *Mapper, index int, block []S, complete []S) error {
	if len(complete) != m.totalDim {
		return ErrDimensionMismatch
	}
	d, err := m.dim(index)
	if err != nil {
		return err
	}
	if len(block) != d {
		return ErrDimensionMismatch
	}
	off := m.offsets[index]
	copy(complete[off:off+d], block)
	return nil
}

// MapStateAndDerivative constructs a [StateAndDerivative] from t, y and ẏ,
// failing if either has the wrong length.
func MapStateAndDerivative[S Scalar[S]](m *Mapper, t S, y, yd []S) (StateAndDerivative[S], error) {
	if len(y) != m.totalDim || len(yd) != m.totalDim {
		return StateAndDerivative[S]{}, ErrDimensionMismatch
	}
	return StateAndDerivative[S]{T: t, Y: cloneSlice(y), Yd: cloneSlice(yd)}, nil
}
