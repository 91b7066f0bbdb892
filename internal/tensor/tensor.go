// Package tensor implements the minimal float32 tensor used by the Ember
// loss library.
//
// Loss functions only need flat float32 buffers with shape metadata, so
// this package deliberately has no device backends, dtype dispatch, or
// broadcasting. Data is stored row-major.
package tensor

import "fmt"

// Tensor is a dense float32 tensor with row-major layout.
type Tensor struct {
	data  []float32
	shape Shape
}

// New creates a zero-filled tensor with the given shape.
func New(shape Shape) *Tensor {
	return &Tensor{
		data:  make([]float32, shape.NumElements()),
		shape: shape.Clone(),
	}
}

// FromSlice creates a tensor wrapping a copy of data.
//
// Returns an error if the data length does not match the shape.
func FromSlice(data []float32, shape Shape) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	buf := make([]float32, len(data))
	copy(buf, data)
	return &Tensor{data: buf, shape: shape.Clone()}, nil
}

// Full creates a tensor with every element set to value.
func Full(shape Shape, value float32) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Data returns the underlying buffer. Mutations are visible to the tensor.
func (t *Tensor) Data() []float32 {
	return t.data
}

// NumElements returns the total element count.
func (t *Tensor) NumElements() int {
	return len(t.data)
}

// At returns the element at flat index i.
func (t *Tensor) At(i int) float32 {
	return t.data[i]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	buf := make([]float32, len(t.data))
	copy(buf, t.data)
	return &Tensor{data: buf, shape: t.shape.Clone()}
}
