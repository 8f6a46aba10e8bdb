package tensor

// Zeros creates a tensor filled with zeros.
func Zeros(shape Shape) *Tensor {
	return New(shape)
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape) *Tensor {
	return Full(shape, 1)
}

// Full creates a tensor filled with a specific value.
func Full(shape Shape, value float64) *Tensor {
	t := New(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Scalar creates a one-element tensor holding value.
func Scalar(value float64) *Tensor {
	t := New(Shape{1})
	t.data[0] = value
	return t
}

// OnesLike creates a ones tensor with the same shape as t.
func OnesLike(t *Tensor) *Tensor {
	return Full(t.shape, 1)
}

// ZerosLike creates a zeros tensor with the same shape as t.
func ZerosLike(t *Tensor) *Tensor {
	return New(t.shape)
}
