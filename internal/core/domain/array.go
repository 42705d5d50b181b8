package domain

import (
	"fmt"
	"image"
	"reflect"

	"github.com/cockroachdb/errors"
)

// Array is an immutable n-dimensional numeric array stored in row-major order.
// It is the image representation handed to classifiers.
type Array struct {
	shape []int
	data  []float64
}

// NewArray creates an array with the given shape. The data length must equal
// the product of the shape dimensions. Both slices are copied.
func NewArray(shape []int, data []float64) (*Array, error) {
	size := 1
	for i, dim := range shape {
		if dim < 0 {
			return nil, errors.Newf("dimension %d has negative size %d", i, dim)
		}
		size *= dim
	}
	if size != len(data) {
		return nil, errors.Newf("shape %v needs %d values, got %d", shape, size, len(data))
	}
	return &Array{
		shape: append([]int(nil), shape...),
		data:  append([]float64(nil), data...),
	}, nil
}

// Shape returns a copy of the array dimensions.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Dims returns the number of dimensions.
func (a *Array) Dims() int {
	return len(a.shape)
}

// Len returns the number of stored values.
func (a *Array) Len() int {
	return len(a.data)
}

// Data returns a copy of the values in row-major order.
func (a *Array) Data() []float64 {
	return append([]float64(nil), a.data...)
}

// At returns the value at the given index. It panics when the index does not
// match the array shape, like a slice index out of range.
func (a *Array) At(idx ...int) float64 {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("domain: index %v does not match shape %v", idx, a.shape))
	}
	offset := 0
	for i, n := range idx {
		if n < 0 || n >= a.shape[i] {
			panic(fmt.Sprintf("domain: index %v out of range for shape %v", idx, a.shape))
		}
		offset = offset*a.shape[i] + n
	}
	return a.data[offset]
}

// IsImage reports whether the array is shaped like an image: two dimensions
// (grayscale) or three dimensions with exactly three channels.
func (a *Array) IsImage() bool {
	switch len(a.shape) {
	case 2:
		return true
	case 3:
		return a.shape[2] == 3
	default:
		return false
	}
}

func (a *Array) String() string {
	return fmt.Sprintf("array(shape=%v)", a.shape)
}

// FromImage converts an image into an array. Grayscale images become
// H×W arrays, everything else H×W×3 RGB arrays, with 8-bit channel values.
func FromImage(img image.Image) *Array {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	switch img.(type) {
	case *image.Gray, *image.Gray16:
		data := make([]float64, 0, h*w)
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				r, _, _, _ := img.At(x, y).RGBA()
				data = append(data, float64(r>>8))
			}
		}
		return &Array{shape: []int{h, w}, data: data}
	}

	data := make([]float64, 0, h*w*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			data = append(data, float64(r>>8), float64(g>>8), float64(b>>8))
		}
	}
	return &Array{shape: []int{h, w, 3}, data: data}
}

// FromNested builds an array from nested slices of numbers, such as
// [][]float64 or the []interface{} trees produced by encoding/json.
// Nested slices must be rectangular.
func FromNested(v interface{}) (*Array, error) {
	var shape []int
	probe := reflect.ValueOf(v)
	for probe.IsValid() && (probe.Kind() == reflect.Slice || probe.Kind() == reflect.Array) {
		shape = append(shape, probe.Len())
		if probe.Len() == 0 {
			break
		}
		probe = unwrapInterface(probe.Index(0))
	}
	if len(shape) == 0 {
		return nil, errors.Newf("%T is not a nested slice", v)
	}

	data := make([]float64, 0)
	if err := flatten(reflect.ValueOf(v), shape, &data); err != nil {
		return nil, err
	}
	return &Array{shape: shape, data: data}, nil
}

func flatten(v reflect.Value, shape []int, out *[]float64) error {
	v = unwrapInterface(v)
	if len(shape) == 0 {
		f, ok := floatValue(v)
		if !ok {
			return errors.Newf("element of kind %s is not numeric", v.Kind())
		}
		*out = append(*out, f)
		return nil
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return errors.Newf("expected a nested slice, got %s", v.Kind())
	}
	if v.Len() != shape[0] {
		return errors.Newf("ragged nesting: expected %d elements, got %d", shape[0], v.Len())
	}
	for i := 0; i < v.Len(); i++ {
		if err := flatten(v.Index(i), shape[1:], out); err != nil {
			return err
		}
	}
	return nil
}

func unwrapInterface(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

func floatValue(v reflect.Value) (float64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}
