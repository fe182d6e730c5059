// Package quick is a property testing helper running functions over random
// slices of many sizes, including the block boundaries of the encodings.
package quick

import (
	"fmt"
	"math/rand"
	"reflect"
)

// Sizes is the list of input sizes that Check exercises.
var Sizes = [...]int{
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9,
	10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
	20, 21, 22, 23, 24, 25, 26, 27, 28, 29,
	30, 31, 32, 33, 34, 35, 36, 37, 38, 39,
	63, 64, 65,
	99, 100, 101,
	127, 128, 129,
	255, 256, 257,
	503, 504, 505,
	1000, 1023, 1024, 1025,
	2000, 2095, 2048, 2049,
	4000, 4095, 4096, 4097,
}

// Check is inspired by the standard quick.Check package, but enhances the
// API and tests arrays of larger sizes than the maximum of 50 hardcoded in
// testing/quick.
//
// f must be a function returning a bool and accepting either a single slice
// of values, or a slice of values followed by a []bool of the same length
// reporting which of the values are present. Validity masks alternate between
// all-present, all-absent, and random patterns with varying densities of
// nulls.
func Check(f any) error {
	v := reflect.ValueOf(f)
	t := v.Type()
	r := rand.New(rand.NewSource(0))

	if t.Kind() != reflect.Func || t.NumOut() != 1 || t.Out(0).Kind() != reflect.Bool {
		panic("cannot run quick check on " + t.String())
	}

	withValidity := false
	switch t.NumIn() {
	case 1:
	case 2:
		if t.In(1) != reflect.TypeOf([]bool(nil)) {
			panic("second argument of quick check function must be []bool, found " + t.In(1).String())
		}
		withValidity = true
	default:
		panic("cannot run quick check on function with " + fmt.Sprint(t.NumIn()) + " arguments")
	}

	makeArray := arrayMaker(r, t.In(0))
	if makeArray == nil {
		panic("cannot run quick check on function with input of type " + t.In(0).String())
	}

	for _, n := range Sizes {
		for i := 0; i < 3; i++ {
			args := []reflect.Value{reflect.ValueOf(makeArray(n))}
			if withValidity {
				args = append(args, reflect.ValueOf(makeValidity(r, n, i)))
			}
			if ok := v.Call(args); !ok[0].Bool() {
				return fmt.Errorf("test #%d: failed on input of size %d", i+1, n)
			}
		}
	}
	return nil
}

func arrayMaker(r *rand.Rand, t reflect.Type) func(int) any {
	if t.Kind() != reflect.Slice {
		return nil
	}

	switch t.Elem().Kind() {
	case reflect.Bool:
		return func(n int) any {
			v := make([]bool, n)
			for i := range v {
				v[i] = r.Int()%2 != 0
			}
			return v
		}

	case reflect.Int32:
		return func(n int) any {
			v := make([]int32, n)
			for i := range v {
				v[i] = r.Int31() - r.Int31()
			}
			return v
		}

	case reflect.Int64:
		return func(n int) any {
			v := make([]int64, n)
			for i := range v {
				v[i] = r.Int63() - r.Int63()
			}
			return v
		}

	case reflect.Uint32:
		return func(n int) any {
			v := make([]uint32, n)
			for i := range v {
				v[i] = r.Uint32()
			}
			return v
		}

	case reflect.Uint64:
		return func(n int) any {
			v := make([]uint64, n)
			for i := range v {
				v[i] = r.Uint64()
			}
			return v
		}

	case reflect.Float32:
		return func(n int) any {
			v := make([]float32, n)
			for i := range v {
				v[i] = r.Float32()
			}
			return v
		}

	case reflect.Float64:
		return func(n int) any {
			v := make([]float64, n)
			for i := range v {
				v[i] = r.NormFloat64()
			}
			return v
		}

	case reflect.Uint8:
		return func(n int) any {
			v := make([]byte, n)
			r.Read(v)
			return v
		}
	}

	return nil
}

// The attempt number selects the shape of the mask so each size is checked
// without nulls, with nulls only, and with a random mix.
func makeValidity(r *rand.Rand, n, attempt int) []bool {
	valid := make([]bool, n)
	switch attempt {
	case 0:
		for i := range valid {
			valid[i] = true
		}
	case 1:
		// all nulls
	default:
		// Long stretches of equal bits produce RLE runs, short ones produce
		// bit-packed groups.
		density := r.Intn(4) + 1
		for i := 0; i < n; {
			present := r.Intn(density+1) != 0
			run := 1 + r.Intn(20)
			for j := 0; j < run && i < n; j++ {
				valid[i] = present
				i++
			}
		}
	}
	return valid
}
