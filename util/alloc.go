package util

// MakeSquare allocates an n by n matrix backed by one contiguous array.
func MakeSquare(n uint) [][]float64 {
	return MakeRectangular(n, n)
}

// MakeRectangular allocates a rows by cols matrix backed by one
// contiguous array, keeping Jacobian scratch cache friendly.
func MakeRectangular(rows, cols uint) (rect [][]float64) {
	arr := make([]float64, rows*cols)
	rect = make([][]float64, rows)
	for i := range rect {
		rect[i] = arr[:cols]
		arr = arr[cols:]
	}
	return
}
