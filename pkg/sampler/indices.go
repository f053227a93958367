package sampler

// UniformIndices returns the n frame indices spread evenly over [0, total):
// floor(i * total / n) for i in [0, n). The first index is always 0 and the
// last is always below total.
func UniformIndices(n, total int) ([]int, error) {
	if n <= 0 {
		return nil, &InvalidParameterError{Param: "n", Requested: n}
	}
	if total <= 0 {
		return nil, ErrFrameCountUnavailable
	}
	if n > total {
		return nil, &InvalidParameterError{Param: "n", Requested: n, Available: total}
	}

	// Integer math gives the exact floor of the real quotient; float64 can
	// land just below an integer boundary for large counts.
	indices := make([]int, n)
	for i := range indices {
		indices[i] = int(int64(i) * int64(total) / int64(n))
	}
	return indices, nil
}
