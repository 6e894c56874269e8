package projection

// Portions scales each total to its share of the sum. Totals are expected to be
// non-negative; a negative total counts as zero so every share stays in [0,1].
// An all-zero input returns all zeros rather than dividing by zero.
func Portions(totals []float64) []float64 {
	shares := make([]float64, len(totals))

	sum := 0.0
	for _, v := range totals {
		sum += max(v, 0)
	}
	if sum == 0 {
		return shares
	}

	for i, v := range totals {
		shares[i] = max(v, 0) / sum
	}
	return shares
}
