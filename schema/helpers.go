package schema

// Share returns the fraction of total hours attributed to w, or 0 when the
// total is empty.
func (w AuthorWork) Share(total TotalWork) float64 {
	if total.Hours == 0 {
		return 0
	}
	return float64(w.Hours) / float64(total.Hours)
}
