package affect

// Weighted pairs a vector with its blend weight.
type Weighted struct {
	Vector Vector
	Weight float64
}

// Blend returns the weighted mean of the given vectors. Entries with a
// non-positive weight are ignored; if none remain, Blend returns Neutral.
func Blend(items []Weighted) Vector {
	var sum [NumDimensions]float64
	var total float64
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		a := it.Vector.array()
		for i := range a {
			sum[i] += a[i] * it.Weight
		}
		total += it.Weight
	}
	if total == 0 {
		return Neutral()
	}
	for i := range sum {
		sum[i] = clampField(i, sum[i]/total)
	}
	return fromArray(sum)
}
