package survey

// CategoryCount is a rollup bucket with its count and share of all cells.
type CategoryCount struct {
	Bucket  Bucket
	Count   int
	Percent float64
}

// CategoryCounts sums CountByScale through the profile's rollup, reported in
// Positive, Neutral, Negative order. Percent is relative to every cell of the table.
func (a Aggregator) CategoryCounts(t Table) []CategoryCount {
	return a.Rollup(a.CountByScale(t), t.TotalCells())
}

// Rollup folds precomputed scale counts into buckets.
func (a Aggregator) Rollup(counts ScaleCounts, denom int) []CategoryCount {
	sums := make(map[Bucket]int, len(Buckets))
	for _, sc := range counts {
		if b, ok := a.profile.Rollup[sc.Code]; ok {
			sums[b] += sc.Count
		}
	}
	out := make([]CategoryCount, len(Buckets))
	for i, b := range Buckets {
		out[i] = CategoryCount{Bucket: b, Count: sums[b], Percent: Percent(sums[b], denom)}
	}
	return out
}

// Partition recovers the bucket membership implied by a profile's rollup,
// listing codes in declaration order.
func (a Aggregator) Partition() map[Bucket][]Code {
	out := make(map[Bucket][]Code, len(Buckets))
	for _, b := range Buckets {
		out[b] = a.profile.Members(b)
	}
	return out
}

// ConsistentRollup reports whether cats is exactly the rollup of counts under
// the aggregator's profile.
func (a Aggregator) ConsistentRollup(counts ScaleCounts, cats []CategoryCount) bool {
	if len(cats) != len(Buckets) {
		return false
	}
	part := a.Partition()
	for i, b := range Buckets {
		if cats[i].Bucket != b {
			return false
		}
		var sum int
		for _, c := range part[b] {
			sum += counts.Get(c)
		}
		if sum != cats[i].Count {
			return false
		}
	}
	return true
}
