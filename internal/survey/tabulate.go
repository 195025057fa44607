package survey

// CountByScale counts every recognized cell of every question column.
func (a Aggregator) CountByScale(t Table) ScaleCounts {
	out := a.emptyCounts()
	for _, row := range t.rows {
		for _, v := range row {
			if v == "" {
				continue
			}
			if i, ok := a.profile.Lookup(v); ok {
				out[i].Count++
			}
		}
	}
	return out
}

// QuestionCounts is the per-question breakdown of CountByScale.
type QuestionCounts struct {
	Question string
	Counts   ScaleCounts
}

// CountByQuestion returns one ScaleCounts per question in declaration order.
func (a Aggregator) CountByQuestion(t Table) []QuestionCounts {
	out := make([]QuestionCounts, len(t.questions))
	for c, q := range t.questions {
		counts := a.emptyCounts()
		for _, row := range t.rows {
			if i, ok := a.profile.Lookup(row[c]); ok {
				counts[i].Count++
			}
		}
		out[c] = QuestionCounts{Question: q, Counts: counts}
	}
	return out
}

// MostFrequentScale is the argmax of CountByScale; the first declared code wins ties.
// Percent is relative to every cell of the table.
func (a Aggregator) MostFrequentScale(t Table) ScaleStat {
	counts := a.CountByScale(t)
	best := counts[0]
	for _, sc := range counts[1:] {
		if sc.Count > best.Count {
			best = sc
		}
	}
	return ScaleStat{Code: best.Code, Count: best.Count, Percent: Percent(best.Count, t.TotalCells())}
}

// LeastFrequentScale is the argmin of CountByScale; the first declared code wins ties.
func (a Aggregator) LeastFrequentScale(t Table) ScaleStat {
	counts := a.CountByScale(t)
	least := counts[0]
	for _, sc := range counts[1:] {
		if sc.Count < least.Count {
			least = sc
		}
	}
	return ScaleStat{Code: least.Code, Count: least.Count, Percent: Percent(least.Count, t.TotalCells())}
}

// Proportions expresses CountByScale as percentages of recognized cells.
func (a Aggregator) Proportions(t Table) []ScaleStat {
	counts := a.CountByScale(t)
	total := counts.Total()
	out := make([]ScaleStat, len(counts))
	for i, sc := range counts {
		out[i] = ScaleStat{Code: sc.Code, Count: sc.Count, Percent: Percent(sc.Count, total)}
	}
	return out
}
