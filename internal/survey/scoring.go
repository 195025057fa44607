package survey

// QuestionScore is the mean score of one question.
type QuestionScore struct {
	Question string
	Mean     float64
}

func (a Aggregator) score(v string) (float64, bool) {
	if v == "" {
		return 0, false
	}
	i, ok := a.profile.Lookup(v)
	if !ok {
		return 0, false
	}
	return a.profile.Levels[i].Score, true
}

// AverageScore is the mean score over every recognized cell, or 0 when none parse.
func (a Aggregator) AverageScore(t Table) float64 {
	var sum float64
	var n int
	for _, row := range t.rows {
		for _, v := range row {
			if s, ok := a.score(v); ok {
				sum += s
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// QuestionMean is the mean score of one column, or 0 when it has no recognized cells.
func (a Aggregator) QuestionMean(t Table, question string) (float64, error) {
	col, err := t.Column(question)
	if err != nil {
		return 0, err
	}
	return a.mean(col), nil
}

func (a Aggregator) mean(col []string) float64 {
	var sum float64
	var n int
	for _, v := range col {
		if s, ok := a.score(v); ok {
			sum += s
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// QuestionMeans returns the mean of every question in declaration order.
func (a Aggregator) QuestionMeans(t Table) []QuestionScore {
	out := make([]QuestionScore, len(t.questions))
	for c, q := range t.questions {
		col := make([]string, len(t.rows))
		for r, row := range t.rows {
			col[r] = row[c]
		}
		out[c] = QuestionScore{Question: q, Mean: a.mean(col)}
	}
	return out
}

// BestQuestion is the question with the highest mean; earlier questions win ties.
// The zero value is returned for a table without questions.
func (a Aggregator) BestQuestion(t Table) QuestionScore {
	means := a.QuestionMeans(t)
	if len(means) == 0 {
		return QuestionScore{}
	}
	best := means[0]
	for _, m := range means[1:] {
		if m.Mean > best.Mean {
			best = m
		}
	}
	return best
}

// WorstQuestion is the question with the lowest mean; earlier questions win ties.
func (a Aggregator) WorstQuestion(t Table) QuestionScore {
	means := a.QuestionMeans(t)
	if len(means) == 0 {
		return QuestionScore{}
	}
	worst := means[0]
	for _, m := range means[1:] {
		if m.Mean < worst.Mean {
			worst = m
		}
	}
	return worst
}
