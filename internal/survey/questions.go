package survey

// QuestionTally is the set of questions sharing the highest count of one code.
type QuestionTally struct {
	Code      Code
	Questions []string
	Count     int
	Percent   float64
}

// QuestionShare is one question's count of a code as a share of participants.
type QuestionShare struct {
	Question string
	Count    int
	Percent  float64
}

func (a Aggregator) countPerQuestion(t Table, target Code) []int {
	counts := make([]int, len(t.questions))
	want := NormalizeCode(string(target))
	for c := range t.questions {
		for _, row := range t.rows {
			if row[c] == "" {
				continue
			}
			if i, ok := a.profile.Lookup(row[c]); ok && a.profile.Levels[i].Code == want {
				counts[c]++
			}
		}
	}
	return counts
}

// QuestionsWithMaxCountOf returns every question tied at the highest count of
// target, sorted by numeric suffix. Percent is relative to participants.
func (a Aggregator) QuestionsWithMaxCountOf(t Table, target Code) QuestionTally {
	counts := a.countPerQuestion(t, target)
	tally := QuestionTally{Code: NormalizeCode(string(target))}
	if len(counts) == 0 {
		return tally
	}

	best := counts[0]
	for _, n := range counts[1:] {
		if n > best {
			best = n
		}
	}
	for c, n := range counts {
		if n == best {
			tally.Questions = append(tally.Questions, t.questions[c])
		}
	}
	SortQuestions(tally.Questions)
	tally.Count = best
	tally.Percent = Percent(best, t.Participants())
	return tally
}

// QuestionsWithAnyOf lists, in declaration order, every question where at
// least one participant chose target.
func (a Aggregator) QuestionsWithAnyOf(t Table, target Code) []QuestionShare {
	counts := a.countPerQuestion(t, target)
	var out []QuestionShare
	for c, n := range counts {
		if n > 0 {
			out = append(out, QuestionShare{
				Question: t.questions[c],
				Count:    n,
				Percent:  Percent(n, t.Participants()),
			})
		}
	}
	return out
}
