package survey

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioTable() Table {
	return NewTable(
		[]string{"Q1", "Q2", "Q3"},
		[][]string{
			{"SS", "S", "TS"},
			{"SS", "CS", "STS"},
		},
	)
}

func mustAggregator(t *testing.T, p Profile) Aggregator {
	t.Helper()
	a, err := NewAggregator(p)
	require.NoError(t, err)
	return a
}

// TestScenario covers the two-participant reference table.
func TestScenario(t *testing.T) {
	a := mustAggregator(t, AnswerProfile())
	tbl := scenarioTable()

	t.Run("average score", func(t *testing.T) {
		assert.InDelta(t, 4.0, a.AverageScore(tbl), 1e-9)
	})

	t.Run("most frequent scale", func(t *testing.T) {
		got := a.MostFrequentScale(tbl)
		assert.Equal(t, ScaleStat{Code: "SS", Count: 2, Percent: 33.3}, got)
	})

	t.Run("least frequent scale takes first declared zero", func(t *testing.T) {
		got := a.LeastFrequentScale(tbl)
		assert.Equal(t, ScaleStat{Code: "CTS", Count: 0, Percent: 0}, got)
	})

	t.Run("questions with any STS", func(t *testing.T) {
		got := a.QuestionsWithAnyOf(tbl, "STS")
		assert.Equal(t, []QuestionShare{{Question: "Q3", Count: 1, Percent: 50.0}}, got)
	})

	t.Run("questions with max SS", func(t *testing.T) {
		got := a.QuestionsWithMaxCountOf(tbl, "SS")
		assert.Equal(t, []string{"Q1"}, got.Questions)
		assert.Equal(t, 2, got.Count)
		assert.Equal(t, 100.0, got.Percent)
	})

	t.Run("absent code ties every question at zero", func(t *testing.T) {
		got := a.QuestionsWithMaxCountOf(tbl, "CTS")
		assert.Equal(t, []string{"Q1", "Q2", "Q3"}, got.Questions)
		assert.Equal(t, 0, got.Count)
		assert.Equal(t, 0.0, got.Percent)
	})

	t.Run("best and worst question", func(t *testing.T) {
		assert.Equal(t, QuestionScore{Question: "Q1", Mean: 6}, a.BestQuestion(tbl))
		assert.Equal(t, QuestionScore{Question: "Q3", Mean: 1.5}, a.WorstQuestion(tbl))
	})

	t.Run("question mean", func(t *testing.T) {
		m, err := a.QuestionMean(tbl, "Q2")
		require.NoError(t, err)
		assert.InDelta(t, 4.5, m, 1e-9)

		_, err = a.QuestionMean(tbl, "Q9")
		assert.ErrorIs(t, err, ErrUnknownQuestion)
	})

	t.Run("category counts", func(t *testing.T) {
		got := a.CategoryCounts(tbl)
		assert.Equal(t, []CategoryCount{
			{Bucket: Positive, Count: 3, Percent: 50.0},
			{Bucket: Neutral, Count: 1, Percent: 16.7},
			{Bucket: Negative, Count: 2, Percent: 33.3},
		}, got)
	})
}

// TestDashboardProfile checks the variant scoring and CS-positive rollup.
func TestDashboardProfile(t *testing.T) {
	a := mustAggregator(t, DashboardProfile())
	tbl := scenarioTable()

	assert.InDelta(t, 3.5, a.AverageScore(tbl), 1e-9)
	assert.Equal(t, []CategoryCount{
		{Bucket: Positive, Count: 4, Percent: 66.7},
		{Bucket: Neutral, Count: 0, Percent: 0},
		{Bucket: Negative, Count: 2, Percent: 33.3},
	}, a.CategoryCounts(tbl))
}

// TestTieBreaks checks deterministic ordering of ranking queries.
func TestTieBreaks(t *testing.T) {
	a := mustAggregator(t, AnswerProfile())

	t.Run("max count questions sorted by numeric suffix", func(t *testing.T) {
		tbl := NewTable([]string{"Q10", "Q2", "Q1"}, [][]string{{"S", "S", "S"}})
		got := a.QuestionsWithMaxCountOf(tbl, "S")
		assert.Equal(t, []string{"Q1", "Q2", "Q10"}, got.Questions)
	})

	t.Run("first declared scale wins most frequent tie", func(t *testing.T) {
		tbl := NewTable([]string{"Q1", "Q2"}, [][]string{{"TS", "S"}})
		assert.Equal(t, Code("S"), a.MostFrequentScale(tbl).Code)
	})

	t.Run("earlier question wins best and worst ties", func(t *testing.T) {
		tbl := NewTable([]string{"Q1", "Q2", "Q3"}, [][]string{{"S", "SS", "SS"}, {"S", "STS", "STS"}})
		assert.Equal(t, "Q1", a.BestQuestion(tbl).Question)
		assert.Equal(t, "Q2", a.WorstQuestion(tbl).Question)
	})
}

// TestNoisyCells checks absent and out-of-vocabulary values are excluded, never errors.
func TestNoisyCells(t *testing.T) {
	a := mustAggregator(t, AnswerProfile())
	tbl := NewTable(
		[]string{"Q1", "Q2"},
		[][]string{
			{" ss ", "nan"},
			{"maybe", ""},
			{"sts"},
		},
	)

	d := a.Diagnose(tbl)
	assert.Equal(t, Diagnostics{TotalCells: 6, ParsedCells: 2, AbsentCells: 3, UnparseableCells: 1}, d)
	assert.Equal(t, 4, d.Excluded())

	counts := a.CountByScale(tbl)
	assert.Equal(t, 1, counts.Get("SS"))
	assert.Equal(t, 1, counts.Get("STS"))
	assert.Equal(t, 2, counts.Total())

	m, err := a.QuestionMean(tbl, "Q2")
	require.NoError(t, err)
	assert.Equal(t, 0.0, m)

	assert.Equal(t, 16.7, a.MostFrequentScale(tbl).Percent)
}

// TestEmptyTable checks zero-cell inputs produce zeros.
func TestEmptyTable(t *testing.T) {
	a := mustAggregator(t, AnswerProfile())
	tbl := NewTable([]string{"Q1"}, nil)

	assert.Equal(t, 0.0, a.AverageScore(tbl))
	assert.Equal(t, ScaleStat{Code: "SS"}, a.MostFrequentScale(tbl))
	assert.Empty(t, a.QuestionsWithAnyOf(tbl, "SS"))
	assert.Equal(t, QuestionScore{}, a.BestQuestion(NewTable(nil, nil)))
}

func randomTable(rng *rand.Rand, p Profile, rows, cols int) Table {
	qs := make([]string, cols)
	for c := range qs {
		qs[c] = "Q" + string(rune('A'+c))
	}
	vocab := append(p.Codes(), "", "??")
	data := make([][]string, rows)
	for r := range data {
		data[r] = make([]string, cols)
		for c := range data[r] {
			data[r][c] = string(vocab[rng.Intn(len(vocab))])
		}
	}
	return NewTable(qs, data)
}

// TestProperties checks the aggregate invariants over random tables.
func TestProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, p := range []Profile{AnswerProfile(), DashboardProfile()} {
		a := mustAggregator(t, p)
		t.Run(p.Name, func(t *testing.T) {
			for i := 0; i < 50; i++ {
				tbl := randomTable(rng, p, 1+rng.Intn(12), 1+rng.Intn(6))
				counts := a.CountByScale(tbl)
				d := a.Diagnose(tbl)

				require.LessOrEqual(t, counts.Total(), tbl.TotalCells())
				require.Equal(t, d.ParsedCells, counts.Total())
				require.Equal(t, d.Excluded() == 0, counts.Total() == tbl.TotalCells())

				most, least := a.MostFrequentScale(tbl), a.LeastFrequentScale(tbl)
				for _, sc := range counts {
					require.GreaterOrEqual(t, most.Count, sc.Count)
					require.LessOrEqual(t, least.Count, sc.Count)
				}

				for _, code := range p.Codes() {
					if counts.Get(code) > 0 {
						require.NotEmpty(t, a.QuestionsWithMaxCountOf(tbl, code).Questions)
					}
				}

				cats := a.CategoryCounts(tbl)
				var sum int
				for _, c := range cats {
					sum += c.Count
				}
				require.Equal(t, counts.Total(), sum)
				require.True(t, a.ConsistentRollup(counts, cats))
			}
		})
	}
}

// TestAverageScoreOrderInvariance permutes rows and columns.
func TestAverageScoreOrderInvariance(t *testing.T) {
	a := mustAggregator(t, AnswerProfile())
	rng := rand.New(rand.NewSource(11))
	tbl := randomTable(rng, a.Profile(), 9, 5)

	qs := tbl.Questions()
	rng.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
	shuffled, err := tbl.Select(qs...)
	require.NoError(t, err)

	rows := make([][]string, shuffled.Participants())
	for r := range rows {
		for _, q := range qs {
			v, _ := shuffled.Cell(r, q)
			rows[r] = append(rows[r], v)
		}
	}
	rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })

	assert.InDelta(t, a.AverageScore(tbl), a.AverageScore(NewTable(qs, rows)), 1e-9)
}

// TestRollupRoundTrip feeds category counts back through the consistency check per profile.
func TestRollupRoundTrip(t *testing.T) {
	tbl := scenarioTable()
	for _, p := range []Profile{AnswerProfile(), DashboardProfile()} {
		t.Run(p.Name, func(t *testing.T) {
			a := mustAggregator(t, p)
			counts := a.CountByScale(tbl)
			cats := a.CategoryCounts(tbl)
			assert.True(t, a.ConsistentRollup(counts, cats))

			part := a.Partition()
			var members int
			for _, b := range Buckets {
				members += len(part[b])
			}
			assert.Equal(t, len(p.Levels), members)
		})
	}

	answer := mustAggregator(t, AnswerProfile())
	dashboard := mustAggregator(t, DashboardProfile())
	assert.False(t, answer.ConsistentRollup(dashboard.CountByScale(tbl), dashboard.CategoryCounts(tbl)))
}

// TestPercentRounding tests that exact ties round to even at one decimal
func TestPercentRounding(t *testing.T) {
	cases := []struct {
		count, denom int
		want         float64
	}{
		{1, 16, 6.2},
		{5, 16, 31.2},
		{3, 16, 18.8},
		{1, 6, 16.7},
		{2, 6, 33.3},
		{1, 8, 12.5},
		{3, 0, 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Percent(tc.count, tc.denom), "%d/%d", tc.count, tc.denom)
	}
	assert.Equal(t, 4.94, Round(4.940298507, 2))
}
