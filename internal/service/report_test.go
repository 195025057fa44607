package service

import (
	"testing"

	"github.com/godilite/survey-stats/internal/chart"
	"github.com/godilite/survey-stats/internal/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func scenarioTable() survey.Table {
	return survey.NewTable(
		[]string{"Q1", "Q2", "Q3"},
		[][]string{
			{"SS", "S", "TS"},
			{"SS", "CS", "STS"},
		},
	)
}

func newService(t testing.TB, p survey.Profile) *ReportService {
	t.Helper()
	agg, err := survey.NewAggregator(p)
	require.NoError(t, err)
	return NewReportService(scenarioTable(), agg, zap.NewNop())
}

// TestNewReportService tests the constructor
func TestNewReportService(t *testing.T) {
	agg, err := survey.NewAggregator(survey.AnswerProfile())
	require.NoError(t, err)

	t.Run("valid parameters", func(t *testing.T) {
		svc := NewReportService(scenarioTable(), agg, zap.NewNop())
		assert.NotNil(t, svc)
		assert.NotEmpty(t, svc.Fingerprint())
	})

	t.Run("table without questions panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewReportService(survey.NewTable(nil, nil), agg, zap.NewNop())
		})
	})

	t.Run("zero aggregator panics", func(t *testing.T) {
		assert.Panics(t, func() {
			NewReportService(scenarioTable(), survey.Aggregator{}, zap.NewNop())
		})
	})

	t.Run("nil logger gets default", func(t *testing.T) {
		svc := NewReportService(scenarioTable(), agg, nil)
		assert.NotNil(t, svc.logger)
	})

	t.Run("fingerprint depends on profile", func(t *testing.T) {
		a := newService(t, survey.AnswerProfile())
		d := newService(t, survey.DashboardProfile())
		assert.NotEqual(t, a.Fingerprint(), d.Fingerprint())
	})
}

// TestAnswer tests every canned query under both profiles
func TestAnswer(t *testing.T) {
	cases := []struct {
		profile survey.Profile
		query   string
		want    string
	}{
		{survey.AnswerProfile(), "q1", "SS|2|33.3"},
		{survey.AnswerProfile(), "q2", "CTS|0|0.0"},
		{survey.AnswerProfile(), "q3", "Q1|2|100.0"},
		{survey.AnswerProfile(), "q4", "Q2|1|50.0"},
		{survey.AnswerProfile(), "q5", "Q2|1|50.0"},
		{survey.AnswerProfile(), "q6", "Q1,Q2,Q3|0|0.0"},
		{survey.AnswerProfile(), "q7", "Q3|1|50.0"},
		{survey.AnswerProfile(), "q8", "Q3|1|50.0"},
		{survey.AnswerProfile(), "q9", "Q3:50.0"},
		{survey.AnswerProfile(), "q10", "4.00"},
		{survey.AnswerProfile(), "q11", "Q1:6.00"},
		{survey.AnswerProfile(), "q12", "Q3:1.50"},
		{survey.AnswerProfile(), "q13", "positif=3:50.0|netral=1:16.7|negatif=2:33.3"},
		{survey.AnswerProfile(), " q1 ", "SS|2|33.3"},
		{survey.AnswerProfile(), "Q1", ""},
		{survey.AnswerProfile(), "q14", ""},
		{survey.AnswerProfile(), "", ""},
		{survey.DashboardProfile(), "q2", "N|0|0.0"},
		{survey.DashboardProfile(), "q6", "Q1,Q2,Q3|0|0.0"},
		{survey.DashboardProfile(), "q10", "3.50"},
		{survey.DashboardProfile(), "q11", "Q1:5.00"},
		{survey.DashboardProfile(), "q13", "positif=4:66.7|netral=0:0.0|negatif=2:33.3"},
	}

	for _, tc := range cases {
		t.Run(tc.profile.Name+"/"+tc.query, func(t *testing.T) {
			svc := newService(t, tc.profile)
			assert.Equal(t, tc.want, svc.Answer(tc.query))
		})
	}
}

// TestAnswerPercentRounding tests percentages on a participant count that
// produces exact halves
func TestAnswerPercentRounding(t *testing.T) {
	rows := make([][]string, 16)
	for i := range rows {
		rows[i] = []string{"S", "S", "S"}
	}
	rows[0][0] = "STS"

	agg, err := survey.NewAggregator(survey.AnswerProfile())
	require.NoError(t, err)
	svc := NewReportService(survey.NewTable([]string{"Q1", "Q2", "Q3"}, rows), agg, zap.NewNop())

	assert.Equal(t, "Q1:6.2", svc.Answer("q9"))
}

func TestQueries(t *testing.T) {
	qs := Queries()
	require.Len(t, qs, 13)
	assert.Equal(t, "q1", qs[0].Name)
	assert.Equal(t, "q13", qs[12].Name)
}

// TestSummary tests the aggregate bundle
func TestSummary(t *testing.T) {
	svc := newService(t, survey.AnswerProfile())
	sum := svc.Summary()

	assert.Equal(t, "answer", sum.Profile)
	assert.Equal(t, 2, sum.Participants)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, sum.Questions)
	assert.Equal(t, Diagnostics{TotalCells: 6, ParsedCells: 6}, sum.Diagnostics)
	assert.Equal(t, ScaleRank{Code: "SS", Count: 2, Percent: 33.3}, sum.MostFrequent)
	assert.Equal(t, 4.0, sum.AverageScore)
	assert.Equal(t, QuestionMean{Question: "Q1", Mean: 6}, sum.Best)
	assert.Equal(t, QuestionMean{Question: "Q3", Mean: 1.5}, sum.Worst)

	require.Len(t, sum.Scales, 6)
	assert.Equal(t, ScaleSummary{Code: "SS", Score: 6, Count: 2, PercentCells: 33.3, Share: 33.3}, sum.Scales[0])

	require.Len(t, sum.Categories, 3)
	assert.Equal(t, CategorySummary{Bucket: "neutral", Codes: []string{"CS"}, Count: 1, Percent: 16.7}, sum.Categories[1])

	require.Len(t, sum.QuestionMeans, 3)
	assert.Equal(t, 4.5, sum.QuestionMeans[1].Mean)
}

// TestPanel tests dashboard panel data
func TestPanel(t *testing.T) {
	svc := newService(t, survey.DashboardProfile())

	t.Run("distribution follows profile order", func(t *testing.T) {
		p, fellBack, err := svc.Panel(chart.KindDistribution, nil)
		require.NoError(t, err)
		assert.False(t, fellBack)
		require.Len(t, p.Values, 6)
		assert.Equal(t, chart.Value{Label: "SS", Value: 2}, p.Values[0])
		assert.Equal(t, chart.Value{Label: "N", Value: 0}, p.Values[3])
	})

	t.Run("stacked over a subset", func(t *testing.T) {
		p, _, err := svc.Panel(chart.KindStacked, []string{"Q3", "Q1"})
		require.NoError(t, err)
		require.Len(t, p.Stacks, 2)
		assert.Equal(t, "Q3", p.Stacks[0].Name)
		assert.Equal(t, 1.0, p.Stacks[0].Values[5].Value)
	})

	t.Run("means use profile max as axis", func(t *testing.T) {
		p, _, err := svc.Panel(chart.KindMeans, nil)
		require.NoError(t, err)
		assert.Equal(t, 5.0, p.AxisMax)
		assert.Equal(t, chart.Value{Label: "Q3", Value: 1.5}, p.Values[2])
	})

	t.Run("categories carry colors", func(t *testing.T) {
		p, _, err := svc.Panel(chart.KindCategories, nil)
		require.NoError(t, err)
		assert.Equal(t, chart.Value{Label: "Positive", Value: 4, Color: "#2ecc71"}, p.Values[0])
	})

	t.Run("radar falls back under three questions", func(t *testing.T) {
		p, fellBack, err := svc.Panel(chart.KindRadar, []string{"Q1", "Q2"})
		require.NoError(t, err)
		assert.True(t, fellBack)
		assert.Equal(t, chart.KindMeans, p.Kind)

		p, fellBack, err = svc.Panel(chart.KindRadar, nil)
		require.NoError(t, err)
		assert.False(t, fellBack)
		assert.Equal(t, chart.KindRadar, p.Kind)
	})

	t.Run("unknown question", func(t *testing.T) {
		_, _, err := svc.Panel(chart.KindMeans, []string{"Q9"})
		assert.ErrorIs(t, err, ErrInvalidQuestion)
		assert.ErrorIs(t, err, survey.ErrUnknownQuestion)
	})
}

// TestRenderChart tests end-to-end chart rendering
func TestRenderChart(t *testing.T) {
	svc := newService(t, survey.AnswerProfile())

	t.Run("png", func(t *testing.T) {
		c, err := svc.RenderChart(ChartRequest{Kind: "categories"})
		require.NoError(t, err)
		assert.Equal(t, "image/png", c.ContentType)
		assert.NotEmpty(t, c.Image)
	})

	t.Run("radar fallback is reported", func(t *testing.T) {
		c, err := svc.RenderChart(ChartRequest{Kind: "radar", Questions: []string{"Q1"}, Format: "svg"})
		require.NoError(t, err)
		assert.True(t, c.FellBack)
		assert.Equal(t, "means", c.Kind)
		assert.Equal(t, "image/svg+xml", c.ContentType)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.RenderChart(ChartRequest{Kind: "heatmap"})
		assert.ErrorIs(t, err, ErrUnknownChart)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := svc.RenderChart(ChartRequest{Kind: "means", Format: "gif"})
		assert.ErrorIs(t, err, ErrUnknownChart)
	})
}
