package service

import (
	"errors"

	"github.com/godilite/survey-stats/internal/survey"
	"go.uber.org/zap"
)

var (
	ErrUnknownChart    = errors.New("unknown chart")
	ErrInvalidQuestion = errors.New("invalid question selection")
)

// ReportService answers canned queries and builds dashboard data over one
// immutable survey table. It holds no mutable state and is safe for concurrent use.
type ReportService struct {
	table  survey.Table
	agg    survey.Aggregator
	logger *zap.Logger
}

// NewReportService creates a new ReportService instance.
func NewReportService(table survey.Table, agg survey.Aggregator, logger *zap.Logger) *ReportService {
	if len(table.Questions()) == 0 {
		panic("table must have at least one question")
	}
	if len(agg.Profile().Levels) == 0 {
		panic("aggregator must be built with NewAggregator")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}

	s := &ReportService{
		table:  table,
		agg:    agg,
		logger: logger.Named("report"),
	}

	d := agg.Diagnose(table)
	s.logger.Info("survey dataset ready",
		zap.String("profile", agg.Profile().Name),
		zap.Int("participants", table.Participants()),
		zap.Int("questions", len(table.Questions())),
		zap.Int("parsed_cells", d.ParsedCells),
		zap.Int("absent_cells", d.AbsentCells),
		zap.Int("unparseable_cells", d.UnparseableCells))
	if d.ParsedCells == 0 {
		s.logger.Warn("no cell matches the profile's scale codes; check the answer format")
	}

	return s
}

// Fingerprint identifies the dataset and profile, for cache keys.
func (s *ReportService) Fingerprint() string {
	return s.agg.Profile().Name + ":" + s.table.Fingerprint()
}

// Summary gathers every aggregate over the full table.
func (s *ReportService) Summary() Summary {
	t := s.table
	p := s.agg.Profile()

	counts := s.agg.CountByScale(t)
	parsed := counts.Total()
	scales := make([]ScaleSummary, len(counts))
	for i, sc := range counts {
		scales[i] = ScaleSummary{
			Code:         string(sc.Code),
			Score:        p.Levels[i].Score,
			Count:        sc.Count,
			PercentCells: survey.Percent(sc.Count, t.TotalCells()),
			Share:        survey.Percent(sc.Count, parsed),
		}
	}

	cats := s.agg.Rollup(counts, t.TotalCells())
	categories := make([]CategorySummary, len(cats))
	for i, c := range cats {
		codes := []string{}
		for _, code := range p.Members(c.Bucket) {
			codes = append(codes, string(code))
		}
		categories[i] = CategorySummary{Bucket: string(c.Bucket), Codes: codes, Count: c.Count, Percent: c.Percent}
	}

	d := s.agg.Diagnose(t)
	return Summary{
		Profile:      p.Name,
		Participants: t.Participants(),
		Questions:    t.Questions(),
		Diagnostics: Diagnostics{
			TotalCells:       d.TotalCells,
			ParsedCells:      d.ParsedCells,
			AbsentCells:      d.AbsentCells,
			UnparseableCells: d.UnparseableCells,
		},
		Scales:        scales,
		MostFrequent:  rank(s.agg.MostFrequentScale(t)),
		LeastFrequent: rank(s.agg.LeastFrequentScale(t)),
		AverageScore:  survey.Round(s.agg.AverageScore(t), 2),
		Best:          questionMean(s.agg.BestQuestion(t)),
		Worst:         questionMean(s.agg.WorstQuestion(t)),
		Categories:    categories,
		QuestionMeans: s.questionMeans(t),
	}
}

func (s *ReportService) questionMeans(t survey.Table) []QuestionMean {
	means := s.agg.QuestionMeans(t)
	out := make([]QuestionMean, len(means))
	for i, m := range means {
		out[i] = questionMean(m)
	}
	return out
}

func rank(st survey.ScaleStat) ScaleRank {
	return ScaleRank{Code: string(st.Code), Count: st.Count, Percent: st.Percent}
}

func questionMean(q survey.QuestionScore) QuestionMean {
	return QuestionMean{Question: q.Question, Mean: survey.Round(q.Mean, 2)}
}
