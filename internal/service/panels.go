package service

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/godilite/survey-stats/internal/chart"
	"github.com/godilite/survey-stats/internal/survey"
	"go.uber.org/zap"
)

var bucketColors = map[survey.Bucket]string{
	survey.Positive: "#2ecc71",
	survey.Neutral:  "#f1c40f",
	survey.Negative: "#e74c3c",
}

var bucketTitles = map[survey.Bucket]string{
	survey.Positive: "Positive",
	survey.Neutral:  "Neutral",
	survey.Negative: "Negative",
}

// Panel builds the data behind one dashboard chart. An empty question list
// selects every question. A radar over fewer than three questions falls back
// to the means bar chart; the second return value reports that.
func (s *ReportService) Panel(kind chart.Kind, questions []string) (chart.Panel, bool, error) {
	t := s.table
	if len(questions) > 0 {
		sub, err := t.Select(questions...)
		if err != nil {
			return chart.Panel{}, false, fmt.Errorf("%w: %w", ErrInvalidQuestion, err)
		}
		t = sub
	}

	switch kind {
	case chart.KindDistribution:
		return chart.Panel{Kind: kind, Title: "Distribution of all answers", Values: s.countValues(t)}, false, nil

	case chart.KindProportion:
		return chart.Panel{Kind: kind, Title: "Share of all answers", Values: s.countValues(t)}, false, nil

	case chart.KindStacked:
		per := s.agg.CountByQuestion(t)
		stacks := make([]chart.Stack, len(per))
		for i, qc := range per {
			stacks[i] = chart.Stack{Name: qc.Question, Values: toValues(qc.Counts)}
		}
		return chart.Panel{Kind: kind, Title: "Answers per question", Stacks: stacks}, false, nil

	case chart.KindMeans:
		return s.meansPanel(t), false, nil

	case chart.KindCategories:
		cats := s.agg.CategoryCounts(t)
		values := make([]chart.Value, len(cats))
		for i, c := range cats {
			values[i] = chart.Value{Label: bucketTitles[c.Bucket], Value: float64(c.Count), Color: bucketColors[c.Bucket]}
		}
		return chart.Panel{Kind: kind, Title: "Positive / neutral / negative answers", Values: values}, false, nil

	case chart.KindRadar:
		if len(t.Questions()) < chart.MinRadarSpokes {
			s.logger.Warn("radar needs at least three questions, drawing means bar chart instead",
				zap.Int("questions", len(t.Questions())))
			return s.meansPanel(t), true, nil
		}
		p := s.meansPanel(t)
		p.Kind = chart.KindRadar
		p.Title = "Mean score radar"
		return p, false, nil

	default:
		return chart.Panel{}, false, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}
}

func (s *ReportService) meansPanel(t survey.Table) chart.Panel {
	means := s.agg.QuestionMeans(t)
	values := make([]chart.Value, len(means))
	for i, m := range means {
		values[i] = chart.Value{Label: m.Question, Value: survey.Round(m.Mean, 2)}
	}
	return chart.Panel{
		Kind:    chart.KindMeans,
		Title:   "Mean score per question",
		Values:  values,
		AxisMax: s.agg.Profile().MaxScore(),
	}
}

func (s *ReportService) countValues(t survey.Table) []chart.Value {
	return toValues(s.agg.CountByScale(t))
}

func toValues(counts survey.ScaleCounts) []chart.Value {
	values := make([]chart.Value, len(counts))
	for i, sc := range counts {
		values[i] = chart.Value{Label: string(sc.Code), Value: float64(sc.Count)}
	}
	return values
}

// RenderChart builds and draws a dashboard panel.
func (s *ReportService) RenderChart(req ChartRequest) (Chart, error) {
	kind, err := chart.ParseKind(req.Kind)
	if err != nil {
		return Chart{}, fmt.Errorf("%w: %w", ErrUnknownChart, err)
	}
	format, err := chart.ParseFormat(req.Format)
	if err != nil {
		return Chart{}, fmt.Errorf("%w: %w", ErrUnknownChart, err)
	}

	panel, fellBack, err := s.Panel(kind, req.Questions)
	if err != nil {
		return Chart{}, err
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, panel, format); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			s.logger.Info("chart has nothing to draw", zap.String("kind", string(kind)))
		}
		return Chart{}, err
	}

	return Chart{
		Kind:        string(panel.Kind),
		ContentType: format.ContentType(),
		Image:       buf.Bytes(),
		FellBack:    fellBack,
	}, nil
}
