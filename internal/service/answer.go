package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/godilite/survey-stats/internal/survey"
	"go.uber.org/zap"
)

// Query is one canned report of the answer interface.
type Query struct {
	Name        string
	Description string
	run         func(a survey.Aggregator, t survey.Table) string
}

var queries = []Query{
	{Name: "q1", Description: "most chosen scale overall", run: mostFrequent},
	{Name: "q2", Description: "least chosen scale overall", run: leastFrequent},
	{Name: "q3", Description: "questions with the most answers of scale 1", run: maxCountOfLevel(0)},
	{Name: "q4", Description: "questions with the most answers of scale 2", run: maxCountOfLevel(1)},
	{Name: "q5", Description: "questions with the most answers of scale 3", run: maxCountOfLevel(2)},
	{Name: "q6", Description: "questions with the most answers of scale 4", run: maxCountOfLevel(3)},
	{Name: "q7", Description: "questions with the most answers of scale 5", run: maxCountOfLevel(4)},
	{Name: "q8", Description: "questions with the most answers of scale 6", run: maxCountOfLevel(5)},
	{Name: "q9", Description: "questions where anyone chose the lowest scale", run: anyOfLowest},
	{Name: "q10", Description: "average score over all answers", run: averageScore},
	{Name: "q11", Description: "question with the highest mean score", run: bestQuestion},
	{Name: "q12", Description: "question with the lowest mean score", run: worstQuestion},
	{Name: "q13", Description: "positive / neutral / negative answer counts", run: categories},
}

// Queries lists the canned reports in order.
func Queries() []Query {
	return append([]Query(nil), queries...)
}

// Answer runs a canned report and returns its single output line.
// Names match exactly after trimming; anything else produces an empty string.
func (s *ReportService) Answer(query string) string {
	name := strings.TrimSpace(query)
	for _, q := range queries {
		if q.Name == name {
			return q.run(s.agg, s.table)
		}
	}
	s.logger.Debug("unrecognized query", zap.String("query", query))
	return ""
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func score(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func mostFrequent(a survey.Aggregator, t survey.Table) string {
	st := a.MostFrequentScale(t)
	return fmt.Sprintf("%s|%d|%s", st.Code, st.Count, pct(st.Percent))
}

func leastFrequent(a survey.Aggregator, t survey.Table) string {
	st := a.LeastFrequentScale(t)
	return fmt.Sprintf("%s|%d|%s", st.Code, st.Count, pct(st.Percent))
}

func maxCountOfLevel(i int) func(a survey.Aggregator, t survey.Table) string {
	return func(a survey.Aggregator, t survey.Table) string {
		code := a.LevelAt(i)
		if code == "" {
			return ""
		}
		tally := a.QuestionsWithMaxCountOf(t, code)
		return fmt.Sprintf("%s|%d|%s", strings.Join(tally.Questions, ","), tally.Count, pct(tally.Percent))
	}
}

func anyOfLowest(a survey.Aggregator, t survey.Table) string {
	code := a.LevelAt(len(a.Profile().Levels) - 1)
	shares := a.QuestionsWithAnyOf(t, code)
	parts := make([]string, len(shares))
	for i, sh := range shares {
		parts[i] = sh.Question + ":" + pct(sh.Percent)
	}
	return strings.Join(parts, "|")
}

func averageScore(a survey.Aggregator, t survey.Table) string {
	return score(a.AverageScore(t))
}

func bestQuestion(a survey.Aggregator, t survey.Table) string {
	q := a.BestQuestion(t)
	return q.Question + ":" + score(q.Mean)
}

func worstQuestion(a survey.Aggregator, t survey.Table) string {
	q := a.WorstQuestion(t)
	return q.Question + ":" + score(q.Mean)
}

var bucketLabels = map[survey.Bucket]string{
	survey.Positive: "positif",
	survey.Neutral:  "netral",
	survey.Negative: "negatif",
}

func categories(a survey.Aggregator, t survey.Table) string {
	cats := a.CategoryCounts(t)
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = fmt.Sprintf("%s=%d:%s", bucketLabels[c.Bucket], c.Count, pct(c.Percent))
	}
	return strings.Join(parts, "|")
}
