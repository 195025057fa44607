package service

type ScaleSummary struct {
	Code         string  `json:"code"`
	Score        float64 `json:"score"`
	Count        int     `json:"count"`
	PercentCells float64 `json:"percent_cells"`
	Share        float64 `json:"share"`
}

type ScaleRank struct {
	Code    string  `json:"code"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

type QuestionMean struct {
	Question string  `json:"question"`
	Mean     float64 `json:"mean"`
}

type CategorySummary struct {
	Bucket  string   `json:"bucket"`
	Codes   []string `json:"codes"`
	Count   int      `json:"count"`
	Percent float64  `json:"percent"`
}

type Diagnostics struct {
	TotalCells       int `json:"total_cells"`
	ParsedCells      int `json:"parsed_cells"`
	AbsentCells      int `json:"absent_cells"`
	UnparseableCells int `json:"unparseable_cells"`
}

type Summary struct {
	Profile       string            `json:"profile"`
	Participants  int               `json:"participants"`
	Questions     []string          `json:"questions"`
	Diagnostics   Diagnostics       `json:"diagnostics"`
	Scales        []ScaleSummary    `json:"scales"`
	MostFrequent  ScaleRank         `json:"most_frequent"`
	LeastFrequent ScaleRank         `json:"least_frequent"`
	AverageScore  float64           `json:"average_score"`
	Best          QuestionMean      `json:"best_question"`
	Worst         QuestionMean      `json:"worst_question"`
	Categories    []CategorySummary `json:"categories"`
	QuestionMeans []QuestionMean    `json:"question_means"`
}

// ChartRequest selects a dashboard panel, an optional question subset and an image format.
type ChartRequest struct {
	Kind      string   `json:"kind"`
	Questions []string `json:"questions,omitempty"`
	Format    string   `json:"format,omitempty"`
}

// Chart is a rendered panel.
type Chart struct {
	Kind        string `json:"kind"`
	ContentType string `json:"content_type"`
	Image       []byte `json:"image"`
	// FellBack is set when a radar request was drawn as a means bar chart.
	FellBack bool `json:"fell_back,omitempty"`
}
