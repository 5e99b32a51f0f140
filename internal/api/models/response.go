package models

import "time"

// AskResponse represents the answer to one question
type AskResponse struct {
	ID       string         `json:"id"`
	Question string         `json:"question"`
	Answer   string         `json:"answer"`
	Params   ParamsResponse `json:"params"`
	Rows     []ResultRow    `json:"rows"`
	EngineID string         `json:"engine_id"`
	Cached   bool           `json:"cached"`
}

// ParamsResponse is the structured form of a question
type ParamsResponse struct {
	Metric     string            `json:"metric"`
	TimeWindow *TimeWindow       `json:"time_window,omitempty"`
	GroupDim   string            `json:"group_dim,omitempty"`
	TopN       *TopN             `json:"topn,omitempty"`
	Filters    map[string]string `json:"filters"`
}

// TimeWindow is an inclusive date range (YYYY-MM-DD)
type TimeWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// TopN describes a ranking request
type TopN struct {
	N         int    `json:"n"`
	Dimension string `json:"dimension"`
}

// ResultRow is one line of a result table
type ResultRow struct {
	Key       string  `json:"key,omitempty"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// RankResponse represents the response from GET /api/v1/rank
type RankResponse struct {
	Answer   string         `json:"answer"`
	Params   ParamsResponse `json:"params"`
	Rankings []Ranking      `json:"rankings"`
	EngineID string         `json:"engine_id"`
}

// Ranking represents one ranked group
type Ranking struct {
	Rank      int     `json:"rank"`
	Key       string  `json:"key"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

// DatasetResponse describes the dataset currently being served
type DatasetResponse struct {
	EngineID    string         `json:"engine_id"`
	Source      string         `json:"source"`
	LoadedAt    time.Time      `json:"loaded_at"`
	AnchorDate  string         `json:"anchor_date"`
	Rows        int            `json:"rows"`
	Columns     []string       `json:"columns"`
	FirstDate   string         `json:"first_date,omitempty"`
	LastDate    string         `json:"last_date,omitempty"`
	Undated     int            `json:"undated_rows"`
	TotalSales  float64        `json:"total_sales"`
	TotalProfit float64        `json:"total_profit"`
	Years       []YearTotal    `json:"years"`
	Distinct    map[string]int `json:"distinct"`
}

// YearTotal is Sales and Profit for one calendar year
type YearTotal struct {
	Year   int     `json:"year"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Rows   int     `json:"rows"`
}

// VocabularyResponse lists what the question parser understands
type VocabularyResponse struct {
	Metrics    []string     `json:"metrics"`
	Dimensions []string     `json:"dimensions"`
	Phrases    []PhraseInfo `json:"phrases"`
	Examples   []string     `json:"examples"`
}

// PhraseInfo describes one recognised phrase
type PhraseInfo struct {
	Text    string `json:"text"`
	Selects string `json:"selects"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
