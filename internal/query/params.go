package query

import (
	"encoding/json"
	"time"

	"sales-insight/internal/model"
)

// DateLayout is how window bounds are rendered in answers and JSON.
const DateLayout = "2006-01-02"

// TimeWindow restricts rows by order date. Both bounds are inclusive.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the calendar date of t lies within the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func (w TimeWindow) String() string {
	return w.Start.Format(DateLayout) + " → " + w.End.Format(DateLayout)
}

func (w TimeWindow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start string `json:"start"`
		End   string `json:"end"`
	}{w.Start.Format(DateLayout), w.End.Format(DateLayout)})
}

// TopN asks for the N highest-summed groups of a dimension.
type TopN struct {
	N         int             `json:"n"`
	Dimension model.Dimension `json:"dimension"`
}

// Filters are equality constraints on categorical columns, matched
// case-insensitively.
type Filters map[model.Column]string

// Params is the structured form of one question.
//
// When both TopN and GroupBy are set, TopN wins in execution and formatting.
type Params struct {
	Metric     model.Metric    `json:"metric"`
	TimeWindow *TimeWindow     `json:"time_window,omitempty"`
	GroupBy    model.Dimension `json:"group_dim,omitempty"`
	TopN       *TopN           `json:"topn,omitempty"`
	Filters    Filters         `json:"filters"`
}

// Dimension returns the dimension the result is grouped by, honouring TopN
// precedence. ok is false for scalar questions.
func (p Params) Dimension() (model.Dimension, bool) {
	if p.TopN != nil {
		return p.TopN.Dimension, true
	}
	if p.GroupBy != "" {
		return p.GroupBy, true
	}
	return "", false
}
