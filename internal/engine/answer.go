package engine

import "sales-insight/internal/query"

// Answer is everything produced for one question.
// Text is the primary artifact; Params and Result are kept for programmatic
// consumers.
type Answer struct {
	Question string
	Params   query.Params
	Result   *query.Result
	Text     string

	// EngineID identifies the table the answer was computed against.
	EngineID string
}
