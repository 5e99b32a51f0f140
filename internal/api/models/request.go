package models

// AskRequest is the body of POST /api/v1/ask and POST /api/v1/parse
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// RankRequest holds the query string of GET /api/v1/rank
type RankRequest struct {
	Metric    string `form:"metric"`                       // Sales (default) or Profit
	Dimension string `form:"dimension" binding:"required"` // Region, State, Category, Product
	N         int    `form:"n"`                            // default: 10
	Year      int    `form:"year"`                         // optional calendar year
	State     string `form:"state"`                        // full name or abbreviation
	Category  string `form:"category"`
}
