package handlers

import (
	"sales-insight/internal/api/models"
	"sales-insight/internal/query"
)

func toParamsResponse(p query.Params) models.ParamsResponse {
	out := models.ParamsResponse{
		Metric:   string(p.Metric),
		GroupDim: string(p.GroupBy),
		Filters:  make(map[string]string, len(p.Filters)),
	}
	if p.TimeWindow != nil {
		out.TimeWindow = &models.TimeWindow{
			Start: p.TimeWindow.Start.Format(query.DateLayout),
			End:   p.TimeWindow.End.Format(query.DateLayout),
		}
	}
	if p.TopN != nil {
		out.TopN = &models.TopN{N: p.TopN.N, Dimension: string(p.TopN.Dimension)}
	}
	for col, v := range p.Filters {
		out.Filters[string(col)] = v
	}
	return out
}

func toResultRows(res *query.Result, symbol string) []models.ResultRow {
	rows := make([]models.ResultRow, 0, len(res.Rows))
	for _, r := range res.Rows {
		rows = append(rows, models.ResultRow{
			Key:       r.Key,
			Value:     r.Value.InexactFloat64(),
			Formatted: query.FormatCurrency(r.Value, symbol),
		})
	}
	return rows
}

func errorResponse(code, message string) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}
