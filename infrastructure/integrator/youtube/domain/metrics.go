package youtubedomain

// ReportResponse é a resposta da Analytics API. As métricas vêm em rows
// posicionais, indexadas pelos columnHeaders.
type ReportResponse struct {
	ColumnHeaders []ColumnHeader  `json:"columnHeaders"`
	Rows          [][]interface{} `json:"rows"`
}

type ColumnHeader struct {
	Name       string `json:"name"`
	ColumnType string `json:"columnType"`
	DataType   string `json:"dataType"`
}

// MetricIndex mapeia o nome de cada métrica para a posição dela nas rows.
func (r *ReportResponse) MetricIndex() map[string]int {
	index := make(map[string]int, len(r.ColumnHeaders))
	for i, header := range r.ColumnHeaders {
		index[header.Name] = i
	}

	return index
}

// Float lê uma célula numérica de uma row. A API retorna números como
// float64 no JSON independente do dataType declarado.
func Float(row []interface{}, idx int) float64 {
	if idx < 0 || idx >= len(row) {
		return 0
	}

	value, ok := row[idx].(float64)
	if !ok {
		return 0
	}

	return value
}
