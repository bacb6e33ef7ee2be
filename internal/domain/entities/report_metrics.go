package entities

// ReportFields is the part of a report decoded from the report payload itself
type ReportFields struct {
	Avaliacao     string `json:"avaliacao"`
	Correcao      string `json:"correcao"`
	Transcription string `json:"transcription"`
}

// ReportMetrics is the normalized view of one record's report.
// It is built per inspection and never persisted.
type ReportMetrics struct {
	ReportFields
	Attention bool     `json:"attention"`
	Objects   []string `json:"objects"`
}
