package records

// RecordResponse is one row of the records table. Fields the analysis
// pipeline has not produced yet carry the pending marker.
type RecordResponse struct {
	RecordID    string `json:"record_id"`
	Date        string `json:"date"`
	Duration    string `json:"duration"`
	Video       string `json:"video"`
	Report      string `json:"report"`
	VideoReady  bool   `json:"video_ready"`
	ReportReady bool   `json:"report_ready"`
}

// RecordListResponse is the records table
type RecordListResponse struct {
	Records []RecordResponse `json:"records"`
	Total   int              `json:"total"`
	Pending int              `json:"pending"`
}

// ReportResponse is the decoded report of one record
type ReportResponse struct {
	RecordID         string   `json:"record_id"`
	Avaliacao        string   `json:"avaliacao"`
	Correcao         string   `json:"correcao"`
	Transcription    string   `json:"transcription"`
	Attention        bool     `json:"attention"`
	AttentionDisplay string   `json:"attention_display"`
	Objects          []string `json:"objects"`
	ObjectsDisplay   string   `json:"objects_display"`
}

// VideoResponse carries a time-limited playable link
type VideoResponse struct {
	RecordID string `json:"record_id"`
	URL      string `json:"url"`
}
