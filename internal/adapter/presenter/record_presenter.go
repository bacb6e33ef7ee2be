package presenter

import (
	"strings"

	"github.com/johnquangdev/assessment-records/internal/adapter/dto/records"
	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

// Display strings shown to interviewees
const (
	PendingMarker   = "aguardando"
	ReadyMarker     = "disponível"
	AttentionYes    = "Sim"
	AttentionNo     = "Não"
	NoObjectsMarker = "Nenhum objeto detectado"
)

// ToRecordResponse converts a Record entity to RecordResponse DTO
func ToRecordResponse(r *entities.Record) records.RecordResponse {
	return records.RecordResponse{
		RecordID:    r.RecordID,
		Date:        orPending(r.Date),
		Duration:    orPending(r.Duration),
		Video:       readiness(r.VideoReady()),
		Report:      readiness(r.ReportReady()),
		VideoReady:  r.VideoReady(),
		ReportReady: r.ReportReady(),
	}
}

// ToRecordListResponse converts a slice of Record entities, keeping source order
func ToRecordListResponse(recs []entities.Record) *records.RecordListResponse {
	resp := &records.RecordListResponse{
		Records: make([]records.RecordResponse, len(recs)),
		Total:   len(recs),
	}
	for i := range recs {
		resp.Records[i] = ToRecordResponse(&recs[i])
		if recs[i].HasPending() {
			resp.Pending++
		}
	}
	return resp
}

// ToReportResponse converts decoded report metrics to ReportResponse DTO
func ToReportResponse(recordID string, m *entities.ReportMetrics) *records.ReportResponse {
	objects := m.Objects
	if objects == nil {
		objects = []string{}
	}
	return &records.ReportResponse{
		RecordID:         recordID,
		Avaliacao:        m.Avaliacao,
		Correcao:         m.Correcao,
		Transcription:    m.Transcription,
		Attention:        m.Attention,
		AttentionDisplay: AttentionString(m.Attention),
		Objects:          objects,
		ObjectsDisplay:   ObjectsString(objects),
	}
}

// ToVideoResponse wraps a resolved link
func ToVideoResponse(recordID, url string) *records.VideoResponse {
	return &records.VideoResponse{RecordID: recordID, URL: url}
}

// AttentionString renders the attention flag
func AttentionString(attention bool) string {
	if attention {
		return AttentionYes
	}
	return AttentionNo
}

// ObjectsString renders detected objects as a comma-separated list
func ObjectsString(objects []string) string {
	if len(objects) == 0 {
		return NoObjectsMarker
	}
	return strings.Join(objects, ", ")
}

func orPending(s entities.LooseString) string {
	if s.IsPending() {
		return PendingMarker
	}
	return s.String()
}

func readiness(ready bool) string {
	if ready {
		return ReadyMarker
	}
	return PendingMarker
}
