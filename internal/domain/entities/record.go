package entities

import "encoding/json"

// Record is one assessment session as returned by the records backend.
// Fields left at the empty-string sentinel have not been produced yet.
type Record struct {
	RecordID  string       `json:"record_id"`
	Email     string       `json:"email,omitempty"`
	Date      LooseString  `json:"date"`
	Duration  LooseString  `json:"duration"`
	Video     LooseString  `json:"video"`
	Report    LooseString  `json:"report"`
	Objects   ObjectsField `json:"objects"`
	Attention LooseString  `json:"attention"`
}

// Record field names, as used in pending markers and error details
const (
	RecordFieldDate     = "date"
	RecordFieldDuration = "duration"
	RecordFieldVideo    = "video"
	RecordFieldReport   = "report"
)

// UnmarshalJSON accepts both record_id and recordId
func (r *Record) UnmarshalJSON(data []byte) error {
	type plain Record
	aux := struct {
		*plain
		RecordIDAlt *LooseString `json:"recordId"`
		RecordIDRaw *LooseString `json:"record_id"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	switch {
	case aux.RecordIDRaw != nil && *aux.RecordIDRaw != "":
		r.RecordID = aux.RecordIDRaw.String()
	case aux.RecordIDAlt != nil:
		r.RecordID = aux.RecordIDAlt.String()
	default:
		r.RecordID = ""
	}
	return nil
}

// ReportReady reports whether the report payload has been produced
func (r *Record) ReportReady() bool {
	return !r.Report.IsPending()
}

// VideoReady reports whether a video key is available
func (r *Record) VideoReady() bool {
	return !r.Video.IsPending()
}

// HasPending reports whether the analysis pipeline still owes this record
// its video or report
func (r *Record) HasPending() bool {
	return !r.VideoReady() || !r.ReportReady()
}

// RecordsEnvelope is the body shape of GET records
type RecordsEnvelope struct {
	Results *[]Record `json:"results"`
}
