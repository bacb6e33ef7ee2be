package presenter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/johnquangdev/assessment-records/internal/adapter/dto/records"
)

// WriteRecordTable renders the records table for a terminal
func WriteRecordTable(w io.Writer, list *records.RecordListResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tData\tDuração\tVídeo\tRelatório")
	for _, r := range list.Records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.RecordID, r.Date, r.Duration, r.Video, r.Report)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\n%d registros, %d aguardando\n", list.Total, list.Pending)
	return err
}

// WriteReport renders one decoded report for a terminal
func WriteReport(w io.Writer, r *records.ReportResponse) error {
	_, err := fmt.Fprintf(w,
		"Resultado da simulação\n\nFeedback\n%s\n\nCorreção\n%s\n\nTranscrição\n%s\n\nObjetos [Óculos escuros e/ou Boné]\n%s\n\nEntrevistado estava Atento?\n%s\n",
		r.Avaliacao, r.Correcao, r.Transcription, r.ObjectsDisplay, r.AttentionDisplay,
	)
	return err
}
