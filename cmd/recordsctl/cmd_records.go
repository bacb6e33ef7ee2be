package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/assessment-records/internal/adapter/presenter"
	"github.com/johnquangdev/assessment-records/internal/domain/entities"
)

var recordID string

// listCmd prints the records table
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List records for a user",
	RunE:  runList,
}

// refreshCmd refetches from the backend and prints the table
var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refetch records from the backend",
	RunE:  runRefresh,
}

// reportCmd prints one decoded report
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the decoded report of a record",
	RunE:  runReport,
}

// videoCmd prints a playable link
var videoCmd = &cobra.Command{
	Use:   "video",
	Short: "Resolve a time-limited video link for a record",
	RunE:  runVideo,
}

// watchCmd keeps refreshing until nothing is pending
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Refresh until every video and report is ready",
	Long: `Refresh the user's records on an exponential schedule and print the
table after each refresh. Stops once no record is waiting on the analysis
pipeline, on Ctrl-C, or when WATCH_MAX_ELAPSED passes.`,
	RunE: runWatch,
}

func runList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	recs, err := app.Service.List(ctx, email)
	if err != nil {
		return describe(err)
	}
	return printRecords(cmd, recs)
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	recs, err := app.Service.Refresh(ctx, email)
	if err != nil {
		return describe(err)
	}
	return printRecords(cmd, recs)
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	_, m, err := app.Service.Report(ctx, email, recordID)
	if err != nil {
		return describe(err)
	}

	resp := presenter.ToReportResponse(recordID, m)
	if asJSON {
		return printJSON(cmd, resp)
	}
	return presenter.WriteReport(cmd.OutOrStdout(), resp)
}

func runVideo(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	link, err := app.Service.VideoURL(ctx, email, recordID)
	if err != nil {
		return describe(err)
	}

	if asJSON {
		return printJSON(cmd, presenter.ToVideoResponse(recordID, link))
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), link)
	return err
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var printErr error
	err := app.Watcher.Watch(ctx, email, func(recs []entities.Record) {
		if printErr == nil {
			printErr = printRecords(cmd, recs)
		}
	})
	if printErr != nil {
		return printErr
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return describe(err)
}

func printRecords(cmd *cobra.Command, recs []entities.Record) error {
	list := presenter.ToRecordListResponse(recs)
	if asJSON {
		return printJSON(cmd, list)
	}
	return presenter.WriteRecordTable(cmd.OutOrStdout(), list)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// describe turns domain errors into messages for the terminal
func describe(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entities.ErrMissingIdentity):
		return fmt.Errorf("no user identity: pass --email or set RECORDS_EMAIL")
	case errors.Is(err, entities.ErrRecordNotFound):
		return fmt.Errorf("record %q not found", recordID)
	case errors.Is(err, entities.ErrRecordPending):
		return fmt.Errorf("record %q is %s", recordID, presenter.PendingMarker)
	case errors.Is(err, entities.ErrDecode):
		return fmt.Errorf("report of record %q could not be decoded: %w", recordID, err)
	default:
		return err
	}
}
