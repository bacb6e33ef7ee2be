package report

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/assessment-records/internal/domain/entities"
	"github.com/johnquangdev/assessment-records/internal/infrastructure/metrics"
)

// DecodeFailurePolicy decides what a report decode failure looks like to the user
type DecodeFailurePolicy string

const (
	// PolicySurface returns the decode error to the caller
	PolicySurface DecodeFailurePolicy = "surface"
	// PolicyBlank logs the failure and shows blank report fields
	PolicyBlank DecodeFailurePolicy = "blank"
)

// ParsePolicy converts a configuration value into a DecodeFailurePolicy
func ParsePolicy(s string) (DecodeFailurePolicy, error) {
	switch DecodeFailurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicySurface:
		return PolicySurface, nil
	case PolicyBlank:
		return PolicyBlank, nil
	default:
		return "", fmt.Errorf("unknown report decode policy %q", s)
	}
}

// Inspector builds ReportMetrics for a single record
type Inspector struct {
	parser  *Parser
	policy  DecodeFailurePolicy
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewInspector creates an Inspector. logger and m may be nil.
func NewInspector(parser *Parser, policy DecodeFailurePolicy, logger *zap.Logger, m *metrics.Metrics) *Inspector {
	if parser == nil {
		parser = NewParser(nil)
	}
	if policy == "" {
		policy = PolicySurface
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Inspector{parser: parser, policy: policy, logger: logger, metrics: m}
}

// Policy returns the configured decode failure policy
func (i *Inspector) Policy() DecodeFailurePolicy {
	return i.policy
}

// Inspect decodes the report of rec. A pending report is never decoded.
func (i *Inspector) Inspect(rec *entities.Record) (*entities.ReportMetrics, error) {
	if rec == nil {
		return nil, fmt.Errorf("%w: nil record", entities.ErrRecordNotFound)
	}
	if !rec.ReportReady() {
		i.metrics.ObserveDecode(entities.RecordFieldReport, metrics.OutcomeSkipped)
		return nil, fmt.Errorf("%w: record %s: %s", entities.ErrRecordPending, rec.RecordID, entities.RecordFieldReport)
	}

	fields, err := i.parser.DecodeReport(rec.Report.String())
	if err != nil {
		if i.policy != PolicyBlank {
			i.metrics.ObserveDecode(entities.RecordFieldReport, metrics.OutcomeFailure)
			return nil, fmt.Errorf("record %s: %w", rec.RecordID, err)
		}
		i.metrics.ObserveDecode(entities.RecordFieldReport, metrics.OutcomeMasked)
		i.logger.Warn("report.decode.masked",
			zap.String("record_id", rec.RecordID),
			zap.Error(err),
		)
		fields = entities.ReportFields{}
	} else {
		i.metrics.ObserveDecode(entities.RecordFieldReport, metrics.OutcomeSuccess)
	}

	objects, err := i.parser.DecodeObjects(rec.Objects)
	if err != nil {
		i.metrics.ObserveDecode("objects", metrics.OutcomeMasked)
		i.logger.Warn("report.objects.masked",
			zap.String("record_id", rec.RecordID),
			zap.Error(err),
		)
	} else {
		i.metrics.ObserveDecode("objects", metrics.OutcomeSuccess)
	}

	return &entities.ReportMetrics{
		ReportFields: fields,
		Attention:    NormalizeAttention(rec.Attention.String()),
		Objects:      objects,
	}, nil
}
