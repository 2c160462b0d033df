package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Conversly/community-api/internal/api/residents"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Creator adds one resident to a community.
type Creator interface {
	Create(ctx context.Context, communityID string, req residents.CreateResidentRequest) (types.Resident, error)
}

// RowError reports why a roster row was not imported. Row is 1-based and
// counts data rows only.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Report summarises an import. Skipped counts rows never attempted because
// the import was cancelled.
type Report struct {
	Total      int        `json:"total"`
	Created    int        `json:"created"`
	Duplicates int        `json:"duplicates"`
	Failed     int        `json:"failed"`
	Skipped    int        `json:"skipped"`
	Errors     []RowError `json:"errors,omitempty"`
}

type Importer struct {
	creator  Creator
	validate *validator.Validate
	workers  int
}

func New(creator Creator, workers int) (*Importer, error) {
	validate, err := utils.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Importer{creator: creator, validate: validate, workers: workers}, nil
}

// Import validates and creates every row. Rows that collide with an existing
// resident are counted as duplicates and do not fail the import.
func (im *Importer) Import(ctx context.Context, communityID string, rows []residents.CreateResidentRequest) Report {
	report := Report{Total: len(rows)}
	var mu sync.Mutex
	record := func(j job, err error) {
		mu.Lock()
		defer mu.Unlock()

		var apiErr *utils.APIError
		switch {
		case err == nil:
			report.Created++
		case errors.As(err, &apiErr) && apiErr.Status == 409:
			report.Duplicates++
		default:
			report.Failed++
			report.Errors = append(report.Errors, RowError{Row: j.index + 1, Message: describe(err)})
		}
	}

	sent := runPool(ctx, im.workers, rows, func(ctx context.Context, j job) {
		if err := im.validate.Struct(j.row); err != nil {
			record(j, utils.ValidationError(err))
			return
		}
		_, err := im.creator.Create(ctx, communityID, j.row)
		record(j, err)
	})
	report.Skipped = report.Total - sent

	sort.Slice(report.Errors, func(a, b int) bool { return report.Errors[a].Row < report.Errors[b].Row })
	utils.Zlog.Info("Resident import finished",
		zap.String("communityId", communityID),
		zap.Int("total", report.Total),
		zap.Int("created", report.Created),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("failed", report.Failed),
		zap.Int("skipped", report.Skipped))
	return report
}

// describe flattens validation details into the message so a report reads
// without the structured payload.
func describe(err error) string {
	var apiErr *utils.APIError
	if !errors.As(err, &apiErr) || len(apiErr.Details) == 0 {
		return err.Error()
	}
	fields := make([]string, 0, len(apiErr.Details))
	for field, tag := range apiErr.Details {
		fields = append(fields, fmt.Sprintf("%s (%v)", field, tag))
	}
	sort.Strings(fields)
	return apiErr.Message + ": " + strings.Join(fields, ", ")
}
