// Package harvest drives batch collection: fetch the edition for every date
// in a range, segment each one, and assemble the dated edition list plus a
// run report. A date without a published edition is normal operation, not a
// failure, and by default yields placeholder rows so per-kind row counts
// match the number of dates processed.
package harvest

import (
	"context"
	"time"

	"github.com/coolbeans/gazeta/pkg/gazette"
	"github.com/coolbeans/gazeta/pkg/logger"
	"github.com/coolbeans/gazeta/pkg/segment"
)

// EditionSource fetches the text of one daily edition. The boolean reports
// whether an edition was published for the date.
type EditionSource interface {
	FetchEdition(ctx context.Context, date time.Time) (string, bool, error)
}

// Harvester runs the fetch-and-segment pipeline over a date range.
type Harvester struct {
	source EditionSource
	engine *segment.Engine

	// Placeholders controls whether dates without an edition produce
	// placeholder records. Enabled by default.
	Placeholders bool
}

// New creates a harvester with placeholder rows enabled.
func New(source EditionSource, engine *segment.Engine) *Harvester {
	return &Harvester{
		source:       source,
		engine:       engine,
		Placeholders: true,
	}
}

// Run processes every date from first to last inclusive, in order, and
// returns the dated editions plus the run report. A fetch error for one date
// is recorded and treated as a missing edition; it never aborts the
// remaining dates. Run stops early only when the context is canceled.
func (h *Harvester) Run(ctx context.Context, first, last time.Time) ([]gazette.Edition, *Report, error) {
	report := NewReport(first, last)
	var editions []gazette.Edition

	for date := first; !date.After(last); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return editions, report, err
		}

		edition, ok := h.harvestDate(ctx, date, report)
		if ok {
			editions = append(editions, edition)
			if edition.Missing {
				report.PlaceholderRows++
			} else {
				report.Record(edition.Records)
			}
		}
		report.DatesProcessed++
	}

	return editions, report, nil
}

// harvestDate fetches and segments one date. The boolean reports whether the
// edition should be included in the output.
func (h *Harvester) harvestDate(ctx context.Context, date time.Time, report *Report) (gazette.Edition, bool) {
	dateStr := date.Format("02/01/2006")
	editionContext := &gazette.EditionContext{IssueDate: date}

	text, found, err := h.source.FetchEdition(ctx, date)
	if err != nil {
		logger.Warn("fetching edition %s: %v", dateStr, err)
		report.FailedDates = append(report.FailedDates, dateStr)
		found = false
	}

	if !found {
		report.MissingDates = append(report.MissingDates, dateStr)
		if !h.Placeholders {
			return gazette.Edition{}, false
		}
		return gazette.Edition{
			Context: editionContext,
			Missing: true,
			Records: gazette.PlaceholderSet(),
		}, true
	}

	records := h.engine.Segment(text)
	logger.Debug("edition %s: %d records, %d dropped",
		dateStr, records.Total(), records.Diagnostics.Total())

	return gazette.Edition{Context: editionContext, Records: records}, true
}
