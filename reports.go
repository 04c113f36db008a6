package battlelog

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"
)

// reportPageSize matches the largest page Battlelog serves per call.
const reportPageSize = 2048

// maxEmptyReportPages is how many consecutive empty pages are fetched
// before the report history is considered exhausted. The populatemore
// endpoint sometimes returns an empty page in the middle of the
// history, so a single empty page is not trusted.
const maxEmptyReportPages = 5

// reportMeta is the subset of a report list entry needed to address
// the full report and to advance the pagination cursor.
type reportMeta struct {
	GameReportID json.Number `json:"gameReportId"`
	CreatedAt    json.Number `json:"createdAt"`
}

type reportPage struct {
	Data struct {
		GameReports []json.RawMessage `json:"gameReports"`
	} `json:"data"`
}

// listReports walks the battle report history of a persona page by
// page and returns every list entry exactly as Battlelog sent it.
func (arc *Archiver) listReports(ctx context.Context, personaID string) ([]json.RawMessage, error) {
	var page reportPage
	if _, err := arc.fetchJSON(ctx, reportListEndpoint(personaID), &page); err != nil {
		return nil, err
	}

	// A visible but empty history decodes to an empty array. A missing
	// gameReports section means the soldier hides their reports.
	if page.Data.GameReports == nil {
		return nil, ErrReportsHidden
	}

	entries := page.Data.GameReports
	emptyPages := 0
	for len(entries) > 0 {
		var meta reportMeta
		if err := json.Unmarshal(entries[len(entries)-1], &meta); err != nil {
			return nil, fmt.Errorf("decode report entry: %w", err)
		}

		page = reportPage{}
		if _, err := arc.fetchJSON(ctx, reportListMoreEndpoint(personaID, meta.CreatedAt.String()), &page); err != nil {
			return nil, err
		}

		if len(page.Data.GameReports) == 0 {
			emptyPages++
			if emptyPages >= maxEmptyReportPages {
				break
			}
			continue
		}

		emptyPages = 0
		entries = append(entries, page.Data.GameReports...)
		arc.logVerbose("found", len(entries), "battle reports so far")
	}

	return entries, nil
}

// downloadReports fetches every individual battle report, bounded by
// the download semaphore, and writes each one to dir.
func (arc *Archiver) downloadReports(ctx context.Context, personaID string, entries []json.RawMessage, dir string) error {
	g, ctx := errgroup.WithContext(ctx)

	for _, entry := range entries {
		entry := entry
		g.Go(func() error {
			var meta reportMeta
			if err := json.Unmarshal(entry, &meta); err != nil {
				return fmt.Errorf("decode report entry: %w", err)
			}

			if err := arc.dlSemaphore.Acquire(ctx, 1); err != nil {
				return err
			}
			body, err := arc.fetch(ctx, reportEndpoint(meta.GameReportID.String(), personaID))
			arc.dlSemaphore.Release(1)

			if err != nil {
				return fmt.Errorf("report %s: %w", meta.GameReportID, err)
			}
			if isNullBody(body) {
				return fmt.Errorf("report %s: empty response", meta.GameReportID)
			}

			arc.logVerbose("saved battle report", meta.GameReportID)
			return arc.writeFile(filepath.Join(dir, meta.GameReportID.String()+".json"), body)
		})
	}

	return g.Wait()
}
