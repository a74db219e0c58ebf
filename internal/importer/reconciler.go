package importer

import (
	"context"
	"fmt"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/csv"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
)

// InsertMode is the reconciliation policy chosen per import.
type InsertMode string

const (
	// ModeMerge upserts every batch entry: existing records for the same
	// date are replaced, new dates are inserted.
	ModeMerge InsertMode = "merge"
	// ModeOverwrite deletes every existing record in the batch's date set,
	// then inserts the whole batch fresh.
	ModeOverwrite InsertMode = "overwrite"
	// ModeNew inserts only dates with no existing record; existing records
	// are never touched.
	ModeNew InsertMode = "new"
)

func (m InsertMode) Valid() bool {
	return m == ModeMerge || m == ModeOverwrite || m == ModeNew
}

// Summary is the outcome of one reconciliation. The three counters are
// always reported, even when zero.
type Summary struct {
	Added       int      `json:"added"`
	Replaced    int      `json:"replaced"`
	Skipped     int      `json:"skipped"`
	SkipReasons []string `json:"skip_reasons,omitempty"`
}

// Reconciler turns a validated batch into persistence operations against the
// record store. It is best-effort, not transactional: a failed write for one
// entry is counted as skipped with its cause retained, and the loop
// continues with the remaining entries.
type Reconciler struct {
	repo      storage.RecordRepository
	chunkSize int
	logger    internal.Logger
}

func NewReconciler(repo storage.RecordRepository, chunkSize int, logger internal.Logger) *Reconciler {
	if chunkSize < 1 {
		chunkSize = 50
	}
	return &Reconciler{repo: repo, chunkSize: chunkSize, logger: logger}
}

// Reconcile applies the batch for one user under the given mode. The
// progress callback, if non-nil, is invoked after each chunk of writes with
// (entriesDone, entriesTotal).
//
// A fatal error (listing existing records, or the overwrite delete phase) is
// returned directly; per-entry write failures are folded into the summary.
func (r *Reconciler) Reconcile(ctx context.Context, userID string, batch *csv.ImportBatch, mode InsertMode, progress func(done, total int)) (*Summary, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown insert mode %q", mode)
	}

	// Existing-date set is loaded once up front so merge can tell added from
	// replaced without re-querying after each write.
	existing, err := r.existingDates(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list existing records: %w", err)
	}

	if mode == ModeOverwrite {
		// The delete phase must fully complete before any insert begins;
		// interleaving could delete a date just re-inserted.
		if err := r.repo.DeleteWhere(ctx, userID, batch.Dates()); err != nil {
			return nil, fmt.Errorf("failed to delete existing records: %w", err)
		}
	}

	summary := &Summary{}
	total := len(batch.Entries)
	for start := 0; start < total; start += r.chunkSize {
		end := start + r.chunkSize
		if end > total {
			end = total
		}
		for _, entry := range batch.Entries[start:end] {
			entry.UserID = userID
			r.apply(ctx, &entry, mode, existing, summary)
		}
		if progress != nil {
			progress(end, total)
		}
	}
	return summary, nil
}

func (r *Reconciler) apply(ctx context.Context, entry *internal.HealthRecord, mode InsertMode, existing map[string]bool, summary *Summary) {
	switch mode {
	case ModeMerge:
		if err := r.repo.Upsert(ctx, entry); err != nil {
			r.skip(summary, entry.Date, err)
			return
		}
		if existing[entry.Date] {
			summary.Replaced++
		} else {
			summary.Added++
		}
	case ModeOverwrite:
		// Prior records for these dates are already gone; everything is a
		// fresh insert and counts as added.
		if err := r.repo.Insert(ctx, entry); err != nil {
			r.skip(summary, entry.Date, err)
			return
		}
		summary.Added++
	case ModeNew:
		if existing[entry.Date] {
			summary.Skipped++
			return
		}
		if err := r.repo.Insert(ctx, entry); err != nil {
			if err == storage.ErrDuplicate {
				summary.Skipped++
				return
			}
			r.skip(summary, entry.Date, err)
			return
		}
		summary.Added++
	}
}

func (r *Reconciler) skip(summary *Summary, date string, err error) {
	r.logger.Errorf("import: write failed for %s: %v", date, err)
	summary.Skipped++
	summary.SkipReasons = append(summary.SkipReasons, fmt.Sprintf("%s: %v", date, err))
}

func (r *Reconciler) existingDates(ctx context.Context, userID string) (map[string]bool, error) {
	records, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dates := make(map[string]bool, len(records))
	for _, rec := range records {
		dates[rec.Date] = true
	}
	return dates, nil
}
