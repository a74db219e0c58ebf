package importer

import (
	"context"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/csv"
	"github.com/Kadhiravan2002/AuraX/internal/mapping"
	"github.com/Kadhiravan2002/AuraX/internal/notify"
	"github.com/Kadhiravan2002/AuraX/internal/storage"
	"github.com/Kadhiravan2002/AuraX/pkg/checksum"
)

// Request is one complete import submission.
type Request struct {
	UserID  string
	Text    string
	Mapping internal.ColumnMapping
	Mode    InsertMode
}

// Result is the final summary surfaced to the user. The three counters are
// present even when zero; row errors and dropped rows are reported
// separately from reconciliation skips.
type Result struct {
	Summary         *Summary `json:"summary"`
	RowErrors       []string `json:"row_errors,omitempty"`
	ValidRows       int      `json:"valid_rows"`
	DroppedRows     int      `json:"dropped_rows"`
	Checksum        string   `json:"checksum"`
	DuplicateUpload bool     `json:"duplicate_upload,omitempty"`
}

// Preview is what the UI shows between upload and import: headers, a
// suggested mapping, and a few sample rows.
type Preview struct {
	Headers          []string               `json:"headers"`
	SampleRows       [][]string             `json:"sample_rows"`
	RowCount         int                    `json:"row_count"`
	DroppedRows      int                    `json:"dropped_rows"`
	Suggested        internal.ColumnMapping `json:"suggested_mapping"`
	FromSavedMapping string                 `json:"from_saved_mapping,omitempty"`
}

const previewSampleRows = 5

// Service runs one-shot imports for the API, driving a Wizard through its
// full state sequence per request.
type Service struct {
	records  storage.RecordRepository
	mappings *mapping.Store
	notifier notify.Notifier
	chunk    int
	logger   internal.Logger

	mu            sync.Mutex
	lastChecksums map[string]string // userID -> checksum of last successful import
}

func NewService(records storage.RecordRepository, mappings *mapping.Store, notifier notify.Notifier, chunkSize int, logger internal.Logger) *Service {
	if notifier == nil {
		notifier = notify.NoopNotifier{}
	}
	return &Service{
		records:       records,
		mappings:      mappings,
		notifier:      notifier,
		chunk:         chunkSize,
		logger:        logger,
		lastChecksums: make(map[string]string),
	}
}

// PreviewUpload parses the text and suggests a mapping without writing
// anything.
func (s *Service) PreviewUpload(text string) (*Preview, error) {
	table, err := csv.Parse(text)
	if err != nil {
		return nil, err
	}
	p := &Preview{
		Headers:     table.Headers,
		RowCount:    len(table.Rows),
		DroppedRows: table.Dropped,
	}
	n := len(table.Rows)
	if n > previewSampleRows {
		n = previewSampleRows
	}
	p.SampleRows = table.Rows[:n]

	if saved := s.mappings.FindSimilar(table.Headers); saved != nil {
		p.Suggested = saved.Mapping
		p.FromSavedMapping = saved.Name
	} else {
		p.Suggested = mapping.AutoDetect(table.Headers)
	}
	return p, nil
}

// Import runs the full pipeline: parse, map, transform, reconcile, notify.
// Fatal pipeline errors (parse, incomplete mapping, no valid data,
// reconciliation setup) are returned; per-row and per-write problems are
// folded into the Result.
func (s *Service) Import(ctx context.Context, req Request) (*Result, error) {
	sum := checksum.Sum(req.Text)
	s.logger.Infof("import: user=%s mode=%s checksum=%s", req.UserID, req.Mode, sum)

	wizard := NewWizard(s.mappings, s.logger)
	if err := wizard.SelectFile(req.Text); err != nil {
		return nil, err
	}
	if len(req.Mapping) > 0 {
		if err := wizard.SetMapping(req.Mapping); err != nil {
			return nil, err
		}
	}

	batch, err := wizard.Validate()
	if err != nil {
		return nil, err
	}
	s.logger.Debugf("import: validated batch:\n%s", spew.Sdump(batch))

	if _, err := wizard.BeginProcessing(); err != nil {
		return nil, err
	}
	reconciler := NewReconciler(s.records, s.chunk, s.logger)
	summary, err := reconciler.Reconcile(ctx, req.UserID, batch, req.Mode, func(done, total int) {
		s.logger.Debugf("import: persisted %d/%d entries", done, total)
	})
	wizard.FinishProcessing(err)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Summary:     summary,
		RowErrors:   batch.Errors,
		ValidRows:   len(batch.Entries),
		DroppedRows: wizard.Table().Dropped,
		Checksum:    sum,
	}

	s.mu.Lock()
	result.DuplicateUpload = s.lastChecksums[req.UserID] == sum
	s.lastChecksums[req.UserID] = sum
	s.mu.Unlock()
	if result.DuplicateUpload {
		s.logger.Warnf("import: user=%s re-imported an identical file (checksum=%s)", req.UserID, sum)
	}

	// Side effects after a successful import are fire-and-forget; a webhook
	// failure must never fail the import.
	go func() {
		event := notify.Event{
			UserID:   req.UserID,
			Added:    summary.Added,
			Replaced: summary.Replaced,
			Skipped:  summary.Skipped,
			Checksum: sum,
		}
		if err := s.notifier.ImportCompleted(context.Background(), event); err != nil {
			s.logger.Warnf("import: completion notification failed: %v", err)
		}
	}()

	return result, nil
}

// ExportBatch re-serializes a validated batch to CSV text for download.
func (s *Service) ExportBatch(batch *csv.ImportBatch) string {
	return csv.Export(batch)
}
