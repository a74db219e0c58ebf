package importer

import (
	"errors"
	"fmt"

	"github.com/Kadhiravan2002/AuraX/internal"
	"github.com/Kadhiravan2002/AuraX/internal/csv"
	"github.com/Kadhiravan2002/AuraX/internal/mapping"
)

// Step is a state of the import wizard.
type Step int

const (
	StepSelectFile Step = iota
	StepMapColumns
	StepReview
	StepProcessing
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepSelectFile:
		return "SELECT_FILE"
	case StepMapColumns:
		return "MAP_COLUMNS"
	case StepReview:
		return "REVIEW_AND_CHOOSE_MODE"
	case StepProcessing:
		return "PROCESSING"
	case StepDone:
		return "DONE"
	}
	return "UNKNOWN"
}

// ErrNoValidData escalates an all-rows-invalid file to a fatal condition.
var ErrNoValidData = errors.New("no valid rows to import")

// Wizard is the import flow state machine:
//
//	SELECT_FILE -> MAP_COLUMNS -> REVIEW_AND_CHOOSE_MODE -> PROCESSING -> DONE
//
// with an error edge from PROCESSING back to REVIEW_AND_CHOOSE_MODE, and a
// reset from DONE back to SELECT_FILE. It owns no persistence; it sequences
// parse, mapping and transform, and hands the validated batch to whoever
// runs the reconciliation.
type Wizard struct {
	step     Step
	table    *csv.RawTable
	mapping  internal.ColumnMapping
	batch    *csv.ImportBatch
	mappings *mapping.Store
	logger   internal.Logger
}

func NewWizard(mappings *mapping.Store, logger internal.Logger) *Wizard {
	return &Wizard{step: StepSelectFile, mapping: internal.ColumnMapping{}, mappings: mappings, logger: logger}
}

func (w *Wizard) Step() Step              { return w.step }
func (w *Wizard) Table() *csv.RawTable    { return w.table }
func (w *Wizard) Batch() *csv.ImportBatch { return w.batch }

// Mapping returns the wizard's current column mapping.
func (w *Wizard) Mapping() internal.ColumnMapping {
	out := make(internal.ColumnMapping, len(w.mapping))
	for k, v := range w.mapping {
		out[k] = v
	}
	return out
}

// SelectFile parses the uploaded text. On success the wizard advances to
// MAP_COLUMNS with the mapping pre-populated from a similar saved mapping if
// one exists, else from the substring auto-detect heuristic. A parse failure
// leaves the wizard in SELECT_FILE.
func (w *Wizard) SelectFile(text string) error {
	if err := w.require(StepSelectFile); err != nil {
		return err
	}
	table, err := csv.Parse(text)
	if err != nil {
		return err
	}
	w.table = table

	if w.mappings != nil {
		if saved := w.mappings.FindSimilar(table.Headers); saved != nil {
			w.logger.Infof("wizard: reusing saved mapping %q for similar headers", saved.Name)
			// Copy so later MapField edits never touch the stored entry.
			w.mapping = make(internal.ColumnMapping, len(saved.Mapping))
			for k, v := range saved.Mapping {
				w.mapping[k] = v
			}
			w.step = StepMapColumns
			return nil
		}
	}
	w.mapping = mapping.AutoDetect(table.Headers)
	w.step = StepMapColumns
	return nil
}

// MapField assigns or clears one field's header while in MAP_COLUMNS.
func (w *Wizard) MapField(key internal.FieldKey, header string) error {
	if err := w.require(StepMapColumns); err != nil {
		return err
	}
	if header == "" {
		delete(w.mapping, key)
		return nil
	}
	w.mapping[key] = header
	return nil
}

// SetMapping replaces the whole mapping while in MAP_COLUMNS.
func (w *Wizard) SetMapping(m internal.ColumnMapping) error {
	if err := w.require(StepMapColumns); err != nil {
		return err
	}
	w.mapping = make(internal.ColumnMapping, len(m))
	for k, v := range m {
		w.mapping[k] = v
	}
	return nil
}

// Validate runs the transform. Advancing to REVIEW_AND_CHOOSE_MODE requires
// every field mapped and at least one valid batch entry; otherwise the
// wizard stays in MAP_COLUMNS and the gating error is returned.
func (w *Wizard) Validate() (*csv.ImportBatch, error) {
	if err := w.require(StepMapColumns); err != nil {
		return nil, err
	}
	batch, err := csv.Transform(w.table, w.mapping)
	if err != nil {
		return nil, err
	}
	if len(batch.Entries) == 0 {
		return batch, ErrNoValidData
	}
	w.batch = batch
	w.step = StepReview
	return batch, nil
}

// BeginProcessing moves REVIEW_AND_CHOOSE_MODE -> PROCESSING and returns the
// batch to reconcile.
func (w *Wizard) BeginProcessing() (*csv.ImportBatch, error) {
	if err := w.require(StepReview); err != nil {
		return nil, err
	}
	w.step = StepProcessing
	return w.batch, nil
}

// FinishProcessing closes the PROCESSING step: nil lands on DONE, a
// reconciliation error takes the error edge back to REVIEW_AND_CHOOSE_MODE.
func (w *Wizard) FinishProcessing(err error) {
	if w.step != StepProcessing {
		return
	}
	if err != nil {
		w.logger.Warnf("wizard: reconciliation failed, returning to review: %v", err)
		w.step = StepReview
		return
	}
	w.step = StepDone
}

// Reset returns the wizard to SELECT_FILE, discarding all per-file state.
func (w *Wizard) Reset() {
	w.step = StepSelectFile
	w.table = nil
	w.batch = nil
	w.mapping = internal.ColumnMapping{}
}

func (w *Wizard) require(step Step) error {
	if w.step != step {
		return fmt.Errorf("wizard: operation requires step %s, current step is %s", step, w.step)
	}
	return nil
}
