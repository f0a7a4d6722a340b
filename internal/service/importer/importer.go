package importer

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// batchSize bounds how many contacts go to storage in one write.
const batchSize = 100

// KeySource supplies the identity keys already persisted for an owner.
type KeySource interface {
	ListIdentityKeys(ctx context.Context, userID uuid.UUID) (IdentityKeys, error)
}

// BatchWriter persists a group of candidates for an owner. A failed call
// loses the whole batch.
type BatchWriter interface {
	InsertBatch(ctx context.Context, userID uuid.UUID, batch []Candidate) error
}

// Summary reports the outcome of one import run. Imported plus
// SkippedDuplicates can fall short of Total when batch writes fail; callers
// infer partial loss from the arithmetic.
type Summary struct {
	Imported          int `json:"imported"`
	SkippedDuplicates int `json:"skipped_duplicates"`
	Total             int `json:"total"`
}

// Importer drives one import run: dedupe against existing keys, tag the
// survivors and write them in fixed-size batches.
type Importer struct {
	keys   KeySource
	writer BatchWriter
}

// New wires an importer from its storage collaborators.
func New(keys KeySource, writer BatchWriter) *Importer {
	return &Importer{keys: keys, writer: writer}
}

// Run imports candidates for the given owner.
//
// Existing identity keys are snapshotted once per run; concurrent runs for
// the same owner are not coordinated and may both insert the same record.
// Batch writes are sequential and independent: a failed batch is logged and
// abandoned while the run continues, so a re-run will reconsider its records
// as new. A key fetch failure aborts the run before anything is written.
func (i *Importer) Run(ctx context.Context, userID uuid.UUID, candidates []Candidate) (Summary, error) {
	keys, err := i.keys.ListIdentityKeys(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("list identity keys: %w", err)
	}

	toInsert, skipped := Partition(candidates, keys)
	for idx := range toInsert {
		toInsert[idx].Tags = InferTags(toInsert[idx].JobTitle, toInsert[idx].Company)
	}

	imported := 0
	for start := 0; start < len(toInsert); start += batchSize {
		end := start + batchSize
		if end > len(toInsert) {
			end = len(toInsert)
		}
		batch := toInsert[start:end]

		if err := i.writer.InsertBatch(ctx, userID, batch); err != nil {
			log.Printf("user_id=%s insert contact batch %d-%d failed: %v", userID, start, end, err)
			continue
		}
		imported += len(batch)
	}

	return Summary{
		Imported:          imported,
		SkippedDuplicates: skipped,
		Total:             len(candidates),
	}, nil
}
