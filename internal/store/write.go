package store

import (
	"context"
	"fmt"
)

// RecordRun stores a run and upserts its artifacts in one transaction. It
// returns the run's seq.
//
// An artifact row always points at the run that last wrote or confirmed
// it, so ListArtifacts(run) is the set of outputs that run touched.
func (s *Store) RecordRun(ctx context.Context, run Run, artifacts []Artifact) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, tool_version, ir_version, config_hash, file_count, written_count, skipped_count, failed_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.ToolVersion,
		run.IRVersion,
		run.ConfigHash,
		run.FileCount,
		run.WrittenCount,
		run.SkippedCount,
		run.FailedCount,
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}

	for _, a := range artifacts {
		records, err := marshalRecords(a.Records)
		if err != nil {
			return 0, fmt.Errorf("record artifact %s: %w", a.OutputPath, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO artifacts
			(output_path, source_path, fingerprint, content_hash, records, run_id)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(output_path) DO UPDATE SET
				source_path = excluded.source_path,
				fingerprint = excluded.fingerprint,
				content_hash = excluded.content_hash,
				records = excluded.records,
				run_id = excluded.run_id
		`,
			a.OutputPath,
			a.SourcePath,
			a.Fingerprint,
			a.ContentHash,
			records,
			run.ID,
		)
		if err != nil {
			return 0, fmt.Errorf("record artifact %s: %w", a.OutputPath, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	return seq, nil
}
