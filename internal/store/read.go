package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// LookupArtifact returns the ledger entry for an output file, or
// ErrNotFound.
func (s *Store) LookupArtifact(ctx context.Context, outputPath string) (Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT output_path, source_path, fingerprint, content_hash, records, run_id
		FROM artifacts
		WHERE output_path = ?
	`, outputPath)

	a, err := scanArtifact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Artifact{}, ErrNotFound
	}
	if err != nil {
		return Artifact{}, fmt.Errorf("lookup artifact %s: %w", outputPath, err)
	}
	return a, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, id, tool_version, ir_version, config_hash,
		       file_count, written_count, skipped_count, failed_count
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.Seq, &r.ID, &r.ToolVersion, &r.IRVersion, &r.ConfigHash,
			&r.FileCount, &r.WrittenCount, &r.SkippedCount, &r.FailedCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ListArtifacts returns the artifacts last touched by runID, or every
// artifact when runID is empty, ordered by output path.
func (s *Store) ListArtifacts(ctx context.Context, runID string) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT output_path, source_path, fingerprint, content_hash, records, run_id
		FROM artifacts
		WHERE ? = '' OR run_id = ?
		ORDER BY output_path COLLATE BINARY ASC
	`, runID, runID)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []Artifact{}
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return artifacts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArtifact(row scanner) (Artifact, error) {
	var (
		a       Artifact
		records string
	)
	if err := row.Scan(&a.OutputPath, &a.SourcePath, &a.Fingerprint, &a.ContentHash, &records, &a.RunID); err != nil {
		return Artifact{}, err
	}
	list, err := unmarshalRecords(records)
	if err != nil {
		return Artifact{}, err
	}
	a.Records = list
	return a, nil
}
