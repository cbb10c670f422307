package runs

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a run.
func (r *PGRepo) Create(ctx context.Context, run Run) error {
	if err := validate(run); err != nil {
		return err
	}
	const query = `
INSERT INTO runs (
    id,
    source,
    status,
    match_count,
    gap_count,
    artifact_id,
    model,
    duration_ms,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	var artifactID sql.NullString
	if run.ArtifactID != "" {
		artifactID = sql.NullString{String: run.ArtifactID, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		run.ID,
		run.Source,
		run.Status,
		run.MatchCount,
		run.GapCount,
		artifactID,
		run.Model,
		run.DurationMs,
		run.CreatedAt,
	)
	return err
}

// List returns runs newest first.
func (r *PGRepo) List(ctx context.Context, limit, offset int) ([]Run, error) {
	const query = `
SELECT id, source, status, match_count, gap_count, artifact_id, model, duration_ms, created_at
FROM runs
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	rows, err := r.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var run Run
		var artifactID sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Status,
			&run.MatchCount,
			&run.GapCount,
			&artifactID,
			&run.Model,
			&run.DurationMs,
			&run.CreatedAt,
		); err != nil {
			return nil, err
		}
		if artifactID.Valid {
			run.ArtifactID = artifactID.String
		}
		out = append(out, run)
	}
	return out, rows.Err()
}
