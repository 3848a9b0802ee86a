package interview

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/novatech/interview-agent-go/internal/domain"
	"github.com/novatech/interview-agent-go/internal/service/database"
	"go.uber.org/zap"
)

// Repository is the append-only persistence gateway for interview records.
// Ids are assigned by the database sequence and never reused; the core
// exposes no update or delete.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRepository(postgres *database.PostgresService, logger *zap.Logger) *Repository {
	return &Repository{
		db:     postgres.GetDB(),
		logger: logger,
	}
}

// Append inserts one immutable record and returns its assigned id. The
// insert runs in its own transaction so concurrent sessions cannot corrupt
// id assignment.
func (r *Repository) Append(ctx context.Context, record *domain.InterviewRecord) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin append transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO interview_results (candidate_name, candidate_email, answers, confidence_score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	email := sql.NullString{String: record.CandidateEmail, Valid: record.CandidateEmail != ""}

	var id int64
	if err := tx.QueryRowContext(ctx, query,
		record.CandidateName, email, record.AnswersJoined, record.ConfidenceScore,
	).Scan(&id, &record.CreatedAt); err != nil {
		return 0, fmt.Errorf("failed to insert interview record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit interview record: %w", err)
	}

	record.ID = id
	r.logger.Info("Interview record appended",
		zap.Int64("record_id", id),
		zap.String("candidate", record.CandidateName),
	)

	return id, nil
}

// MostRecent returns the record with the highest id, or nil when the table
// is empty.
func (r *Repository) MostRecent(ctx context.Context) (*domain.InterviewRecord, error) {
	query := `
		SELECT id, candidate_name, candidate_email, answers, confidence_score, created_at
		FROM interview_results
		ORDER BY id DESC
		LIMIT 1
	`

	var (
		record domain.InterviewRecord
		email  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query).Scan(
		&record.ID, &record.CandidateName, &email,
		&record.AnswersJoined, &record.ConfidenceScore, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query most recent record: %w", err)
	}

	if email.Valid {
		record.CandidateEmail = email.String
	}

	return &record, nil
}

// Find returns one record by id, or nil when absent.
func (r *Repository) Find(ctx context.Context, id int64) (*domain.InterviewRecord, error) {
	query := `
		SELECT id, candidate_name, candidate_email, answers, confidence_score, created_at
		FROM interview_results
		WHERE id = $1
		LIMIT 1
	`

	var (
		record domain.InterviewRecord
		email  sql.NullString
	)

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.CandidateName, &email,
		&record.AnswersJoined, &record.ConfidenceScore, &record.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query record by id: %w", err)
	}

	if email.Valid {
		record.CandidateEmail = email.String
	}

	return &record, nil
}
