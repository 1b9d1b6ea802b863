package repository

import (
	"context"
	"errors"
	"fmt"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/sirupsen/logrus"
)

// ResumesRepo keeps one row per user in the resumes table.
type ResumesRepo struct {
	pool *pgxpool.Pool
	log  *logrus.Entry
}

func NewResumesRepo(pool *pgxpool.Pool, log *logrus.Entry) *ResumesRepo {
	return &ResumesRepo{pool: pool, log: log}
}

func (r *ResumesRepo) Upsert(ctx context.Context, rec *model.Record) error {
	raw, err := rec.Encode()
	if err != nil {
		return fmt.Errorf("encode resume %s: %w", rec.UserID, err)
	}

	_, err = r.pool.Exec(ctx, `INSERT INTO resumes (user_id, personal_info, education, experience, skills, projects, awards, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (user_id) DO UPDATE SET personal_info = EXCLUDED.personal_info, education = EXCLUDED.education, experience = EXCLUDED.experience, skills = EXCLUDED.skills, projects = EXCLUDED.projects, awards = EXCLUDED.awards, updated_at = EXCLUDED.updated_at`,
		raw.UserID, raw.PersonalInfo, raw.Education, raw.Experience, raw.Skills, raw.Projects, raw.Awards, raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert resume %s: %w", rec.UserID, err)
	}
	return nil
}

// Load returns nil, nil when the user has no row. Columns that do not
// decode are logged and replaced by empty values.
func (r *ResumesRepo) Load(ctx context.Context, id domain.Identity) (*model.Record, error) {
	var raw model.RawRecord
	err := r.pool.QueryRow(ctx, `SELECT user_id, personal_info, education, experience, skills, projects, awards, updated_at
		FROM resumes WHERE user_id = $1`, id.String()).
		Scan(&raw.UserID, &raw.PersonalInfo, &raw.Education, &raw.Experience, &raw.Skills, &raw.Projects, &raw.Awards, &raw.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load resume %s: %w", id, err)
	}

	log := r.log.WithField("identity", id)
	if msgs, err := model.ValidateRaw(raw); err != nil {
		log.WithError(err).Warn("resumes_repo: schema check unavailable")
	} else if len(msgs) > 0 {
		log.WithField("problems", msgs).Warn("resumes_repo: stored resume does not match schema")
	}

	rec, problems := raw.Decode()
	if len(problems) > 0 {
		log.WithField("problems", problems).Warn("resumes_repo: dropped unreadable parts of stored resume")
	}
	return rec, nil
}
