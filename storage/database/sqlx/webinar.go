package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/webinar"
)

type webinarRepository struct {
	db *sqlx.DB
}

var _ webinar.Repository = (*webinarRepository)(nil) // interface compliance check

func NewWebinarRepository(db *sqlx.DB) *webinarRepository {
	return &webinarRepository{db: db}
}

func (repo webinarRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return webinar.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo webinarRepository) CreateWebinar(ctx context.Context, web webinar.Webinar) (webinar.Webinar, error) {
	query := `
		INSERT INTO webinar (title, description, date, time, duration, attendees, status,
		                     registration_link, video_url, image_url, sort_order, is_active,
		                     created_at, updated_at)
		VALUES (:title, :description, :date, :time, :duration, :attendees, :status,
		        :registration_link, :video_url, :image_url, :sort_order, :is_active,
		        :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, query, web)
	if err != nil {
		return webinar.Webinar{}, errors.Wrap(err, "creating webinar")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&web.ID); err != nil {
			return webinar.Webinar{}, errors.Wrap(err, "creating webinar")
		}
	}
	return web, rows.Err()
}

func (repo webinarRepository) QueryActiveWebinars(ctx context.Context) ([]webinar.Webinar, error) {
	webinars := make([]webinar.Webinar, 0)
	query := `SELECT * FROM webinar WHERE is_active = TRUE ORDER BY sort_order ASC, date DESC`
	if err := repo.db.SelectContext(ctx, &webinars, query); err != nil {
		return nil, errors.Wrap(err, "querying active webinars")
	}
	return webinars, nil
}

func (repo webinarRepository) QueryActiveWebinarsByStatus(ctx context.Context, status string) ([]webinar.Webinar, error) {
	webinars := make([]webinar.Webinar, 0)
	query := `SELECT * FROM webinar WHERE status = $1 AND is_active = TRUE ORDER BY date DESC`
	if err := repo.db.SelectContext(ctx, &webinars, query, status); err != nil {
		return nil, errors.Wrap(err, "querying webinars by status")
	}
	return webinars, nil
}

func (repo webinarRepository) GetActiveWebinar(ctx context.Context, id int) (webinar.Webinar, error) {
	var web webinar.Webinar
	query := `SELECT * FROM webinar WHERE id = $1 AND is_active = TRUE`
	if err := repo.db.GetContext(ctx, &web, query, id); err != nil {
		return webinar.Webinar{}, repo.trapNoRowsErr(err, "getting active webinar")
	}
	return web, nil
}

func (repo webinarRepository) GetWebinar(ctx context.Context, id int) (webinar.Webinar, error) {
	var web webinar.Webinar
	query := `SELECT * FROM webinar WHERE id = $1`
	if err := repo.db.GetContext(ctx, &web, query, id); err != nil {
		return webinar.Webinar{}, repo.trapNoRowsErr(err, "getting webinar")
	}
	return web, nil
}

func (repo webinarRepository) UpdateWebinar(ctx context.Context, web webinar.Webinar) (webinar.Webinar, error) {
	query := `
		UPDATE webinar SET
			title = :title, description = :description, date = :date, time = :time,
			duration = :duration, attendees = :attendees, status = :status,
			registration_link = :registration_link, video_url = :video_url,
			image_url = :image_url, sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, web)
	if err != nil {
		return webinar.Webinar{}, errors.Wrap(err, "updating webinar")
	}
	if n, err := res.RowsAffected(); err != nil {
		return webinar.Webinar{}, errors.Wrap(err, "updating webinar")
	} else if n == 0 {
		return webinar.Webinar{}, webinar.ErrNotFound
	}
	return repo.GetWebinar(ctx, web.ID)
}

func (repo webinarRepository) DeactivateWebinar(ctx context.Context, id int) error {
	query := `UPDATE webinar SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`
	res, err := repo.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating webinar")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deactivating webinar")
	} else if n == 0 {
		return webinar.ErrNotFound
	}
	return nil
}

func (repo webinarRepository) ReorderWebinars(ctx context.Context, updates []webinar.SortUpdate) error {
	pairs := make([]sortPair, 0, len(updates))
	for _, upd := range updates {
		pairs = append(pairs, sortPair{ID: upd.ID, SortOrder: upd.SortOrder})
	}
	return reorder(ctx, repo.db, "webinar", webinar.ErrNotFound, pairs)
}
