package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/slider"
)

type sliderRepository struct {
	db *sqlx.DB
}

var _ slider.Repository = (*sliderRepository)(nil) // interface compliance check

func NewSliderRepository(db *sqlx.DB) *sliderRepository {
	return &sliderRepository{db: db}
}

func (repo sliderRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return slider.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo sliderRepository) CreateItem(ctx context.Context, item slider.Item) (slider.Item, error) {
	query := `
		INSERT INTO slider_item (title, description, file_path, file_type, content_type,
		                         sort_order, is_active, created_at, updated_at)
		VALUES (:title, :description, :file_path, :file_type, :content_type,
		        :sort_order, :is_active, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, query, item)
	if err != nil {
		return slider.Item{}, errors.Wrap(err, "creating slider item")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&item.ID); err != nil {
			return slider.Item{}, errors.Wrap(err, "creating slider item")
		}
	}
	return item, rows.Err()
}

func (repo sliderRepository) QueryActiveItems(ctx context.Context) ([]slider.Item, error) {
	items := make([]slider.Item, 0)
	query := `SELECT * FROM slider_item WHERE is_active = TRUE ORDER BY sort_order ASC, created_at DESC`
	if err := repo.db.SelectContext(ctx, &items, query); err != nil {
		return nil, errors.Wrap(err, "querying active slider items")
	}
	return items, nil
}

func (repo sliderRepository) QueryActiveItemsByContentType(ctx context.Context, contentType string) ([]slider.Item, error) {
	items := make([]slider.Item, 0)
	query := `SELECT * FROM slider_item WHERE content_type = $1 AND is_active = TRUE ORDER BY sort_order ASC`
	if err := repo.db.SelectContext(ctx, &items, query, contentType); err != nil {
		return nil, errors.Wrap(err, "querying slider items by content type")
	}
	return items, nil
}

func (repo sliderRepository) GetActiveItem(ctx context.Context, id int) (slider.Item, error) {
	var item slider.Item
	query := `SELECT * FROM slider_item WHERE id = $1 AND is_active = TRUE`
	if err := repo.db.GetContext(ctx, &item, query, id); err != nil {
		return slider.Item{}, repo.trapNoRowsErr(err, "getting active slider item")
	}
	return item, nil
}

func (repo sliderRepository) GetItem(ctx context.Context, id int) (slider.Item, error) {
	var item slider.Item
	query := `SELECT * FROM slider_item WHERE id = $1`
	if err := repo.db.GetContext(ctx, &item, query, id); err != nil {
		return slider.Item{}, repo.trapNoRowsErr(err, "getting slider item")
	}
	return item, nil
}

func (repo sliderRepository) UpdateItem(ctx context.Context, item slider.Item) (slider.Item, error) {
	query := `
		UPDATE slider_item SET
			title = :title, description = :description, file_path = :file_path,
			file_type = :file_type, content_type = :content_type,
			sort_order = :sort_order, updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return slider.Item{}, errors.Wrap(err, "updating slider item")
	}
	if n, err := res.RowsAffected(); err != nil {
		return slider.Item{}, errors.Wrap(err, "updating slider item")
	} else if n == 0 {
		return slider.Item{}, slider.ErrNotFound
	}
	return repo.GetItem(ctx, item.ID)
}

func (repo sliderRepository) DeactivateItem(ctx context.Context, id int) error {
	query := `UPDATE slider_item SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`
	res, err := repo.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating slider item")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deactivating slider item")
	} else if n == 0 {
		return slider.ErrNotFound
	}
	return nil
}

func (repo sliderRepository) ReorderItems(ctx context.Context, updates []slider.SortUpdate) error {
	pairs := make([]sortPair, 0, len(updates))
	for _, upd := range updates {
		pairs = append(pairs, sortPair{ID: upd.ID, SortOrder: upd.SortOrder})
	}
	return reorder(ctx, repo.db, "slider_item", slider.ErrNotFound, pairs)
}
