package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/course"
)

type courseRepository struct {
	db *sqlx.DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *sqlx.DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return course.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query := `
		INSERT INTO course (title, description, duration, level, featured, image_url,
		                    registration_link, sort_order, is_active, created_at, updated_at)
		VALUES (:title, :description, :duration, :level, :featured, :image_url,
		        :registration_link, :sort_order, :is_active, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, query, crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "creating course")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&crs.ID); err != nil {
			return course.Course{}, errors.Wrap(err, "creating course")
		}
	}
	return crs, rows.Err()
}

func (repo courseRepository) QueryActiveCourses(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	query := `SELECT * FROM course WHERE is_active = TRUE ORDER BY sort_order ASC, created_at DESC`
	if err := repo.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, errors.Wrap(err, "querying active courses")
	}
	return courses, nil
}

func (repo courseRepository) GetActiveCourse(ctx context.Context, id int) (course.Course, error) {
	var crs course.Course
	query := `SELECT * FROM course WHERE id = $1 AND is_active = TRUE`
	if err := repo.db.GetContext(ctx, &crs, query, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting active course")
	}
	return crs, nil
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var crs course.Course
	query := `SELECT * FROM course WHERE id = $1`
	if err := repo.db.GetContext(ctx, &crs, query, id); err != nil {
		return course.Course{}, repo.trapNoRowsErr(err, "getting course")
	}
	return crs, nil
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	query := `
		UPDATE course SET
			title = :title, description = :description, duration = :duration,
			level = :level, featured = :featured, image_url = :image_url,
			registration_link = :registration_link, sort_order = :sort_order,
			updated_at = :updated_at
		WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, crs)
	if err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	}
	if n, err := res.RowsAffected(); err != nil {
		return course.Course{}, errors.Wrap(err, "updating course")
	} else if n == 0 {
		return course.Course{}, course.ErrNotFound
	}
	return repo.GetCourse(ctx, crs.ID)
}

func (repo courseRepository) DeactivateCourse(ctx context.Context, id int) error {
	query := `UPDATE course SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active = TRUE`
	res, err := repo.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return errors.Wrap(err, "deactivating course")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deactivating course")
	} else if n == 0 {
		return course.ErrNotFound
	}
	return nil
}

func (repo courseRepository) ReorderCourses(ctx context.Context, updates []course.SortUpdate) error {
	pairs := make([]sortPair, 0, len(updates))
	for _, upd := range updates {
		pairs = append(pairs, sortPair{ID: upd.ID, SortOrder: upd.SortOrder})
	}
	return reorder(ctx, repo.db, "course", course.ErrNotFound, pairs)
}
