package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/jltacademy/backend/core/course"
)

type courseRepository struct {
	db *DB
}

var _ course.Repository = (*courseRepository)(nil) // interface compliance check

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{db: db}
}

func (repo courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	repo.db.course.seq++
	crs.ID = repo.db.course.seq
	repo.db.course.table[crs.ID] = &crs
	return crs, nil
}

func (repo courseRepository) QueryActiveCourses(ctx context.Context) ([]course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	courses := make([]course.Course, 0)
	for _, crs := range repo.db.course.table {
		if crs.IsActive {
			courses = append(courses, *crs)
		}
	}
	sort.SliceStable(courses, func(i, j int) bool {
		if courses[i].SortOrder != courses[j].SortOrder {
			return courses[i].SortOrder < courses[j].SortOrder
		}
		return courses[i].CreatedAt.After(courses[j].CreatedAt)
	})
	return courses, nil
}

func (repo courseRepository) GetActiveCourse(ctx context.Context, id int) (course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if crs, ok := repo.db.course.table[id]; ok && crs.IsActive {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	repo.db.course.RLock()
	defer repo.db.course.RUnlock()

	if crs, ok := repo.db.course.table[id]; ok {
		return *crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	if _, ok := repo.db.course.table[crs.ID]; !ok {
		return course.Course{}, course.ErrNotFound
	}
	repo.db.course.table[crs.ID] = &crs
	return crs, nil
}

func (repo courseRepository) DeactivateCourse(ctx context.Context, id int) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	crs, ok := repo.db.course.table[id]
	if !ok || !crs.IsActive {
		return course.ErrNotFound
	}
	crs.IsActive = false
	crs.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo courseRepository) ReorderCourses(ctx context.Context, updates []course.SortUpdate) error {
	repo.db.course.Lock()
	defer repo.db.course.Unlock()

	// all-or-nothing: check every id before touching any row
	for _, upd := range updates {
		if _, ok := repo.db.course.table[upd.ID]; !ok {
			return course.ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, upd := range updates {
		crs := repo.db.course.table[upd.ID]
		crs.SortOrder = upd.SortOrder
		crs.UpdatedAt = now
	}
	return nil
}
