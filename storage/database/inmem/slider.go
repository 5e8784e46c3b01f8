package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/jltacademy/backend/core/slider"
)

type sliderRepository struct {
	db *DB
}

var _ slider.Repository = (*sliderRepository)(nil) // interface compliance check

func NewSliderRepository(db *DB) *sliderRepository {
	return &sliderRepository{db: db}
}

func (repo sliderRepository) CreateItem(ctx context.Context, item slider.Item) (slider.Item, error) {
	repo.db.slider.Lock()
	defer repo.db.slider.Unlock()

	repo.db.slider.seq++
	item.ID = repo.db.slider.seq
	repo.db.slider.table[item.ID] = &item
	return item, nil
}

func (repo sliderRepository) QueryActiveItems(ctx context.Context) ([]slider.Item, error) {
	repo.db.slider.RLock()
	defer repo.db.slider.RUnlock()

	items := make([]slider.Item, 0)
	for _, item := range repo.db.slider.table {
		if item.IsActive {
			items = append(items, *item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].SortOrder != items[j].SortOrder {
			return items[i].SortOrder < items[j].SortOrder
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (repo sliderRepository) QueryActiveItemsByContentType(ctx context.Context, contentType string) ([]slider.Item, error) {
	repo.db.slider.RLock()
	defer repo.db.slider.RUnlock()

	items := make([]slider.Item, 0)
	for _, item := range repo.db.slider.table {
		if item.IsActive && item.ContentType == contentType {
			items = append(items, *item)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].SortOrder < items[j].SortOrder })
	return items, nil
}

func (repo sliderRepository) GetActiveItem(ctx context.Context, id int) (slider.Item, error) {
	repo.db.slider.RLock()
	defer repo.db.slider.RUnlock()

	if item, ok := repo.db.slider.table[id]; ok && item.IsActive {
		return *item, nil
	}
	return slider.Item{}, slider.ErrNotFound
}

func (repo sliderRepository) GetItem(ctx context.Context, id int) (slider.Item, error) {
	repo.db.slider.RLock()
	defer repo.db.slider.RUnlock()

	if item, ok := repo.db.slider.table[id]; ok {
		return *item, nil
	}
	return slider.Item{}, slider.ErrNotFound
}

func (repo sliderRepository) UpdateItem(ctx context.Context, item slider.Item) (slider.Item, error) {
	repo.db.slider.Lock()
	defer repo.db.slider.Unlock()

	if _, ok := repo.db.slider.table[item.ID]; !ok {
		return slider.Item{}, slider.ErrNotFound
	}
	repo.db.slider.table[item.ID] = &item
	return item, nil
}

func (repo sliderRepository) DeactivateItem(ctx context.Context, id int) error {
	repo.db.slider.Lock()
	defer repo.db.slider.Unlock()

	item, ok := repo.db.slider.table[id]
	if !ok || !item.IsActive {
		return slider.ErrNotFound
	}
	item.IsActive = false
	item.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo sliderRepository) ReorderItems(ctx context.Context, updates []slider.SortUpdate) error {
	repo.db.slider.Lock()
	defer repo.db.slider.Unlock()

	// all-or-nothing: check every id before touching any row
	for _, upd := range updates {
		if _, ok := repo.db.slider.table[upd.ID]; !ok {
			return slider.ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, upd := range updates {
		item := repo.db.slider.table[upd.ID]
		item.SortOrder = upd.SortOrder
		item.UpdatedAt = now
	}
	return nil
}
