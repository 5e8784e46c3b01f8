package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/jltacademy/backend/core/webinar"
)

type webinarRepository struct {
	db *DB
}

var _ webinar.Repository = (*webinarRepository)(nil) // interface compliance check

func NewWebinarRepository(db *DB) *webinarRepository {
	return &webinarRepository{db: db}
}

func (repo webinarRepository) CreateWebinar(ctx context.Context, web webinar.Webinar) (webinar.Webinar, error) {
	repo.db.webinar.Lock()
	defer repo.db.webinar.Unlock()

	repo.db.webinar.seq++
	web.ID = repo.db.webinar.seq
	repo.db.webinar.table[web.ID] = &web
	return web, nil
}

func (repo webinarRepository) QueryActiveWebinars(ctx context.Context) ([]webinar.Webinar, error) {
	repo.db.webinar.RLock()
	defer repo.db.webinar.RUnlock()

	webinars := make([]webinar.Webinar, 0)
	for _, web := range repo.db.webinar.table {
		if web.IsActive {
			webinars = append(webinars, *web)
		}
	}
	sort.SliceStable(webinars, func(i, j int) bool {
		if webinars[i].SortOrder != webinars[j].SortOrder {
			return webinars[i].SortOrder < webinars[j].SortOrder
		}
		return webinars[i].Date > webinars[j].Date
	})
	return webinars, nil
}

func (repo webinarRepository) QueryActiveWebinarsByStatus(ctx context.Context, status string) ([]webinar.Webinar, error) {
	repo.db.webinar.RLock()
	defer repo.db.webinar.RUnlock()

	webinars := make([]webinar.Webinar, 0)
	for _, web := range repo.db.webinar.table {
		if web.IsActive && web.Status == status {
			webinars = append(webinars, *web)
		}
	}
	sort.SliceStable(webinars, func(i, j int) bool { return webinars[i].Date > webinars[j].Date })
	return webinars, nil
}

func (repo webinarRepository) GetActiveWebinar(ctx context.Context, id int) (webinar.Webinar, error) {
	repo.db.webinar.RLock()
	defer repo.db.webinar.RUnlock()

	if web, ok := repo.db.webinar.table[id]; ok && web.IsActive {
		return *web, nil
	}
	return webinar.Webinar{}, webinar.ErrNotFound
}

func (repo webinarRepository) GetWebinar(ctx context.Context, id int) (webinar.Webinar, error) {
	repo.db.webinar.RLock()
	defer repo.db.webinar.RUnlock()

	if web, ok := repo.db.webinar.table[id]; ok {
		return *web, nil
	}
	return webinar.Webinar{}, webinar.ErrNotFound
}

func (repo webinarRepository) UpdateWebinar(ctx context.Context, web webinar.Webinar) (webinar.Webinar, error) {
	repo.db.webinar.Lock()
	defer repo.db.webinar.Unlock()

	if _, ok := repo.db.webinar.table[web.ID]; !ok {
		return webinar.Webinar{}, webinar.ErrNotFound
	}
	repo.db.webinar.table[web.ID] = &web
	return web, nil
}

func (repo webinarRepository) DeactivateWebinar(ctx context.Context, id int) error {
	repo.db.webinar.Lock()
	defer repo.db.webinar.Unlock()

	web, ok := repo.db.webinar.table[id]
	if !ok || !web.IsActive {
		return webinar.ErrNotFound
	}
	web.IsActive = false
	web.UpdatedAt = time.Now().UTC()
	return nil
}

func (repo webinarRepository) ReorderWebinars(ctx context.Context, updates []webinar.SortUpdate) error {
	repo.db.webinar.Lock()
	defer repo.db.webinar.Unlock()

	// all-or-nothing: check every id before touching any row
	for _, upd := range updates {
		if _, ok := repo.db.webinar.table[upd.ID]; !ok {
			return webinar.ErrNotFound
		}
	}
	now := time.Now().UTC()
	for _, upd := range updates {
		web := repo.db.webinar.table[upd.ID]
		web.SortOrder = upd.SortOrder
		web.UpdatedAt = now
	}
	return nil
}
