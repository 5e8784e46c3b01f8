package slider

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
)

var ErrNotFound = errors.New("slider item not found")

const uploadSubdir = "slider"

type (
	Repository interface {
		CreateItem(ctx context.Context, item Item) (Item, error)
		// QueryActiveItems returns active items ordered by
		// sort_order ASC, created_at DESC.
		QueryActiveItems(ctx context.Context) ([]Item, error)
		// QueryActiveItemsByContentType returns active items of the given
		// content type ordered by sort_order ASC.
		QueryActiveItemsByContentType(ctx context.Context, contentType string) ([]Item, error)
		GetActiveItem(ctx context.Context, id int) (Item, error)
		GetItem(ctx context.Context, id int) (Item, error)
		UpdateItem(ctx context.Context, item Item) (Item, error)
		DeactivateItem(ctx context.Context, id int) error
		ReorderItems(ctx context.Context, updates []SortUpdate) error
	}

	Service struct {
		repo   Repository
		files  core.FileStore
		logger core.Logger
	}
)

func NewService(repo Repository, files core.FileStore, logger core.Logger) *Service {
	return &Service{repo: repo, files: files, logger: logger}
}

func (svc *Service) List(ctx context.Context) ([]Item, error) {
	return svc.repo.QueryActiveItems(ctx)
}

func (svc *Service) ListByContentType(ctx context.Context, contentType string) ([]Item, error) {
	return svc.repo.QueryActiveItemsByContentType(ctx, core.CleanString(contentType, true /* lower */))
}

func (svc *Service) Get(ctx context.Context, id int) (Item, error) {
	return svc.repo.GetActiveItem(ctx, id)
}

func (svc *Service) Create(ctx context.Context, ni NewItem, file *multipart.FileHeader) (Item, error) {
	if err := ni.Validate(); err != nil {
		return Item{}, err
	}
	if file == nil {
		return Item{}, core.NewValidationError(
			errors.New("file is required"),
			core.FieldError{Field: "file", Error: "file is required"},
		)
	}
	if err := MediaUpload.Check(file); err != nil {
		return Item{}, err
	}

	filePath, err := svc.files.Save(file, uploadSubdir, "slider")
	if err != nil {
		return Item{}, errors.Wrap(err, "saving slider file")
	}

	now := time.Now().UTC()
	item := Item{
		Title:       ni.Title,
		Description: ni.Description,
		FilePath:    filePath,
		FileType:    strings.ToLower(filepath.Ext(file.Filename)),
		ContentType: ni.ContentType,
		SortOrder:   ni.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateItem(ctx, item)
}

func (svc *Service) Update(ctx context.Context, id int, ui UpdateItem, file *multipart.FileHeader) (Item, error) {
	if err := ui.Validate(); err != nil {
		return Item{}, err
	}

	orig, err := svc.repo.GetItem(ctx, id)
	if err != nil {
		return Item{}, err
	}

	filePath, fileType := orig.FilePath, orig.FileType
	if file != nil {
		if err = MediaUpload.Check(file); err != nil {
			return Item{}, err
		}
		if filePath, err = svc.files.Save(file, uploadSubdir, "slider"); err != nil {
			return Item{}, errors.Wrap(err, "saving slider file")
		}
		fileType = strings.ToLower(filepath.Ext(file.Filename))
	}

	item := Item{
		ID:          orig.ID,
		Title:       ui.Title,
		Description: ui.Description,
		FilePath:    filePath,
		FileType:    fileType,
		ContentType: ui.ContentType,
		SortOrder:   ui.SortOrder,
		IsActive:    orig.IsActive,
		CreatedAt:   orig.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}
	updated, err := svc.repo.UpdateItem(ctx, item)
	if err != nil {
		return Item{}, err
	}

	if file != nil && orig.FilePath != "" {
		svc.removeFile(orig.FilePath)
	}
	return updated, nil
}

// Delete soft-deletes the item and removes its backing file from disk.
// The file is removed exactly once: a second delete fails with ErrNotFound
// before any disk access.
func (svc *Service) Delete(ctx context.Context, id int) error {
	item, err := svc.repo.GetActiveItem(ctx, id)
	if err != nil {
		return err
	}
	if err = svc.repo.DeactivateItem(ctx, id); err != nil {
		return err
	}
	if item.FilePath != "" {
		svc.removeFile(item.FilePath)
	}
	return nil
}

func (svc *Service) Reorder(ctx context.Context, updates []SortUpdate) error {
	for i := range updates {
		if err := core.Validate.Struct(&updates[i]); err != nil {
			return err
		}
	}
	return svc.repo.ReorderItems(ctx, updates)
}

func (svc *Service) removeFile(path string) {
	if err := svc.files.Remove(path); err != nil && svc.logger != nil {
		svc.logger.Warn(fmt.Sprintf("removing slider file %s: %v", path, err))
	}
}
