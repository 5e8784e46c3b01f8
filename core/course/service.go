package course

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
)

var ErrNotFound = errors.New("course not found")

const uploadSubdir = "courses"

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		// QueryActiveCourses returns active courses ordered by
		// sort_order ASC, created_at DESC.
		QueryActiveCourses(ctx context.Context) ([]Course, error)
		GetActiveCourse(ctx context.Context, id int) (Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		// DeactivateCourse flips is_active off; ErrNotFound when no active row matches.
		DeactivateCourse(ctx context.Context, id int) error
		// ReorderCourses applies the whole batch in a single transaction;
		// an unknown id rolls everything back with ErrNotFound.
		ReorderCourses(ctx context.Context, updates []SortUpdate) error
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

func (svc *Service) List(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryActiveCourses(ctx)
}

func (svc *Service) Get(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetActiveCourse(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse, image *multipart.FileHeader) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	var imageURL string
	if image != nil {
		if err := ImageUpload.Check(image); err != nil {
			return Course{}, err
		}
		var err error
		if imageURL, err = svc.files.Save(image, uploadSubdir, "course"); err != nil {
			return Course{}, errors.Wrap(err, "saving course image")
		}
	}

	now := time.Now().UTC()
	crs := Course{
		Title:            nc.Title,
		Description:      nc.Description,
		Duration:         nc.Duration,
		Level:            nc.Level,
		Featured:         nc.Featured,
		ImageURL:         imageURL,
		RegistrationLink: nc.RegistrationLink,
		SortOrder:        nc.SortOrder,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return svc.repo.CreateCourse(ctx, crs)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse, image *multipart.FileHeader) (Course, error) {
	if err := uc.Validate(); err != nil {
		return Course{}, err
	}

	orig, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Course{}, err
	}

	imageURL := orig.ImageURL
	if image != nil {
		if err = ImageUpload.Check(image); err != nil {
			return Course{}, err
		}
		if imageURL, err = svc.files.Save(image, uploadSubdir, "course"); err != nil {
			return Course{}, errors.Wrap(err, "saving course image")
		}
	}

	crs := Course{
		ID:               orig.ID,
		Title:            uc.Title,
		Description:      uc.Description,
		Duration:         uc.Duration,
		Level:            uc.Level,
		Featured:         uc.Featured,
		ImageURL:         imageURL,
		RegistrationLink: uc.RegistrationLink,
		SortOrder:        uc.SortOrder,
		IsActive:         orig.IsActive,
		CreatedAt:        orig.CreatedAt,
		UpdatedAt:        time.Now().UTC(),
	}
	updated, err := svc.repo.UpdateCourse(ctx, crs)
	if err != nil {
		return Course{}, err
	}

	// the record already points at the new file; removal of the old one is best effort
	if image != nil && orig.ImageURL != "" {
		svc.removeFile(orig.ImageURL)
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeactivateCourse(ctx, id)
}

func (svc *Service) Reorder(ctx context.Context, updates []SortUpdate) error {
	for i := range updates {
		if err := core.Validate.Struct(&updates[i]); err != nil {
			return err
		}
	}
	return svc.repo.ReorderCourses(ctx, updates)
}

func (svc *Service) removeFile(path string) {
	if err := svc.files.Remove(path); err != nil && svc.logger != nil {
		svc.logger.Warn(fmt.Sprintf("removing course image %s: %v", path, err))
	}
}
