package webinar

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core"
)

var ErrNotFound = errors.New("webinar not found")

const uploadSubdir = "webinars"

type (
	Repository interface {
		CreateWebinar(ctx context.Context, web Webinar) (Webinar, error)
		// QueryActiveWebinars returns active webinars ordered by
		// sort_order ASC, date DESC.
		QueryActiveWebinars(ctx context.Context) ([]Webinar, error)
		// QueryActiveWebinarsByStatus returns active webinars with the given
		// status ordered by date DESC.
		QueryActiveWebinarsByStatus(ctx context.Context, status string) ([]Webinar, error)
		GetActiveWebinar(ctx context.Context, id int) (Webinar, error)
		GetWebinar(ctx context.Context, id int) (Webinar, error)
		UpdateWebinar(ctx context.Context, web Webinar) (Webinar, error)
		DeactivateWebinar(ctx context.Context, id int) error
		ReorderWebinars(ctx context.Context, updates []SortUpdate) error
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

func (svc *Service) List(ctx context.Context) ([]Webinar, error) {
	return svc.repo.QueryActiveWebinars(ctx)
}

func (svc *Service) ListByStatus(ctx context.Context, status string) ([]Webinar, error) {
	return svc.repo.QueryActiveWebinarsByStatus(ctx, core.CleanString(status, true /* lower */))
}

func (svc *Service) Get(ctx context.Context, id int) (Webinar, error) {
	return svc.repo.GetActiveWebinar(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nw NewWebinar, image, video *multipart.FileHeader) (Webinar, error) {
	if err := nw.Validate(); err != nil {
		return Webinar{}, err
	}

	imageURL, videoURL, err := svc.saveMedia(image, video)
	if err != nil {
		return Webinar{}, err
	}
	if videoURL == "" {
		// no upload: fall back to the externally hosted link, if any
		videoURL = nw.VideoURL
	}

	now := time.Now().UTC()
	web := Webinar{
		Title:            nw.Title,
		Description:      nw.Description,
		Date:             nw.Date,
		Time:             nw.Time,
		Duration:         nw.Duration,
		Attendees:        nw.Attendees,
		Status:           nw.Status,
		RegistrationLink: nw.RegistrationLink,
		VideoURL:         videoURL,
		ImageURL:         imageURL,
		SortOrder:        nw.SortOrder,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	return svc.repo.CreateWebinar(ctx, web)
}

func (svc *Service) Update(ctx context.Context, id int, uw UpdateWebinar, image, video *multipart.FileHeader) (Webinar, error) {
	if err := uw.Validate(); err != nil {
		return Webinar{}, err
	}

	orig, err := svc.repo.GetWebinar(ctx, id)
	if err != nil {
		return Webinar{}, err
	}

	imageURL, videoURL, err := svc.saveMedia(image, video)
	if err != nil {
		return Webinar{}, err
	}
	if imageURL == "" {
		imageURL = orig.ImageURL
	}
	if videoURL == "" {
		videoURL = orig.VideoURL
		if uw.VideoURL != "" {
			videoURL = uw.VideoURL
		}
	}

	web := Webinar{
		ID:               orig.ID,
		Title:            uw.Title,
		Description:      uw.Description,
		Date:             uw.Date,
		Time:             uw.Time,
		Duration:         uw.Duration,
		Attendees:        uw.Attendees,
		Status:           uw.Status,
		RegistrationLink: uw.RegistrationLink,
		VideoURL:         videoURL,
		ImageURL:         imageURL,
		SortOrder:        uw.SortOrder,
		IsActive:         orig.IsActive,
		CreatedAt:        orig.CreatedAt,
		UpdatedAt:        time.Now().UTC(),
	}
	updated, err := svc.repo.UpdateWebinar(ctx, web)
	if err != nil {
		return Webinar{}, err
	}

	if image != nil && orig.ImageURL != "" {
		svc.removeFile(orig.ImageURL)
	}
	if video != nil && orig.VideoURL != "" {
		svc.removeFile(orig.VideoURL)
	}
	return updated, nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeactivateWebinar(ctx, id)
}

func (svc *Service) Reorder(ctx context.Context, updates []SortUpdate) error {
	for i := range updates {
		if err := core.Validate.Struct(&updates[i]); err != nil {
			return err
		}
	}
	return svc.repo.ReorderWebinars(ctx, updates)
}

// saveMedia validates both uploads before writing either file.
func (svc *Service) saveMedia(image, video *multipart.FileHeader) (imageURL, videoURL string, err error) {
	if image != nil {
		if err = MediaUpload.Check(image); err != nil {
			return "", "", err
		}
	}
	if video != nil {
		if err = MediaUpload.Check(video); err != nil {
			return "", "", err
		}
	}
	if image != nil {
		if imageURL, err = svc.files.Save(image, uploadSubdir, "webinar"); err != nil {
			return "", "", errors.Wrap(err, "saving webinar image")
		}
	}
	if video != nil {
		if videoURL, err = svc.files.Save(video, uploadSubdir, "webinar"); err != nil {
			return "", "", errors.Wrap(err, "saving webinar video")
		}
	}
	return imageURL, videoURL, nil
}

func (svc *Service) removeFile(path string) {
	if err := svc.files.Remove(path); err != nil && svc.logger != nil {
		svc.logger.Warn(fmt.Sprintf("removing webinar media %s: %v", path, err))
	}
}
