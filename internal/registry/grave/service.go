// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grave

import (
	"context"
	"io"
	"log/slog"
	"regexp"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/upload"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var countyCode = regexp.MustCompile(`^[A-Za-z]{2,8}$`)

// ImageStore keeps the photographs of the stones. [upload.Store] implements it.
type ImageStore interface {
	Save(context context.Context, base string, file io.Reader) (string, error)
	Remove(name string) error
}

var _ ImageStore = (*upload.Store)(nil)

// # Service Layer

// Service loads, saves and lists grave markers and stores their images.
type Service struct {
	repo    Repository
	images  ImageStore
	metrics *metrics.Metrics
}

// NewService constructs a new grave [Service]. collector may be nil.
func NewService(repo Repository, images ImageStore, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, images: images, metrics: collector}
}

// View is what the detail page shows.
type View struct {
	Grave  *Grave
	Exists bool
}

// Load fetches a marker; a position that has not been transcribed yields an
// empty inscription.
func (service *Service) Load(context context.Context, key Key) (*View, error) {
	grave, err := service.repo.Get(context, key)
	switch {
	case apperr.IsNotFound(err):
		return &View{Grave: &Grave{Key: key}}, nil
	case err != nil:
		return nil, err
	}
	return &View{Grave: grave, Exists: true}, nil
}

func validateKey(validator *validate.Validator, key Key) {
	validator.
		DomainCode(FieldDomain, key.Domain).
		Matches(FieldCounty, key.County, countyCode, "a county abbreviation").
		Required(FieldTownship, key.Township).
		MaxLen(FieldTownship, key.Township, 64).
		Required(FieldCemetery, key.Cemetery).
		MaxLen(FieldCemetery, key.Cemetery, 128)
}

/*
Save validates and stores the inscription of a marker.

Returns:
  - error: ValidationError naming each bad field, or repository failures
*/
func (service *Service) Save(context context.Context, grave *Grave) error {
	validator := &validate.Validator{}
	validateKey(validator, grave.Key)
	validator.
		MaxLen(FieldSurname, grave.Surname, 64).
		MaxLen(FieldText, grave.Text, 4000)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Save(context, grave); err != nil {
		return err
	}

	service.metrics.IncrementWrite("grave", "save")
	ctxutil.GetLogger(context).InfoContext(context, "grave_updated",
		slog.String("grave", grave.Label()),
		slog.String("updated_by", grave.UpdatedBy),
	)
	return nil
}

/*
AddImage stores a photograph of the stone and records it on the marker.

The file is named after the key with the first free sequence number. When
the marker cannot record it, the stored file is removed again.

Returns:
  - string: The stored file name
  - error: ValidationError for a file that is not an image, TooLarge, or
    NotFound when the marker has not been transcribed
*/
func (service *Service) AddImage(context context.Context, key Key, file io.Reader) (string, error) {
	if _, err := service.repo.Get(context, key); err != nil {
		return "", err
	}

	name, err := service.images.Save(context, upload.Basename(key.ImageBase()...), file)
	if err != nil {
		return "", err
	}

	if err := service.repo.AddImage(context, key, name); err != nil {
		if removeErr := service.images.Remove(name); removeErr != nil {
			ctxutil.GetLogger(context).ErrorContext(context, "grave_image_cleanup_failed",
				slog.String("name", name),
				slog.Any("error", removeErr),
			)
		}
		return "", err
	}

	service.metrics.IncrementWrite("grave", "image")
	ctxutil.GetLogger(context).InfoContext(context, "grave_image_added",
		slog.String("grave", key.Label()),
		slog.String("name", name),
	)
	return name, nil
}

// Delete removes a marker and the files of its images.
func (service *Service) Delete(context context.Context, key Key) error {
	grave, err := service.repo.Get(context, key)
	if err != nil {
		return err
	}
	if err := service.repo.Delete(context, key); err != nil {
		return err
	}
	service.metrics.IncrementWrite("grave", "delete")
	ctxutil.GetLogger(context).WarnContext(context, "grave_deleted", slog.String("grave", key.Label()))

	for _, name := range grave.Images {
		if err := service.images.Remove(name); err != nil {
			ctxutil.GetLogger(context).ErrorContext(context, "grave_image_remove_failed",
				slog.String("name", name),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// Query lists one page of markers with the window it occupies.
func (service *Service) Query(context context.Context, filter Filter, page pagination.Params) ([]Grave, pagination.Window, error) {
	graves, total, err := service.repo.Query(context, filter, page)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return graves, page.Window(total), nil
}
