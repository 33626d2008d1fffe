// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"context"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// # Service Layer

// Service answers the label and dropdown lookups of the record pages.
type Service struct {
	repo          Repository
	defaultDomain string
}

// NewService constructs a new reference [Service]. defaultDomain is used when
// a page is requested without a domain.
func NewService(repo Repository, defaultDomain string) *Service {
	return &Service{repo: repo, defaultDomain: defaultDomain}
}

/*
Domain resolves a domain code, substituting the default for an empty code.

Returns:
  - *Domain: The resolved domain
  - error: apperr.NotFound for an unsupported code
*/
func (service *Service) Domain(context context.Context, code string) (*Domain, error) {
	if code == "" {
		code = service.defaultDomain
	}
	return service.repo.GetDomain(context, code)
}

// DefaultDomain returns the code used when none is supplied.
func (service *Service) DefaultDomain() string {
	return service.defaultDomain
}

/*
Counties lists the counties of a domain that existed in year. A zero year
lists all of them.
*/
func (service *Service) Counties(context context.Context, domain string, year int) ([]County, error) {
	if _, err := service.Domain(context, domain); err != nil {
		return nil, err
	}

	counties, err := service.repo.ListCounties(context, domain)
	if err != nil {
		return nil, err
	}

	existing := make([]County, 0, len(counties))
	for _, county := range counties {
		if county.ExistedIn(year) {
			existing = append(existing, county)
		}
	}
	return existing, nil
}

/*
CountyName returns the display name of a county code.

Returns:
  - string: The county name
  - error: apperr.NotFound if the domain has no such county
*/
func (service *Service) CountyName(context context.Context, domain, code string) (string, error) {
	counties, err := service.repo.ListCounties(context, domain)
	if err != nil {
		return "", err
	}
	for _, county := range counties {
		if county.Code == code {
			return county.Name, nil
		}
	}
	return "", apperr.NotFound("County " + code)
}

/*
Townships lists the townships of a county.
*/
func (service *Service) Townships(context context.Context, domain, county string) ([]Township, error) {
	if _, err := service.CountyName(context, domain, county); err != nil {
		return nil, err
	}
	return service.repo.ListTownships(context, domain, county)
}
