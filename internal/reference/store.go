// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "context"

// # Reference Data Access

// Repository defines the read-only data access contract for reference rows.
type Repository interface {

	/*
		GetDomain fetches a domain by its code.

		Returns:
		  - *Domain: The hydrated domain
		  - error: ErrNotFound if the code is unknown
	*/
	GetDomain(context context.Context, code string) (*Domain, error)

	/*
		ListCounties retrieves the counties of a domain ordered by name.
	*/
	ListCounties(context context.Context, domain string) ([]County, error)

	/*
		ListTownships retrieves the townships of a county ordered by name.
	*/
	ListTownships(context context.Context, domain, county string) ([]Township, error)
}
