package models

import "time"

// Company is a business profile owned by a user. A user may register any
// number of companies; only CompanyName is required.
type Company struct {
	ID              int64
	UserID          int64
	CompanyName     string
	OrgNumber       *string
	Address         *string
	PostalCode      *string
	City            *string
	Country         *string
	VatNumber       *string
	FiscalYearStart *string
	FiscalYearEnd   *string
	CreatedAt       time.Time
}
