package models

import "time"

// SIEFile references an externally stored SIE accounting-export file.
// The service records metadata only; the file bytes never pass through it.
type SIEFile struct {
	ID          int64
	UserID      int64
	Filename    string
	StoragePath string
	Period      *string
	CreatedAt   time.Time
}
