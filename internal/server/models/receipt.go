package models

import "time"

// Receipt references an externally stored proof-of-purchase document.
type Receipt struct {
	ID          int64
	UserID      int64
	Filename    string
	StoragePath string
	Note        *string
	CreatedAt   time.Time
}
