package utils

import (
	"github.com/google/uuid"
)

// NewStorageID mints the opaque identifier under which an attachment's bytes
// live in external storage.
func NewStorageID() string {
	return uuid.NewString()
}
