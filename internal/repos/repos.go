// Package repos holds the persistence layer: one repository per entity plus
// the relationship repositories for client/industry assignments and group
// memberships. Repositories receive their database handle and logger
// explicitly; nothing in this package reaches for globals.
package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a row addressed by id (or another unique key)
// does not exist.
var ErrNotFound = errors.New("record not found")

// wrapNotFound converts gorm's sentinel so callers only ever test against
// ErrNotFound.
func wrapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// mergeUpdatedAt copies the partial fields and stamps a fresh updated_at
// over whatever the caller supplied. Every update goes through it.
func mergeUpdatedAt(fields map[string]any) map[string]any {
	merged := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["updated_at"] = time.Now().UTC()
	return merged
}

// updateByID applies the merged fields to the row matching id.
// A missing row reports ErrNotFound.
func updateByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, fields map[string]any) error {
	res := db.WithContext(ctx).Model(model).Where("id = ?", id).Updates(mergeUpdatedAt(fields))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ensureID fills a fresh uuid when the caller left the id zero.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
