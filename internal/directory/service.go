package directory

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	orderNewestFirst = "created_at DESC"
	whereID          = "id = ?"
)

// Service is the directory of permissions, roles and their assignments.
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService creates a new directory service.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:  db,
		now: time.Now,
	}
}

func (s *Service) session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// nameTaken reports whether another row of model already uses name.
func nameTaken(tx *gorm.DB, model interface{}, name, excludeID string) (bool, error) {
	var count int64

	q := tx.Model(model).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	if err := q.Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// uniqueIDs drops blanks and repeats, keeping the first occurrence order.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// normalizeDescription maps an empty description to NULL.
func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}

	v := *d

	return &v
}
