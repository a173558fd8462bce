package storemetarepo

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"
)

// GormStoreMetaRepository implements StoreMeta using GORM.
type GormStoreMetaRepository struct {
	db *gorm.DB
}

// NewGormStoreMetaRepository creates a new GORM store metadata repository.
func NewGormStoreMetaRepository(db *gorm.DB) *GormStoreMetaRepository {
	return &GormStoreMetaRepository{db: db}
}

// Revision returns the current revision counter. A store that has never been
// saved reports revision 0.
func (r *GormStoreMetaRepository) Revision(ctx context.Context) (int64, error) {
	value, err := r.get(ctx, revisionKey)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}

	revision, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}
	return revision, nil
}

// Seeded reports whether the demo dataset has ever been written.
func (r *GormStoreMetaRepository) Seeded(ctx context.Context) (bool, error) {
	value, err := r.get(ctx, seededKey)
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

// MarkSeeded sets the one-time seed flag.
func (r *GormStoreMetaRepository) MarkSeeded(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO store_meta (key, value) VALUES (?, '1')
		ON CONFLICT (key) DO UPDATE SET value = '1'
	`, seededKey).Error
}

func (r *GormStoreMetaRepository) get(ctx context.Context, key string) (string, error) {
	var dto StoreMetaDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return dto.Value, nil
}
