// Package storemetarepo persists the order store's side-channel state: the
// revision counter bumped by every collection save and the one-time seed
// flag. Both live in a small key-value table so they travel in the same
// transaction as the collection itself.
package storemetarepo

const (
	revisionKey = "orders_revision"
	seededKey   = "orders_seeded"
)

// StoreMetaDTO represents one key-value row of store metadata.
type StoreMetaDTO struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// TableName specifies the database table name for store metadata.
func (StoreMetaDTO) TableName() string {
	return "store_meta"
}
