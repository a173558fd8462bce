package orderrepo

import (
	"context"
	"errors"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
//
// The order collection is persisted as a whole: SaveAll replaces the entire
// table content and bumps the revision counter in one transaction, so
// concurrent writers are last-writer-wins at collection granularity.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetAll retrieves the full order collection sorted by creation date.
// Rows that cannot be restored into a valid aggregate are skipped rather
// than failing the whole read; a corrupt record must not take down every
// viewer of the collection.
func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.db.WithContext(ctx).Order("date, order_number").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			continue
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// SaveAll replaces the persisted collection with the given orders and
// increments the orders_revision counter. Meant to run inside a transaction
// so readers never observe a partially replaced collection.
func (r *GormOrderRepository) SaveAll(ctx context.Context, orders []*order.Order) error {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return err
		}
		dto, err := fromDomain(o)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}

	db := r.db.WithContext(ctx)
	if err := db.Exec(`DELETE FROM orders`).Error; err != nil {
		return err
	}
	if len(dtos) > 0 {
		if err := db.Create(&dtos).Error; err != nil {
			return err
		}
	}

	err := db.Exec(`
		INSERT INTO store_meta (key, value) VALUES ('orders_revision', '1')
		ON CONFLICT (key) DO UPDATE SET value = (store_meta.value::bigint + 1)::text
	`).Error
	if err != nil {
		return err
	}

	for _, o := range orders {
		r.tracker.TrackAggregate(o.ID(), o)
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its public order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	if orderNumber == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderNumber", orderNumber)
		}
		return nil, err
	}

	return toDomain(dto)
}

// Count reports how many orders are persisted.
func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
