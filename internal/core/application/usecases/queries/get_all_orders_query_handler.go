package queries

import (
	"context"

	"expressia/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAllOrdersQueryHandler retrieves order list read models from the
// database. Uses direct SQL for read performance in the CQRS pattern; the
// timeline and history columns are intentionally not loaded here.
type GetAllOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAllOrdersQueryHandler creates a handler for order list queries.
func NewGetAllOrdersQueryHandler(db *gorm.DB) GetAllOrdersQueryHandler {
	return GetAllOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by creation date descending
// so the newest orders come first.
func (h GetAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAllOrdersQuery,
) ([]GetAllOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	pattern := "%" + query.Search() + "%"
	orders := make([]GetAllOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			owner_name,
			owner_email,
			origin,
			destination,
			status,
			date,
			cost,
			weight,
			modality,
			description
		FROM orders
		WHERE (? = '' OR status = ?)
		  AND (? = '' OR order_number ILIKE ? OR owner_name ILIKE ?)
		ORDER BY date DESC, order_number
	`, query.Status(), query.Status(), query.Search(), pattern, pattern).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderResp GetAllOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&orderResp.OrderNumber,
			&orderResp.OwnerName,
			&orderResp.OwnerEmail,
			&orderResp.Origin,
			&orderResp.Destination,
			&orderResp.Status,
			&orderResp.Date,
			&orderResp.Cost,
			&orderResp.Weight,
			&orderResp.Modality,
			&orderResp.Description,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		orderResp.ID = orderID
		orders = append(orders, orderResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
