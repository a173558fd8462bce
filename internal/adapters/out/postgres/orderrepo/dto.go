// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The timeline and the history are document-shaped and change as a whole with
// every commit, so they are stored as JSONB columns rather than normalized
// into child tables.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"uniqueIndex"`
	Origin      string
	Destination string
	Weight      float64
	DimLength   float64
	DimWidth    float64
	DimHeight   float64
	Modality    string
	Description string
	Cost        float64
	Date        time.Time
	Status      string `gorm:"index"`
	OwnerName   string
	OwnerEmail  string
	Timeline    []byte `gorm:"type:jsonb"`
	History     []byte `gorm:"type:jsonb"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// MilestoneDTO is the JSON shape of one timeline milestone. The stage label
// doubles as the persisted stage identity.
type MilestoneDTO struct {
	Stage     string `json:"stage"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// HistoryEventDTO is the JSON shape of one audit log entry. Snapshot is only
// set for tracking events.
type HistoryEventDTO struct {
	Type     string         `json:"type"`
	At       time.Time      `json:"at"`
	Value    string         `json:"value"`
	Snapshot []MilestoneDTO `json:"snapshot,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) (OrderDTO, error) {
	timeline, err := marshalTimeline(o.Timeline())
	if err != nil {
		return OrderDTO{}, err
	}

	history, err := marshalHistory(o.History())
	if err != nil {
		return OrderDTO{}, err
	}

	var ownerName, ownerEmail string
	if owner := o.Owner(); owner != nil {
		ownerName = owner.Name
		ownerEmail = owner.Email
	}

	dims := o.Dimensions()
	return OrderDTO{
		ID:          o.ID().Bytes(),
		OrderNumber: o.OrderNumber(),
		Origin:      o.Origin(),
		Destination: o.Destination(),
		Weight:      o.Weight(),
		DimLength:   dims.Length,
		DimWidth:    dims.Width,
		DimHeight:   dims.Height,
		Modality:    o.Modality().String(),
		Description: o.Description(),
		Cost:        o.Cost(),
		Date:        o.Date(),
		Status:      o.Status().String(),
		OwnerName:   ownerName,
		OwnerEmail:  ownerEmail,
		Timeline:    timeline,
		History:     history,
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including timeline and history using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	modality, err := order.ModalityFromString(dto.Modality)
	if err != nil {
		return nil, err
	}

	timeline, err := unmarshalTimeline(dto.Timeline)
	if err != nil {
		return nil, err
	}

	history, err := unmarshalHistory(dto.History)
	if err != nil {
		return nil, err
	}

	var owner *order.Owner
	if dto.OwnerName != "" || dto.OwnerEmail != "" {
		owner = &order.Owner{Name: dto.OwnerName, Email: dto.OwnerEmail}
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		dto.Origin,
		dto.Destination,
		dto.Weight,
		order.Dimensions{Length: dto.DimLength, Width: dto.DimWidth, Height: dto.DimHeight},
		modality,
		dto.Description,
		dto.Cost,
		dto.Date,
		status,
		owner,
		timeline,
		history,
	)
}

func marshalTimeline(timeline tracking.Timeline) ([]byte, error) {
	if timeline == nil {
		return nil, nil
	}
	return json.Marshal(timelineToDTO(timeline))
}

func unmarshalTimeline(raw []byte) (tracking.Timeline, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []MilestoneDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}
	return timelineFromDTO(dtos)
}

func marshalHistory(history []order.HistoryEvent) ([]byte, error) {
	if history == nil {
		return nil, nil
	}

	dtos := make([]HistoryEventDTO, 0, len(history))
	for _, e := range history {
		dtos = append(dtos, HistoryEventDTO{
			Type:     string(e.Type),
			At:       e.At,
			Value:    e.Value.String(),
			Snapshot: timelineToDTO(e.Snapshot),
		})
	}
	return json.Marshal(dtos)
}

func unmarshalHistory(raw []byte) ([]order.HistoryEvent, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var dtos []HistoryEventDTO
	if err := json.Unmarshal(raw, &dtos); err != nil {
		return nil, err
	}

	history := make([]order.HistoryEvent, 0, len(dtos))
	for _, dto := range dtos {
		value, err := order.StatusFromString(dto.Value)
		if err != nil {
			return nil, err
		}

		snapshot, err := timelineFromDTO(dto.Snapshot)
		if err != nil {
			return nil, err
		}

		history = append(history, order.HistoryEvent{
			Type:     order.HistoryEventType(dto.Type),
			At:       dto.At,
			Value:    value,
			Snapshot: snapshot,
		})
	}
	return history, nil
}

func timelineToDTO(timeline tracking.Timeline) []MilestoneDTO {
	if timeline == nil {
		return nil
	}

	dtos := make([]MilestoneDTO, 0, len(timeline))
	for _, m := range timeline {
		dtos = append(dtos, MilestoneDTO{
			Stage:     m.Stage.Label(),
			Location:  m.Location,
			Date:      m.Date,
			Time:      m.Time,
			Completed: m.Completed,
		})
	}
	return dtos
}

func timelineFromDTO(dtos []MilestoneDTO) (tracking.Timeline, error) {
	if dtos == nil {
		return nil, nil
	}

	timeline := make(tracking.Timeline, 0, len(dtos))
	for _, dto := range dtos {
		stage, err := tracking.StageFromLabel(dto.Stage)
		if err != nil {
			return nil, err
		}

		timeline = append(timeline, tracking.Milestone{
			Stage:     stage,
			Location:  dto.Location,
			Date:      dto.Date,
			Time:      dto.Time,
			Completed: dto.Completed,
		})
	}
	return timeline, nil
}
