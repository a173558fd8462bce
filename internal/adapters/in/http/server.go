// Package http exposes the order lifecycle and tracking operations over an
// echo HTTP server. Handlers translate requests into commands, queries, and
// edit sessions; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"expressia/internal/core/application/usecases/commands"
	"expressia/internal/core/application/usecases/editing"
	"expressia/internal/core/application/usecases/queries"
	"expressia/internal/core/domain/model/kernel"
	"expressia/internal/core/domain/model/order"
	"expressia/internal/core/domain/model/tracking"
	"expressia/internal/core/ports"
	"expressia/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON error payload returned by every failing handler.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Index   int    `json:"index,omitempty"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler    commands.CreateOrderCommandHandler
	overrideStatusHandler commands.OverrideStatusCommandHandler

	// Query handlers
	getAllOrdersHandler  queries.GetAllOrdersQueryHandler
	trackOrderHandler    queries.TrackOrderQueryHandler
	exportHistoryHandler queries.ExportHistoryQueryHandler

	// Edit session dependencies; every tracking update runs a fresh session
	uowFactory editing.OrderUoWFactory
	bus        ports.ChangeBus
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	overrideStatusHandler commands.OverrideStatusCommandHandler,
	getAllOrdersHandler queries.GetAllOrdersQueryHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	exportHistoryHandler queries.ExportHistoryQueryHandler,
	uowFactory editing.OrderUoWFactory,
	bus ports.ChangeBus,
) *Server {
	return &Server{
		createOrderHandler:    createOrderHandler,
		overrideStatusHandler: overrideStatusHandler,
		getAllOrdersHandler:   getAllOrdersHandler,
		trackOrderHandler:     trackOrderHandler,
		exportHistoryHandler:  exportHistoryHandler,
		uowFactory:            uowFactory,
		bus:                   bus,
	}
}

// RegisterRoutes attaches all handlers to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.POST("/api/v1/orders", s.CreateOrder)
	e.GET("/api/v1/orders", s.GetOrders)
	e.PUT("/api/v1/orders/:id/status", s.OverrideStatus)
	e.PUT("/api/v1/orders/:id/tracking", s.UpdateTracking)
	e.GET("/api/v1/orders/history/export", s.ExportHistory)
	e.GET("/api/v1/tracking/:orderNumber", s.TrackOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// NewOrder is the request body for order creation.
type NewOrder struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Weight      float64 `json:"weight"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Modality    string  `json:"modality"`
	Description string  `json:"description"`
	OwnerName   string  `json:"ownerName"`
	OwnerEmail  string  `json:"ownerEmail"`
}

// CreatedOrder is the response body for a successful order creation.
type CreatedOrder struct {
	OrderNumber string  `json:"orderNumber"`
	Cost        float64 `json:"cost"`
}

// CreateOrder handles POST /api/v1/orders - registers a new shipment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	modality, err := order.ModalityFromString(newOrder.Modality)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	var owner *order.Owner
	if newOrder.OwnerName != "" || newOrder.OwnerEmail != "" {
		owner = &order.Owner{Name: newOrder.OwnerName, Email: newOrder.OwnerEmail}
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		newOrder.Origin,
		newOrder.Destination,
		newOrder.Weight,
		order.Dimensions{Length: newOrder.Length, Width: newOrder.Width, Height: newOrder.Height},
		modality,
		newOrder.Description,
		owner,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, CreatedOrder{
		OrderNumber: result.OrderNumber,
		Cost:        result.Cost,
	})
}

// OrderSummary is the list representation of one order.
type OrderSummary struct {
	ID          string  `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	OwnerName   string  `json:"ownerName,omitempty"`
	OwnerEmail  string  `json:"ownerEmail,omitempty"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	Cost        float64 `json:"cost"`
	Weight      float64 `json:"weight"`
	Modality    string  `json:"modality"`
	Description string  `json:"description,omitempty"`
}

// GetOrders handles GET /api/v1/orders - the admin listing with optional
// search and status filters.
func (s *Server) GetOrders(ctx echo.Context) error {
	query, err := queries.NewGetAllOrdersQuery(
		ctx.QueryParam("search"),
		ctx.QueryParam("status"),
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid filter: " + err.Error(),
		})
	}

	orders, err := s.getAllOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	response := make([]OrderSummary, len(orders))
	for i, o := range orders {
		response[i] = OrderSummary{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			OwnerName:   o.OwnerName,
			OwnerEmail:  o.OwnerEmail,
			Origin:      o.Origin,
			Destination: o.Destination,
			Status:      o.Status,
			Date:        o.Date.Format("2006-01-02"),
			Cost:        o.Cost,
			Weight:      o.Weight,
			Modality:    o.Modality,
			Description: o.Description,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StatusOverride is the request body for a direct status override.
type StatusOverride struct {
	Status string `json:"status"`
}

// OverrideStatus handles PUT /api/v1/orders/:id/status - sets the coarse
// status directly without touching the timeline.
func (s *Server) OverrideStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body StatusOverride
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	cmd, err := commands.NewOverrideStatusCommand(orderID, status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid override: " + err.Error(),
		})
	}

	if err = s.overrideStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to override status",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MilestonePatch mutates one milestone of the draft. Fields left nil are
// untouched; Completed toggles apply after the field edits.
type MilestonePatch struct {
	Index     int     `json:"index"`
	Location  *string `json:"location,omitempty"`
	Date      *string `json:"date,omitempty"`
	Time      *string `json:"time,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// TrackingUpdate is the request body for a timeline edit.
type TrackingUpdate struct {
	Patches []MilestonePatch `json:"patches"`
}

// UpdateTracking handles PUT /api/v1/orders/:id/tracking - runs one edit
// session over the order's timeline: open, apply the patches to the draft,
// commit through the chronology gate. A rejected commit leaves the order
// untouched and reports the offending milestone.
func (s *Server) UpdateTracking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var body TrackingUpdate
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	session := editing.NewSession(s.uowFactory, s.bus)
	if err = session.Open(ctx.Request().Context(), orderID); err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, order.ErrOrderDelivered):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Tracking of a delivered order cannot be edited",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to open edit session",
			})
		}
	}

	if err = applyPatches(session, body.Patches); err != nil {
		session.Cancel()
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid patch: " + err.Error(),
		})
	}

	if err = session.Commit(ctx.Request().Context()); err != nil {
		session.Cancel()

		var violation *editing.ChronologyViolationError
		if errors.As(err, &violation) {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: violation.Message,
				Index:   violation.Index,
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to commit tracking update",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

func applyPatches(session *editing.Session, patches []MilestonePatch) error {
	for _, p := range patches {
		if p.Location != nil {
			if err := session.UpdateField(p.Index, tracking.FieldLocation, *p.Location); err != nil {
				return err
			}
		}
		if p.Date != nil {
			if err := session.UpdateField(p.Index, tracking.FieldDate, *p.Date); err != nil {
				return err
			}
		}
		if p.Time != nil {
			if err := session.UpdateField(p.Index, tracking.FieldTime, *p.Time); err != nil {
				return err
			}
		}
	}

	// completion toggles run after field edits so a cascade cannot be undone
	// by a later field write
	for _, p := range patches {
		if p.Completed != nil {
			if err := session.ToggleCompleted(p.Index, *p.Completed); err != nil {
				return err
			}
		}
	}

	return nil
}

// TrackedMilestone is the display form of one milestone.
type TrackedMilestone struct {
	Stage     string `json:"stage"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Completed bool   `json:"completed"`
}

// TrackingInfo is the tracking projection returned to viewers.
type TrackingInfo struct {
	OrderNumber       string             `json:"orderNumber"`
	Status            string             `json:"status"`
	StatusLabel       string             `json:"statusLabel"`
	Origin            string             `json:"origin"`
	Destination       string             `json:"destination"`
	CurrentLocation   string             `json:"currentLocation"`
	EstimatedDelivery string             `json:"estimatedDelivery"`
	Progress          int                `json:"progress"`
	Timeline          []TrackedMilestone `json:"timeline"`
}

// TrackOrder handles GET /api/v1/tracking/:orderNumber - the public tracking
// view keyed by order number.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("orderNumber"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order number",
		})
	}

	info, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Número no encontrado",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to track order",
		})
	}

	timeline := make([]TrackedMilestone, len(info.Timeline))
	for i, m := range info.Timeline {
		timeline[i] = TrackedMilestone{
			Stage:     m.Stage,
			Location:  m.Location,
			Date:      m.Date,
			Time:      m.Time,
			Completed: m.Completed,
		}
	}

	return ctx.JSON(http.StatusOK, TrackingInfo{
		OrderNumber:       info.OrderNumber,
		Status:            info.Status,
		StatusLabel:       info.StatusLabel,
		Origin:            info.Origin,
		Destination:       info.Destination,
		CurrentLocation:   info.CurrentLocation,
		EstimatedDelivery: info.EstimatedDelivery,
		Progress:          info.Progress,
		Timeline:          timeline,
	})
}

// ExportHistory handles GET /api/v1/orders/history/export - downloads the
// audit log as a plain-text report.
func (s *Server) ExportHistory(ctx echo.Context) error {
	report, err := s.exportHistoryHandler.Handle(ctx.Request().Context(), queries.NewExportHistoryQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to export history",
		})
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+report.FileName+`"`)
	return ctx.Blob(http.StatusOK, "text/plain; charset=utf-8", []byte(report.Content))
}
