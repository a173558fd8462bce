// Package order provides domain entities and business logic for parcel order
// management in the Expressia tracking system. It implements the Order
// aggregate root with lifecycle management and an append-only audit history.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, route, commercial
//     attributes, tracking timeline, and history
//   - Status: The coarse four-value lifecycle summary (pending, in-transit,
//     delivered, canceled)
//   - Modality: The service tier driving the cost estimate multiplier
//   - HistoryEvent: One entry of the append-only audit log
//   - Owner: The optional owning identity of an order
//
// Key business rules:
//   - Orders must have a valid unique identifier, an immutable order number,
//     a complete route, and a positive weight
//   - Orders are created pending with no timeline; timelines are materialized
//     lazily and at most once
//   - A delivered order's tracking is immutable
//   - Cancellation is sticky: it overrides any timeline-derived status
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
