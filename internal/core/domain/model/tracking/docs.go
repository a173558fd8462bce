// Package tracking provides domain entities and value objects for shipment
// timelines in the Expressia parcel tracking system.
//
// The package includes:
//   - Stage: An enumerated milestone identity with a fixed canonical total order
//   - Milestone: One stage of a shipment with location, date/time, and completion flag
//   - Timeline: The ordered milestone sequence of one order
//   - Draft: A mutable working copy of a timeline used by the timeline editor
//
// Key business rules:
//   - Timelines follow the canonical stage order; edits change milestone
//     location, date, time, and completion but never reorder or rename stages
//   - Completed flags form a monotonic prefix: clearing a milestone clears
//     every later milestone as well
//   - A milestone time is either a clock time or the sentinel "Estimado",
//     meaning the time is not yet known
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package tracking
