// Package services provides domain services for the Expressia parcel tracking
// system: business logic that spans the order aggregate and its timeline
// without naturally belonging to either.
//
// The package includes:
//   - TimelineBuilder: synthesizes the default milestone sequence for orders
//     whose timeline has not been materialized yet
//   - ChronologyValidator: checks a milestone sequence for date/time
//     monotonicity and reports the first offending step
//   - StatusDeriver: maps a timeline (plus cancellation stickiness) to the
//     coarse order status
//   - CostCalculator: the deterministic shipping cost estimate formula
//
// All services are pure: the same inputs always produce the same outputs,
// which keeps builder/deriver agreement and validator determinism testable.
package services
