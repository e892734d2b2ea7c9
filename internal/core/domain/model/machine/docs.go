// Package machine provides the machine registry aggregate: a physical
// production machine with its operational status, its current order claim,
// and its maintenance history.
//
// The package includes:
//   - Machine: the aggregate root managing claim/release and maintenance
//   - Status: a state machine over Available, Busy, Running, Maintenance,
//     and Error
//   - MaintenanceRecord: an append-only maintenance log entry
//
// Key business rules:
//   - Only an Available machine with no current order can be claimed
//   - A claim is released only for the order that holds it
//   - Maintenance cannot start while an order claim is open
//   - Maintenance completes only from the Maintenance status
//   - Direct status overrides are forbidden while claimed, except Error
package machine
