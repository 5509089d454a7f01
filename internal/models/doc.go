// Package models defines the core domain models for FlatFlow.
//
// # Entities
//
// All entities are scoped to a single household ("flat") via FlatID:
//   - Member: a flatmate, with a split weight and an active flag
//   - Expense: a one-off shared cost, split equally among participants
//   - Bill: a recurring obligation (rent, utilities) with a monthly due day
//   - BillPayment: a partial or full payment against one bill
//   - Settlement: a direct peer-to-peer payment clearing outstanding debt
//
// # Derived views
//
// MemberBalance, SimplifiedDebt and MemberReliabilityScore are never
// persisted. They are recomputed from the entity lists on every call and
// discarded after use; the calculator package owns their construction.
//
// # Design principles
//
//  1. Entities are immutable value records; the calculator never mutates
//     its inputs.
//  2. Relationships use ID strings rather than pointers, avoiding circular
//     references.
//  3. Enumerations are closed typed-string constants so category handling
//     can be exhaustive instead of falling through to a default.
package models
