// Package models defines the core domain models for Snapledger.
//
// # Models
//
//   - User: a registered account, identified by username. Owns receipts.
//   - Receipt: one uploaded receipt with its monetary totals and line items.
//   - ExpenseItem: a single line item on a receipt.
//
// # Ownership
//
// Ownership is strictly hierarchical: User -> Receipt -> ExpenseItem. An
// expense item belongs to exactly one receipt and never outlives it; a
// receipt belongs to exactly one user and may only be read or mutated by
// that user.
//
// # Design principles
//
//  1. **Explicit ownership**: a receipt carries its full item set whenever it
//     is loaded for mutation, since every mutation recomputes the aggregate
//     total from the items.
//  2. **Avoid circular references**: models reference each other by ID
//     strings, never by pointers.
//  3. **Derived totals**: Receipt.TotalAmount is derived state. After any
//     item mutation it equals sum(quantity * price) - discount and is
//     persisted in the same transaction as the mutation that invalidated it.
package models
