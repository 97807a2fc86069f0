// Package models defines the core domain models for sitesettle.
//
// # Facts and views
//
// MaterialDebt is the only input fact: one site owes another for a material
// it consumed. Everything else is derived from or produced for it:
//   - Balance: all open debts from one site to another (a view, never stored)
//   - ReciprocalPair: two balances running in opposite directions (transient)
//   - Settlement: a bill from the creditor site to the debtor site (stored)
//   - NetOffset: audit record of two balances cancelled against each other (stored)
//   - Payment: one payment applied to a settlement (stored)
//
// # Money
//
// Amounts are decimal.Decimal and compared with a tolerance of one cent
// (Tolerance). Sites are identified by opaque string IDs.
package models
