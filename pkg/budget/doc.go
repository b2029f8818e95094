// Package budget contains the budget domain of the expense tracker: budgets
// with their periods and lifecycle, category allocations tracking spend,
// alerts raised when allocations cross thresholds, and spending limits.
//
// All amounts are exact decimals with at most two fractional digits. All
// instants are UTC.
//
// Aggregates record domain events while they are mutated. See the events
// package for how they reach consumers.
package budget
