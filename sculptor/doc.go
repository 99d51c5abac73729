// Package sculptor implements composable filter values for bun queries.
//
// A Sculptor carves a Predicate out of a query context. A nil Predicate means
// "no constraint" and disappears when composed with And or Or, while
// Builder.Conjunction is an explicit condition that matches every row.
// Sculptors hold no state, so one value can be shared between goroutines and
// combined any number of times.
package sculptor
