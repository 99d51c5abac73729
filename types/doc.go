// Package types provides the value objects shared by the repository layer:
// paging windows, sort descriptors, page requests and pagination results.
package types
