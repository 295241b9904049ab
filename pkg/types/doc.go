// Package types defines the Store and TestDataTable interfaces, the TestData
// record, round-trip results, and standard error types for datebug.
// See docs/ARCHITECTURE.md § Interfaces.
package types
