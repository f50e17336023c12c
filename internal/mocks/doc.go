// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are reused across test packages. Each mock
// supports a per-method function override plus default return values, and
// tracks calls for verification.
package mocks
