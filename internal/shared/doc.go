// Package shared holds utilities used across the explorer that do not
// belong to any one domain layer.
//
// The testutil subpackage provides the buffered slog handler the rest
// of the codebase uses to assert on log output in tests. Keep this
// package free of business logic and of dependencies on other internal
// packages.
package shared
