// Package finding provides the diagnostic types shared by every part of
// dotnetgate.
//
// This package contains type definitions only. All other internal packages
// import finding; finding imports nothing internal. This keeps it the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Diagnostics are immutable once produced.
//   - Line numbers are 1-based; 0 means the finding applies to the whole file.
//   - A Report derives its Decision; the decision is never stored separately.
package finding
