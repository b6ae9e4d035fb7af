// Package rules provides the built-in lint rules for marklint.
//
// # Rule Domains
//
//   - Whitespace and layout:
//
//   - MD009: no-trailing-spaces - Lines should not have trailing spaces
//
//   - MD010: no-hard-tabs - Hard tabs should not be used
//
//   - MD012: no-multiple-blanks - Multiple consecutive blank lines
//
//   - MD013: line-length - Line length should not exceed a maximum
//
//   - Headings:
//
//   - MD001: heading-increment - Heading levels should only increment by one
//
//   - MD025: single-h1 - Multiple top-level headings in the same document
//
//   - MD063: heading-capitalization - Consistent heading capitalization (opt-in)
//
//   - Blocks:
//
//   - MD035: hr-style - Horizontal rule style should be consistent
//
//   - MD040: fenced-code-language - Fenced code blocks should declare a language
//
//   - Spelling:
//
//   - MD044: proper-names - Proper names should use canonical capitalization
//
// # Rule Construction
//
// Every rule is registered as a (name, constructor) pair. Constructors bind
// rule options from the configuration once; the engine reconstructs the
// catalog whenever the effective configuration changes, for example under
// per-file overrides. The heading-capitalization rule reads the
// proper-names rule's name list at construction so the two rules share one
// vocabulary instead of querying each other at runtime.
//
// # Checking and Fixing
//
// Rules implement Check against the analyzed document and, when fixable,
// attach byte-range edits to their warnings. ShouldSkip implementations are
// cheap substring prefilters that run before any regular expression work.
package rules
