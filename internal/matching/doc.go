// Package matching implements the route pattern language of the gateway.
//
// A pattern is a sequence of /-separated segments. A segment is a literal
// (matched verbatim), a single-segment wildcard "*" (matches exactly one
// path segment), or a multi-segment wildcard "**" (matches one or more
// consecutive segments). Patterns compile to anchored regular expressions
// with one capture group per wildcard, plus a specificity score used to
// order routes: fewer wildcards sort first and are tried first.
//
// The package also provides the method filter applied before a handler
// runs, and the rewriter that substitutes a matched path through a
// replacement template using the pattern's own capture groups.
package matching
