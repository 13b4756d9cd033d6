// Package design provides rules about the structure of types and members.
//
// Rules in this package:
//   - CC0003: Catch clauses should name the exception type
//   - CC0016: Copy delegates to a local before invoking them
//   - CC0024: Static constructors should not throw
package design
