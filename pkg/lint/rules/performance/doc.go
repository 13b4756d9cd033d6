// Package performance provides rules about code with avoidable runtime cost.
//
// Rules in this package:
//   - CC0025: Empty finalizers should be removed
package performance
