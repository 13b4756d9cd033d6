// Package style provides rules about how code reads.
//
// Rules in this package:
//   - CC0013: if/else returning in both branches can be a conditional expression
//   - CC0014: if/else assigning the same target can be a conditional expression
//   - CC0037: Commented-out code should be removed
//   - CC0038: Members returning a single expression can be expression-bodied
//   - CC0049: Comparisons with a boolean constant are redundant
package style
