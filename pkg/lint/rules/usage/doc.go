// Package usage provides rules about calling library APIs correctly.
//
// Rules in this package:
//   - CC0002: ArgumentException parameter name must name a parameter
//   - CC0010: Constant regular expression patterns must compile
//   - CC0012: Rethrowing the caught exception loses its stack trace
//   - CC0029: Dispose must call GC.SuppressFinalize
//   - CC0061: Constant IPAddress.Parse arguments must be addresses
//   - CC0062: Constant Uri constructor arguments must be valid
//   - CC0090: XML documentation param tags must match the parameters
package usage
