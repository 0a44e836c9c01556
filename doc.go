// Package texpr parses a LaTeX-like math notation into a syntax tree.
//
// The grammar covers the arithmetic operators = + - * / ^, postfix !,
// grouping with (), {} and \left( \right), implicit multiplication, and a
// fixed command vocabulary: \pi and \e; \sin, \cos, \tan, \ln, \log, \exp;
// \frac{}{}, \sqrt{}, \cdot, \times, \div; and \operatorname{name}(...) for
// max, min, atan2, hypot and abs. Integer literals and literal \frac
// fractions stay exact rationals in the tree; other literals are float64.
//
// Trees are flat arenas of nodes addressed by NodeID, so consumers can walk
// or transform them without pointer chasing. An arbitrary-precision
// evaluator over the tree is included.
package texpr
