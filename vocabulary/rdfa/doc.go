// Package rdfa provides the RDFa processor vocabulary and the initial
// context every conforming processor preloads: the diagnostic class IRIs
// used in processor graphs, and the prefix and term mappings of the W3C
// RDFa 1.1 initial context document.
//
// The initial context is compiled in rather than fetched: processing a
// document must not depend on the network.
package rdfa
