// Package internet is the interaction-net runtime: a symmetric,
// local-rewrite alternative to the graph runtime (internal/graphrt) over
// the same erased term language. Every node has exactly one principal
// port and two auxiliary ports; a redex is a pair of nodes whose
// principal ports are linked to each other, and firing it never touches
// anything outside that pair's immediate neighborhood.
//
// NOD is the constructor/duplicator agent used for both Lam and App:
// beta reduction is the ordinary NOD(0)/NOD(0) annihilation case. A
// uniquely labelled NOD fans a value out to more than one use site (a
// variable used more than once, or a reference shared across call
// sites); meeting a differently labelled NOD duplicates it. OP1, OP2,
// and ITE carry the kernel's numeric primitives; VAL is a nullary agent
// standing in for a machine-word literal at a port.
package internet
