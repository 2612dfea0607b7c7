package state

import (
	"github.com/c360studio/semdistill/rdf"
)

// listMapping collects the values destined for RDF collections, keyed
// by predicate. The structure is shared by reference down the tree:
// descendants of the element that opened a list scope append to the
// same accumulator, and the opener materializes it once its subtree is
// done. Properties keep insertion order so generated collections are
// deterministic.
type listMapping struct {
	values map[rdf.IRI][]rdf.Term
	order  []rdf.IRI
	origin rdf.Term
}

func newListMapping() *listMapping {
	return &listMapping{values: map[rdf.IRI][]rdf.Term{}}
}

// ResetListMapping opens a fresh list scope owned by this context,
// hanging off origin. Descendant contexts inherit the new accumulator.
func (c *Context) ResetListMapping(origin rdf.Term) {
	c.listMapping = newListMapping()
	c.listMapping.origin = origin
	c.ownsList = true
}

// OwnsList reports whether this context opened the current list scope
// and is therefore responsible for materializing it.
func (c *Context) OwnsList() bool {
	return c.ownsList
}

// AddToList appends a value under prop in the current list scope. A
// nil value only marks the property as list-bearing without adding
// anything: a predicate that stays marker-only still closes to an
// empty list.
func (c *Context) AddToList(prop rdf.IRI, value rdf.Term) {
	lm := c.listMapping
	existing, ok := lm.values[prop]
	if !ok {
		lm.order = append(lm.order, prop)
		if value != nil {
			lm.values[prop] = []rdf.Term{value}
		} else {
			lm.values[prop] = nil
		}
		return
	}
	if value == nil {
		return
	}
	lm.values[prop] = append(existing, value)
}

// ListEmpty reports whether the current list scope holds no values.
func (c *Context) ListEmpty() bool {
	return len(c.listMapping.values) == 0
}

// ListProperties returns the predicates with pending list values, in
// the order they first appeared.
func (c *Context) ListProperties() []rdf.IRI {
	props := make([]rdf.IRI, len(c.listMapping.order))
	copy(props, c.listMapping.order)
	return props
}

// ListValues returns the values accumulated under prop, in insertion
// order. A marker-only property yields nil.
func (c *Context) ListValues(prop rdf.IRI) []rdf.Term {
	return c.listMapping.values[prop]
}

// SetListOrigin records the subject the materialized collections will
// hang off.
func (c *Context) SetListOrigin(origin rdf.Term) {
	c.listMapping.origin = origin
}

// ListOrigin returns the subject recorded for the current list scope,
// nil when none was set.
func (c *Context) ListOrigin() rdf.Term {
	return c.listMapping.origin
}
