package distill

import (
	"github.com/c360studio/semdistill/config"
	"github.com/c360studio/semdistill/dom"
	"github.com/c360studio/semdistill/host"
	"github.com/c360studio/semdistill/rdf"
	"github.com/c360studio/semdistill/state"
)

// relevantAttributes are the attributes that make an element worth full
// processing; anything else just passes the evaluation context through.
var relevantAttributes = []string{
	"href", "resource", "about", "property",
	"rel", "rev", "typeof", "src", "vocab", "prefix",
}

type pendDir uint8

const (
	pendForward pendDir = iota
	pendReverse
	pendList
)

// pending is an incomplete triple: a predicate waiting for a
// descendant to supply the missing subject or object.
type pending struct {
	pred rdf.IRI
	dir  pendDir
}

// evaluation is the context a parent hands to its children: the
// subjects established so far and the incomplete triples the child may
// complete. owner is the context whose list scope pending list entries
// belong to.
type evaluation struct {
	subject rdf.Term
	object  rdf.Term
	pending []pending
	owner   *state.Context
}

// walker emits triples for one document tree.
type walker struct {
	graph *rdf.Graph
	opts  *config.Options
	root  *dom.Node
}

// run processes the whole tree below (and including) root. rootState
// must be the already constructed root context.
func (w *walker) run(rootState *state.Context) {
	w.process(w.root, rootState, evaluation{subject: rdf.IRI(rootState.Base)})
}

func (w *walker) process(node *dom.Node, st *state.Context, ev evaluation) {
	// Host-language specific attribute mapping happens before anything
	// looks at the element.
	switch w.opts.HostLanguage {
	case host.HTML5, host.XHTML5:
		html5Extras(node)
	case host.Atom:
		atomEntryType(node)
	}

	// An element with no relevant markup passes everything through;
	// its context still matters for prefix and language scoping.
	if !hasAnyAttribute(node, relevantAttributes...) {
		for _, child := range node.Children {
			if child.Type != dom.ElementNode {
				continue
			}
			w.process(child, state.New(child, w.graph, st, "", nil), ev)
		}
		if st.OwnsList() && !st.ListEmpty() {
			w.closeListScope(st)
		}
		return
	}

	isRoot := node == w.root
	hasRelRev := node.HasAttribute("rel") || node.HasAttribute("rev")

	var newSubject, objectResource, typedResource rdf.Term
	var skip bool
	if st.Version.AtLeast(host.Version11) {
		newSubject, objectResource, typedResource, skip = w.findSubject11(node, st, ev, hasRelRev, isRoot)
	} else {
		newSubject, objectResource, skip = w.findSubject10(node, st, ev, hasRelRev, isRoot)
		if node.HasAttribute("typeof") {
			typedResource = newSubject
		}
	}

	if typedResource != nil {
		for _, t := range st.ResolveList("typeof") {
			w.graph.Add(typedResource, rdf.RDFType, t)
		}
	}

	// A subject of its own opens a fresh list scope.
	if st.Version.AtLeast(host.Version11) && newSubject != nil && newSubject != ev.object {
		st.ResetListMapping(newSubject)
	}

	inlist := st.Version.AtLeast(host.Version11) && node.HasAttribute("inlist")
	rels := onlyIRIs(st.ResolveList("rel"))
	revs := onlyIRIs(st.ResolveList("rev"))

	var localPending []pending
	if hasRelRev {
		if objectResource != nil {
			for _, p := range rels {
				if inlist {
					st.AddToList(p, objectResource)
				} else {
					w.graph.Add(newSubject, p, objectResource)
				}
			}
			for _, p := range revs {
				w.graph.Add(objectResource, p, newSubject)
			}
		} else {
			for _, p := range rels {
				if inlist {
					// Mark the list now so it closes even when no
					// descendant ever completes it.
					st.AddToList(p, nil)
					localPending = append(localPending, pending{pred: p, dir: pendList})
				} else {
					localPending = append(localPending, pending{pred: p, dir: pendForward})
				}
			}
			for _, p := range revs {
				localPending = append(localPending, pending{pred: p, dir: pendReverse})
			}
		}
	}

	descend := true
	if node.HasAttribute("property") {
		descend = w.processProperty(node, st, newSubject, typedResource, hasRelRev, inlist)
	}

	// Complete the triples the parent left open.
	if !skip && newSubject != nil {
		for _, p := range ev.pending {
			switch p.dir {
			case pendForward:
				w.graph.Add(ev.subject, p.pred, newSubject)
			case pendReverse:
				w.graph.Add(newSubject, p.pred, ev.subject)
			case pendList:
				ev.owner.AddToList(p.pred, newSubject)
			}
		}
	}

	if descend {
		childEv := ev
		if !skip {
			childObject := objectResource
			if childObject == nil {
				childObject = newSubject
			}
			childEv = evaluation{
				subject: newSubject,
				object:  childObject,
				pending: localPending,
				owner:   st,
			}
		}
		for _, child := range node.Children {
			if child.Type != dom.ElementNode {
				continue
			}
			w.process(child, state.New(child, w.graph, st, "", nil), childEv)
		}
	}

	if st.OwnsList() && !st.ListEmpty() {
		w.closeListScope(st)
	}
}

// findSubject11 establishes the subject, object resource, and typed
// resource for an element under the RDFa 1.1 rules.
func (w *walker) findSubject11(node *dom.Node, st *state.Context, ev evaluation, hasRelRev, isRoot bool) (subj, objectResource, typed rdf.Term, skip bool) {
	if !hasRelRev {
		if node.HasAttribute("property") && !node.HasAttribute("content") && !node.HasAttribute("datatype") {
			// @property alone keeps the subject stable so chained
			// typeof hangs off a fresh resource instead.
			subj = st.Resolve("about")
			if subj == nil && isRoot {
				subj = rdf.IRI(st.Base)
			}
			if subj == nil {
				subj = ev.object
			}
			if node.HasAttribute("typeof") {
				typed = st.Resolve("about")
				if typed == nil && isRoot {
					typed = rdf.IRI(st.Base)
				}
				if typed == nil {
					typed = st.ResolveFirst("resource", "href", "src")
					if typed == nil {
						typed = w.graph.NewBlankNode()
					}
					objectResource = typed
				}
			}
			return
		}

		subj = st.ResolveFirst("about", "resource", "href", "src")
		if subj == nil {
			switch {
			case isRoot:
				subj = rdf.IRI(st.Base)
			case node.HasAttribute("typeof"):
				subj = w.graph.NewBlankNode()
			default:
				subj = ev.object
				if !node.HasAttribute("property") {
					skip = true
				}
			}
		}
		if node.HasAttribute("typeof") {
			typed = subj
		}
		return
	}

	// @rel or @rev: the subject comes from @about (or the base at the
	// root) and the resource attributes name the object instead.
	subj = st.Resolve("about")
	if subj == nil && isRoot {
		subj = rdf.IRI(st.Base)
	}
	aboutLike := subj != nil
	if subj == nil {
		subj = ev.object
	}
	if node.HasAttribute("typeof") && aboutLike {
		typed = subj
	}

	objectResource = st.ResolveFirst("resource", "href", "src")
	if node.HasAttribute("typeof") && !aboutLike {
		if objectResource == nil {
			objectResource = w.graph.NewBlankNode()
		}
		typed = objectResource
	}
	return
}

// findSubject10 establishes the subject and object resource under the
// RDFa 1.0 rules, where @src sits on the subject side.
func (w *walker) findSubject10(node *dom.Node, st *state.Context, ev evaluation, hasRelRev, isRoot bool) (subj, objectResource rdf.Term, skip bool) {
	if !hasRelRev {
		subj = st.ResolveFirst("about", "src", "resource", "href")
		if subj == nil {
			switch {
			case isRoot:
				subj = rdf.IRI(st.Base)
			case node.HasAttribute("typeof"):
				subj = w.graph.NewBlankNode()
			default:
				subj = ev.object
				if !node.HasAttribute("property") {
					skip = true
				}
			}
		}
		return
	}

	subj = st.ResolveFirst("about", "src")
	if subj == nil {
		if isRoot {
			subj = rdf.IRI(st.Base)
		} else {
			subj = ev.object
		}
	}
	objectResource = st.ResolveFirst("resource", "href")
	return
}

// closeListScope materializes the collections accumulated in the scope
// st owns: one rdf:first/rdf:rest chain per predicate, ending in
// rdf:nil, hung off the scope's origin. Marker-only predicates close
// to an empty list.
func (w *walker) closeListScope(st *state.Context) {
	origin := st.ListOrigin()
	for _, prop := range st.ListProperties() {
		vals := st.ListValues(prop)
		if len(vals) == 0 {
			w.graph.Add(origin, prop, rdf.RDFNil)
			continue
		}
		head := rdf.Term(rdf.RDFNil)
		for i := len(vals) - 1; i >= 0; i-- {
			cell := w.graph.NewBlankNode()
			w.graph.Add(cell, rdf.RDFFirst, vals[i])
			w.graph.Add(cell, rdf.RDFRest, head)
			head = cell
		}
		w.graph.Add(origin, prop, head)
	}
}

func onlyIRIs(terms []rdf.Term) []rdf.IRI {
	var out []rdf.IRI
	for _, t := range terms {
		if iri, ok := t.(rdf.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}
