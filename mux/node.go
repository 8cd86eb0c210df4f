package mux

import (
	"log/slog"
	"strings"
)

// splatName is the variable name reserved for terminal catch-all segments.
const splatName = "*"

// node is a single trie node matching one path segment. Literal children are
// keyed by their segment text; each node holds at most one wildcard child,
// which is either a named path variable (":name") or a terminal catch-all
// ("*"). Inspectors are kept in insertion order, which is also their
// application order during dispatch.
type node[T any] struct {
	// segment is the raw registered segment text ("users", ":id", "*";
	// empty for the root).
	segment string

	// varName is empty for literal nodes, splatName for catch-all nodes,
	// and the variable name (without the leading colon) otherwise.
	varName string

	handler    Handler[T]
	inspectors []Inspector[T]

	children map[string]*node[T]
	wild     *node[T]
}

// isSplat reports whether the node is a terminal catch-all.
func (n *node[T]) isSplat() bool {
	return n.varName == splatName
}

// descend walks (and grows) the trie along the given segments, returning the
// terminal node for the path. Conflicting registrations are resolved
// best-effort and logged, never failed: a variable child introduced where a
// differently named one exists descends into the existing child, and segments
// following a catch-all are dropped.
func (n *node[T]) descend(segments []string, path string, log *slog.Logger) *node[T] {
	for i, seg := range segments {
		switch {
		case seg == splatName:
			if n.wild == nil {
				n.wild = &node[T]{segment: seg, varName: splatName}
			} else if !n.wild.isSplat() {
				log.Warn("catch-all registered where a named variable exists, existing name wins",
					"path", path, "existing", n.wild.varName)
			}
			n = n.wild
			if i < len(segments)-1 {
				// Catch-alls are terminal; anything after them cannot match.
				log.Warn("segments after catch-all are ignored", "path", path)
			}
			return n

		case len(seg) > 1 && seg[0] == ':':
			name := seg[1:]
			if n.wild == nil {
				if len(n.children) > 1 {
					log.Warn("variable segment registered alongside multiple literal siblings",
						"path", path, "segment", seg)
				}
				n.wild = &node[T]{segment: seg, varName: name}
			} else if n.wild.varName != name {
				log.Warn("conflicting variable name at this position, existing name wins",
					"path", path, "registered", name, "existing", n.wild.varName)
			}
			n = n.wild

		default:
			if n.children == nil {
				n.children = make(map[string]*node[T])
			}
			child, ok := n.children[seg]
			if !ok {
				child = &node[T]{segment: seg}
				n.children[seg] = child
			}
			n = child
		}
	}
	return n
}

// setHandler installs the handler on the node. A node holds at most one
// handler; later installations are discarded and the first stays
// authoritative.
func (n *node[T]) setHandler(h Handler[T], path string, log *slog.Logger) {
	if n.handler != nil {
		log.Warn("handler already registered for this path, keeping the first", "path", path)
		return
	}
	n.handler = h
}

// addInspector appends an inspector to the node's ordered list.
func (n *node[T]) addInspector(ins Inspector[T]) {
	n.inspectors = append(n.inspectors, ins)
}

// routes appends the pattern of every node reachable from n that carries a
// handler, rebuilding patterns from the raw registered segment text.
func (n *node[T]) routes(prefix string, out *[]string) {
	if n.handler != nil {
		pattern := prefix
		if pattern == "" {
			pattern = "/"
		}
		*out = append(*out, pattern)
	}
	for _, child := range n.children {
		child.routes(prefix+"/"+child.segment, out)
	}
	if n.wild != nil {
		n.wild.routes(prefix+"/"+n.wild.segment, out)
	}
}

// splitPath splits a path on "/" and drops the leading empty element produced
// by the initial slash. No other normalization is applied.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}
	return parts
}
