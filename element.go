package osmpbf

import "github.com/navio-go/osmpbf/internal/model"

// Node is a single OSM node: a coordinate plus tags.
type Node = model.Node

// Way is an ordered sequence of node id references plus tags.
type Way = model.Way

// Relation is an ordered sequence of Members plus tags.
type Relation = model.Relation

// ElementKind discriminates the variant held by an Element.
type ElementKind = model.ElementKind

const (
	KindNode     = model.KindNode
	KindWay      = model.KindWay
	KindRelation = model.KindRelation
	KindSentinel = model.KindSentinel
)

// Element is a tagged union of {Node, Way, Relation, Sentinel}. Sentinel is
// an internal boundary marker emitted by the parallel driver at the end of
// each blob's elements; it is never written to output and must be filtered
// by any caller that feeds a Writer or ParallelWriter.
type Element = model.Element

// NewNodeElement wraps n as an Element.
func NewNodeElement(n Node) Element { return model.NewNodeElement(n) }

// NewWayElement wraps w as an Element.
func NewWayElement(w Way) Element { return model.NewWayElement(w) }

// NewRelationElement wraps r as an Element.
func NewRelationElement(r Relation) Element { return model.NewRelationElement(r) }

// Sentinel is the shared boundary-marker Element value.
var Sentinel = model.SentinelElement

// IsSentinel reports whether e is the boundary marker rather than real
// data.
func IsSentinel(e Element) bool { return e.Kind == KindSentinel }
