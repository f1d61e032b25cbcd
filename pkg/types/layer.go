package types

import "errors"

// Layer identifies one of the four ordered resource roots. Precedence is
// fixed: core < org < custom < runtime. A higher-precedence layer's
// same-named resource shadows a lower-precedence one in the resolved view
// without deleting it from disk.
// Implements: prd001-layered-resolution R1.
type Layer string

const (
	LayerCore    Layer = "core"
	LayerOrg     Layer = "org"
	LayerCustom  Layer = "custom"
	LayerRuntime Layer = "runtime"
)

// Layers lists all layers in ascending precedence order. Precedence is a
// first-class constant, not a side effect of directory iteration
// (prd001-layered-resolution R1.2).
var Layers = []Layer{LayerCore, LayerOrg, LayerCustom, LayerRuntime}

// layerRank maps each layer to its position in the precedence order.
var layerRank = map[Layer]int{
	LayerCore:    0,
	LayerOrg:     1,
	LayerCustom:  2,
	LayerRuntime: 3,
}

// Layer errors.
var (
	ErrUnknownLayer = errors.New("unknown layer")
)

// Precedence returns the layer's rank in the precedence order, with core
// lowest. Unknown layers rank below core.
func (l Layer) Precedence() int {
	rank, ok := layerRank[l]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether l is one of the four defined layers.
func (l Layer) Valid() bool {
	_, ok := layerRank[l]
	return ok
}

// Shadows reports whether a resource in layer l hides a same-named resource
// in layer other within a resolved view.
func (l Layer) Shadows(other Layer) bool {
	return l.Precedence() > other.Precedence()
}

// ParseLayer converts a layer name to a Layer.
// Returns ErrUnknownLayer for anything outside the fixed set.
func ParseLayer(s string) (Layer, error) {
	l := Layer(s)
	if !l.Valid() {
		return "", ErrUnknownLayer
	}
	return l, nil
}
