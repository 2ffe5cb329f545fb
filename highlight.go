// SPDX-License-Identifier: MIT
package orgchart

import "gitlab.com/fisherprime/orgchart/types"

// Highlight holds the nodes to emphasize while a node is hovered: the node, its ancestors & its
// descendants.
//
// The zero value is the neutral state; nothing is highlighted nor dimmed.
type Highlight struct {
	hoveredID string
	ids       types.IDSet
}

// ResolveHighlight computes the highlight set for hoveredID from a Forest's indices.
//
// An empty hoveredID means nothing is hovered. Both walks track visited identifiers, cyclic indices
// can't stall the resolution.
func ResolveHighlight(hoveredID string, parentOf ParentIndex, childrenOf ChildIndex) (h Highlight) {
	if hoveredID == "" {
		return
	}

	h = Highlight{hoveredID: hoveredID, ids: types.NewIDSet(hoveredID)}

	// Ancestors.
	current := hoveredID
	for {
		parentID, ok := parentOf[current]
		if !ok || h.ids.Has(parentID) {
			break
		}

		h.ids.Add(parentID)
		current = parentID
	}

	// Descendants, tracked apart from the ancestors.
	visited := types.NewIDSet(hoveredID)
	stack := childrenOf[hoveredID].Clone()

	var top string
	for len(stack) > 0 {
		top, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if visited.Has(top) {
			continue
		}

		visited.Add(top)
		h.ids.Add(top)
		stack = append(stack, childrenOf[top]...)
	}

	return
}

// HoveredID retrieves the hovered node's identifier, empty when nothing is hovered.
func (h Highlight) HoveredID() string { return h.hoveredID }

// Active reports whether a node is hovered.
func (h Highlight) Active() bool { return h.hoveredID != "" }

// Highlighted reports whether a node should be emphasized.
func (h Highlight) Highlighted(id string) bool { return h.Active() && h.ids.Has(id) }

// Dimmed reports whether a node should be de-emphasized.
func (h Highlight) Dimmed(id string) bool { return h.Active() && !h.ids.Has(id) }

// Len is the size of the highlight set.
func (h Highlight) Len() int { return len(h.ids) }

// IDs lists the highlight set, sorted.
func (h Highlight) IDs() types.IDList { return h.ids.Values() }
