// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/maps"

	"gitlab.com/fisherprime/orgchart/types"
)

// REF: https://www.geeksforgeeks.org/generic-tree-level-order-traversal

type (
	// Forest holds the reporting hierarchy resolved from a flat list of employee records.
	//
	// Synchronization is unnecessary, a Forest is rebuilt wholesale & only read afterwards.
	Forest struct {
		// Roots holds employees without a (resolvable) manager, sorted by name.
		Roots List `json:"roots"`

		// Unassigned holds employees whose manager is absent from the dataset, sorted by name.
		Unassigned []Employee `json:"unassigned"`

		// Duplicates holds records repeating an already seen identifier.
		Duplicates []Employee `json:"duplicates,omitempty"`

		ParentOf   ParentIndex `json:"parentOf"`
		ChildrenOf ChildIndex  `json:"childrenOf"`

		cfg *Config

		// nodes is the arena; relationships are held by the indices.
		nodes map[string]*Node
	}

	// ParentIndex maps a child's identifier to its parent's.
	ParentIndex map[string]string

	// ChildIndex maps a parent's identifier to its ordered children's.
	ChildIndex map[string]types.IDList

	// TraverseComm defines a channel to communicate info between Forest operations & it's callers.
	TraverseComm struct {
		node     *Node
		err      error
		newPeers bool
	}
)

const traverseBufferSize = 10

// Errors encountered when querying a Forest.
var (
	ErrNotFound = errors.New("not found")

	ErrNoLeaves   = errors.New("lacks leaves")
	ErrNoChildren = errors.New("lacks children")
)

// config retrieves the Forest's Config, the default one for a Forest not made by a Builder.
func (f *Forest) config() *Config {
	if f.cfg == nil {
		return DefConfig()
	}

	return f.cfg
}

// Node retrieves the walked Node.
func (t TraverseComm) Node() *Node { return t.node }

// NewPeers reports whether the Node starts a new level.
func (t TraverseComm) NewPeers() bool { return t.newPeers }

// Err retrieves the walk error, if any.
func (t TraverseComm) Err() error { return t.err }

// Len is the number of nodes reachable from the roots.
func (f *Forest) Len(ctx context.Context) (count int) {
	traverseChan := make(chan TraverseComm, traverseBufferSize)
	go f.Walk(ctx, traverseChan)

	for resl := range traverseChan {
		if resl.err != nil {
			continue
		}
		count++
	}

	return
}

// Locate searches for an identifier & returns it's Node.
//
// Unassigned employees & their reports are located too.
func (f *Forest) Locate(id string) (node *Node, err error) {
	node, ok := f.nodes[id]
	if !ok {
		err = fmt.Errorf("(%s) %w", id, ErrNotFound)
	}

	return
}

// ParentTo returns the parent Node for some node identified by its id.
//
// Value is nil for roots & unassigned employees.
func (f *Forest) ParentTo(childID string) (parent *Node, err error) {
	if _, err = f.Locate(childID); err != nil {
		return
	}

	parentID, ok := f.ParentOf[childID]
	if !ok {
		return
	}

	return f.Locate(parentID)
}

// Descendants lists the direct & indirect reports of some node, breadth-first.
//
// Visited nodes are skipped, the walk terminates on cyclic indices.
func (f *Forest) Descendants(ctx context.Context, id string) (descendants List, err error) {
	if _, err = f.Locate(id); err != nil {
		return
	}

	descendants = make(List, 0)
	visited := types.NewIDSet(id)
	queue := f.ChildrenOf[id].Clone()

	var front string
	for len(queue) > 0 {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}

		front, queue = queue[0], queue[1:]
		if visited.Has(front) {
			continue
		}
		visited.Add(front)

		node, ok := f.nodes[front]
		if !ok {
			continue
		}
		descendants = append(descendants, node)
		queue = append(queue, f.ChildrenOf[front]...)
	}

	if len(descendants) < 1 {
		err = fmt.Errorf("(%s) %w", id, ErrNoChildren)
	}

	return
}

// ByLevel lists the nodes reachable from the roots by level, the roots being the first.
func (f *Forest) ByLevel(ctx context.Context) (levels LevelList, err error) {
	levels = make(LevelList, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	go f.Walk(ctx, traverseChan)

	var peers List
	for resl := range traverseChan {
		if err = resl.err; err != nil {
			return
		}

		if !resl.newPeers {
			peers = append(peers, resl.node)
			continue
		}

		if len(peers) > 0 {
			levels = append(levels, peers)
		}
		peers = List{resl.node}
	}

	if len(peers) > 0 {
		levels = append(levels, peers)
	}

	if cfg := f.config(); cfg.Debug {
		cfg.Logger.Debugf("walked: %+v", levels.IDs())
	}

	return
}

// Leaves returns the terminal nodes reachable from the roots, in level order.
func (f *Forest) Leaves(ctx context.Context) (leaves List, err error) {
	leaves = make(List, 0)
	traverseChan := make(chan TraverseComm, traverseBufferSize)

	go f.Walk(ctx, traverseChan)

	for resl := range traverseChan {
		if err = resl.err; err != nil {
			return
		}

		if resl.node.Leaf() {
			leaves = append(leaves, resl.node)
		}
	}

	if len(leaves) < 1 {
		err = ErrNoLeaves
	}

	return
}

// Unreachable lists the identifiers of assigned employees that can't be reached from a root,
// sorted.
//
// These are members of a manager cycle & the reports of cycle members or unassigned employees.
func (f *Forest) Unreachable(ctx context.Context) (ids types.IDList, err error) {
	remaining := types.NewIDSet(maps.Keys(f.nodes)...)
	for _, e := range f.Unassigned {
		delete(remaining, e.ID)
	}

	traverseChan := make(chan TraverseComm, traverseBufferSize)
	go f.Walk(ctx, traverseChan)

	for resl := range traverseChan {
		if err = resl.err; err != nil {
			return
		}
		delete(remaining, resl.node.ID)
	}

	return remaining.Values(), nil
}

// Highlight resolves the highlight set for a hovered node, see ResolveHighlight.
func (f *Forest) Highlight(hoveredID string) Highlight {
	return ResolveHighlight(hoveredID, f.ParentOf, f.ChildrenOf)
}

// Walk performs breadth-first traversal across the Forest's roots, pushing its nodes to its channel
// argument.
//
// A context.Context is used to terminate the walk operation, the cancellation is sent as the last
// message.
func (f *Forest) Walk(ctx context.Context, traverseChan chan TraverseComm) {
	defer close(traverseChan)

	if f == nil {
		return
	}

	// Level order traversal.
	queue := make(List, len(f.Roots))
	copy(queue, f.Roots)

	// Use a var for front to ensure the outer scope queue is modified.
	var front *Node

	for {
		queueLen := len(queue)
		if queueLen < 1 {
			break
		}

		// Iterate over the level's nodes.
		newPeers := true
		for queueLen > 0 {
			select {
			case <-ctx.Done():
				// Received context cancellation.
				traverseChan <- TraverseComm{err: ctx.Err()}
				return
			default:
			}

			// Pop from queue.
			front, queue = queue[0], queue[1:]
			queueLen--

			traverseChan <- TraverseComm{node: front, newPeers: newPeers}
			newPeers = false

			queue = append(queue, front.Children...)
		}
	}
}
