// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// REF: https://www.geeksforgeeks.org/serialize-deserialize-n-ary-tree

type (
	// SerializeConfig defines the markers of the Forest's serialization output.
	SerializeConfig struct {
		EndMarker rune
		Splitter  rune
	}

	// SerializeOption defines the SerializeConfig functional option type.
	SerializeOption func(*SerializeConfig)
)

const (
	// DefaultEndMarker a rune indicating the end of a node's children.
	DefaultEndMarker = ')'

	// DefaultSplitter is the character used to split the serialization output.
	DefaultSplitter = ','

	emptyRune rune = 0

	outlineIndent = "  "
)

// Outline prefixes.
const (
	markHighlighted = "* "
	markDimmed      = ". "
	markNeutral     = "  "
)

// WithEndMarker configures the end marker option.
func WithEndMarker(r rune) SerializeOption {
	return func(c *SerializeConfig) { c.EndMarker = r }
}

// WithSplitter configures the splitter option.
func WithSplitter(r rune) SerializeOption {
	return func(c *SerializeConfig) { c.Splitter = r }
}

// Validate populates missing SerializeConfig entries with defaults.
func (c *SerializeConfig) Validate() {
	if c.EndMarker == emptyRune {
		c.EndMarker = DefaultEndMarker
	}
	if c.Splitter == emptyRune {
		c.Splitter = DefaultSplitter
	}
}

// Serialize transforms the Forest into a string of pre-order identifiers; a node's children are
// closed by the end marker & the roots are split like siblings.
//
// The roots "a" (reports "b" & "c") & "d" yield: a,b),c)),d).
func (f *Forest) Serialize(ctx context.Context, options ...SerializeOption) (output string, err error) {
	cfg := &SerializeConfig{}
	for _, opt := range options {
		opt(cfg)
	}
	cfg.Validate()

	serChan := make(chan string)
	go func() {
		defer close(serChan)

		for _, root := range f.Roots {
			select {
			case <-ctx.Done():
				return
			default:
				root.serialize(ctx, cfg, serChan)
			}
		}
	}()

	var (
		buffer strings.Builder
		first  = true
	)
	for value := range serChan {
		if !first && value != string(cfg.EndMarker) {
			buffer.WriteRune(cfg.Splitter)
		}
		buffer.WriteString(value)
		first = false
	}

	if err = ctx.Err(); err != nil {
		// Invalidate serialization output.
		return
	}
	output = buffer.String()

	return
}

// serialize performs the serialization grunt work.
//
// Children are already sorted by the Builder, the output is deterministic.
func (n *Node) serialize(ctx context.Context, cfg *SerializeConfig, serChan chan string) {
	serChan <- n.ID

	for _, child := range n.Children {
		select {
		case <-ctx.Done():
			// NOTE: context error captured in [Forest.Serialize].
			return
		default:
			child.serialize(ctx, cfg, serChan)
		}
	}
	serChan <- string(cfg.EndMarker)
}

// Outline writes an indented rendering of the Forest to w, followed by the unassigned employees &
// their reports.
//
// With an active Highlight, emphasized nodes are marked "*" & dimmed ones ".".
func (f *Forest) Outline(ctx context.Context, w io.Writer, h Highlight) (err error) {
	for _, root := range f.Roots {
		if err = f.outline(ctx, w, h, root, 0); err != nil {
			return
		}
	}

	if len(f.Unassigned) < 1 {
		return
	}

	if _, err = fmt.Fprintln(w, "unassigned:"); err != nil {
		return
	}
	for _, e := range f.Unassigned {
		var node *Node
		if node, err = f.Locate(e.ID); err != nil {
			return
		}

		if _, err = fmt.Fprintf(w, "%s%s%s -> %s (missing)\n", mark(h, e.ID), outlineIndent, e, e.managerID()); err != nil {
			return
		}
		for _, child := range node.Children {
			if err = f.outline(ctx, w, h, child, 2); err != nil {
				return
			}
		}
	}

	return
}

// outline writes a node & its reports; the Builder guarantees nodes below a root or an unassigned
// employee are acyclic.
func (f *Forest) outline(ctx context.Context, w io.Writer, h Highlight, node *Node, depth int) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	if _, err = fmt.Fprintf(w, "%s%s%s\n", mark(h, node.ID), strings.Repeat(outlineIndent, depth), node.Employee); err != nil {
		return
	}

	for _, child := range node.Children {
		if err = f.outline(ctx, w, h, child, depth+1); err != nil {
			return
		}
	}

	return
}

func mark(h Highlight, id string) string {
	switch {
	case h.Highlighted(id):
		return markHighlighted
	case h.Dimmed(id):
		return markDimmed
	default:
		return markNeutral
	}
}
