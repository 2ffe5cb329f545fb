// SPDX-License-Identifier: MIT
package orgchart

import (
	"strings"

	"golang.org/x/exp/slices"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// nameOrder sorts by locale-aware name comparison.
//
// A collate.Collator is not safe for concurrent use; instantiate one per build.
type nameOrder struct {
	c *collate.Collator
}

func newNameOrder(tag language.Tag) *nameOrder { return &nameOrder{c: collate.New(tag)} }

// compare orders by collated name, then by raw name for collation-equal names, then by id.
func (o *nameOrder) compare(a, b Employee) int {
	if r := o.c.CompareString(a.Name, b.Name); r != 0 {
		return r
	}
	if r := strings.Compare(a.Name, b.Name); r != 0 {
		return r
	}

	return strings.Compare(a.ID, b.ID)
}

func (o *nameOrder) sortNodes(l List) {
	slices.SortFunc(l, func(x, y *Node) int { return o.compare(x.Employee, y.Employee) })
}

func (o *nameOrder) sortEmployees(l []Employee) {
	slices.SortFunc(l, o.compare)
}
