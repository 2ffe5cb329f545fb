// SPDX-License-Identifier: MIT
package types

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// IDSet is an unordered set of record identifiers.
	IDSet map[string]struct{}
)

// NewIDSet instantiates an IDSet holding values.
func NewIDSet(values ...string) IDSet {
	s := make(IDSet, len(values))
	s.Add(values...)

	return s
}

// Add values to the IDSet.
func (s IDSet) Add(values ...string) {
	for index := range values {
		s[values[index]] = struct{}{}
	}
}

// Has checks for the existence of a value.
func (s IDSet) Has(value string) (ok bool) {
	_, ok = s[value]
	return
}

// Len is the number of values in the IDSet.
func (s IDSet) Len() int { return len(s) }

// Values returns the IDSet's members in byte-wise order.
func (s IDSet) Values() IDList {
	values := IDList(maps.Keys(s))
	slices.Sort(values)

	return values
}
