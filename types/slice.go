// SPDX-License-Identifier: MIT
package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// IDList is an ordered list of record identifiers.
	IDList []string
)

// Locate the index of a value in the IDList, -1 when absent.
func (l IDList) Locate(value string) (index int) {
	index = -1

	for i := range l {
		if l[i] == value {
			index = i
			return
		}
	}

	return
}

// Contains checks for the existence of a value.
func (l IDList) Contains(value string) bool { return l.Locate(value) > -1 }

// UniqueAppend to the IDList, skipping values already present.
func (l *IDList) UniqueAppend(values ...string) {
	for index := range values {
		if l.Contains(values[index]) {
			continue
		}

		*l = append(*l, values[index])
	}
}

// Sort the IDList in byte-wise order.
func (l IDList) Sort() { slices.Sort(l) }

// Clone returns a copy of the IDList; nil stays nil.
func (l IDList) Clone() IDList {
	if l == nil {
		return nil
	}

	return slices.Clone(l)
}

// String is the fmt.Stringer implementation for IDList.
func (l IDList) String() string { return "[" + strings.Join(l, ",") + "]" }
