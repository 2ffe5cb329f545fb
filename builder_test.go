// SPDX-License-Identifier: MIT
package orgchart

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"gitlab.com/fisherprime/orgchart/types"
)

func emp(id, name, managerID string) Employee {
	return Employee{ID: id, Name: name, ReportingManagerID: managerID}
}

func quietLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)

	return logger
}

// checkIndices asserts the parent & children indices are mutual inverses.
func checkIndices(t *testing.T, f *Forest) {
	t.Helper()

	for child, parent := range f.ParentOf {
		if !f.ChildrenOf[parent].Contains(child) {
			t.Errorf("ChildrenOf[%s] = %v, lacks %s", parent, f.ChildrenOf[parent], child)
		}
	}
	for parent, children := range f.ChildrenOf {
		for _, child := range children {
			if got := f.ParentOf[child]; got != parent {
				t.Errorf("ParentOf[%s] = %s, want %s", child, got, parent)
			}
		}
	}
}

func TestBuilder_Build(t *testing.T) {
	type want struct {
		roots      types.IDList
		unassigned []Employee
		parentOf   ParentIndex
		childrenOf ChildIndex
	}

	tests := []struct {
		name    string
		records []Employee
		want    want
	}{
		{
			name: "manager with reports",
			records: []Employee{
				emp("c", "Carol", "a"),
				emp("a", "Alice", ""),
				emp("b", "Bob", "a"),
			},
			want: want{
				roots:      types.IDList{"a"},
				unassigned: []Employee{},
				parentOf:   ParentIndex{"b": "a", "c": "a"},
				childrenOf: ChildIndex{"a": {"b", "c"}},
			},
		},
		{
			name:    "missing manager",
			records: []Employee{emp("x", "X", "missing")},
			want: want{
				roots:      types.IDList{},
				unassigned: []Employee{emp("x", "X", "missing")},
				parentOf:   ParentIndex{},
				childrenOf: ChildIndex{},
			},
		},
		{
			name:    "self reference",
			records: []Employee{emp("a", "", "a")},
			want: want{
				roots:      types.IDList{"a"},
				unassigned: []Employee{},
				parentOf:   ParentIndex{},
				childrenOf: ChildIndex{},
			},
		},
		{
			name:    "empty",
			records: nil,
			want: want{
				roots:      types.IDList{},
				unassigned: []Employee{},
				parentOf:   ParentIndex{},
				childrenOf: ChildIndex{},
			},
		},
		{
			name: "whitespace manager references",
			records: []Employee{
				emp("a", "Alice", "   "),
				emp("b", "Bob", " a\t"),
				emp("c", "Carol", " c "),
			},
			want: want{
				roots:      types.IDList{"a", "c"},
				unassigned: []Employee{},
				parentOf:   ParentIndex{"b": "a"},
				childrenOf: ChildIndex{"a": {"b"}},
			},
		},
		{
			name: "two node cycle",
			records: []Employee{
				emp("a", "A", "b"),
				emp("b", "B", "a"),
			},
			want: want{
				roots:      types.IDList{},
				unassigned: []Employee{},
				parentOf:   ParentIndex{"a": "b", "b": "a"},
				childrenOf: ChildIndex{"a": {"b"}, "b": {"a"}},
			},
		},
		{
			name: "report of an unassigned employee",
			records: []Employee{
				emp("y", "Yan", "x"),
				emp("x", "Xi", "gone"),
				emp("r", "Ray", ""),
			},
			want: want{
				roots:      types.IDList{"r"},
				unassigned: []Employee{emp("x", "Xi", "gone")},
				parentOf:   ParentIndex{"y": "x"},
				childrenOf: ChildIndex{"x": {"y"}},
			},
		},
		{
			name: "unassigned sorted by name",
			records: []Employee{
				emp("z", "Zoe", "nope"),
				emp("m", "Mia", "nada"),
			},
			want: want{
				roots:      types.IDList{},
				unassigned: []Employee{emp("m", "Mia", "nada"), emp("z", "Zoe", "nope")},
				parentOf:   ParentIndex{},
				childrenOf: ChildIndex{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBuilder(WithLogger(quietLogger()), WithDebug(true)).Build(Records(tt.records))

			if got := f.Roots.IDs(); !reflect.DeepEqual(got, tt.want.roots) {
				t.Errorf("Builder.Build() roots = %v, want %v", got, tt.want.roots)
			}
			if !reflect.DeepEqual(f.Unassigned, tt.want.unassigned) {
				t.Errorf("Builder.Build() unassigned = %v, want %v", f.Unassigned, tt.want.unassigned)
			}
			if !reflect.DeepEqual(f.ParentOf, tt.want.parentOf) {
				t.Errorf("Builder.Build() parentOf = %v, want %v", f.ParentOf, tt.want.parentOf)
			}
			if !reflect.DeepEqual(f.ChildrenOf, tt.want.childrenOf) {
				t.Errorf("Builder.Build() childrenOf = %v, want %v", f.ChildrenOf, tt.want.childrenOf)
			}
			checkIndices(t, f)
		})
	}
}

func TestBuilder_Build_localeOrder(t *testing.T) {
	records := []Employee{
		emp("boss", "Boss", ""),
		emp("z", "Zed", "boss"),
		emp("e2", "Eve", "boss"),
		emp("e1", "émile", "boss"),
		emp("a", "alice", "boss"),
		emp("s2", "Sam", "boss"),
		emp("s1", "Sam", "boss"),
	}

	f := NewBuilder(WithLocale(language.English)).Build(Records(records))

	want := types.IDList{"a", "e1", "e2", "s1", "s2", "z"}
	if got := f.ChildrenOf["boss"]; !reflect.DeepEqual(got, want) {
		t.Errorf("Builder.Build() children = %v, want %v", got, want)
	}
	if got := f.Roots[0].Children.IDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Builder.Build() node children = %v, want %v", got, want)
	}
}

func TestBuilder_Build_permutations(t *testing.T) {
	records := []Employee{
		emp("1", "Root", ""),
		emp("2", "Beth", "1"),
		emp("3", "Adam", "1"),
		emp("4", "Cleo", "3"),
		emp("5", "Abe", "3"),
		emp("6", "Other root", "6"),
	}
	const want = "6),1,3,5),4)),2))"

	var permute func(int)
	permute = func(k int) {
		if k == len(records) {
			f := BuildHierarchy(Records(records))

			got, err := f.Serialize(context.Background())
			if err != nil {
				t.Fatalf("Forest.Serialize() error = %v", err)
			}
			if got != want {
				t.Errorf("BuildHierarchy(%v) = %s, want %s", records, got, want)
			}
			return
		}

		for i := k; i < len(records); i++ {
			records[k], records[i] = records[i], records[k]
			permute(k + 1)
			records[k], records[i] = records[i], records[k]
		}
	}
	permute(0)
}

func TestBuilder_Build_completeness(t *testing.T) {
	records := []Employee{
		emp("ceo", "Ceo", ""),
		emp("cto", "Cto", "ceo"),
		emp("dev1", "Dev One", "cto"),
		emp("dev2", "Dev Two", "cto"),
		emp("cfo", "Cfo", "ceo"),
		emp("acc", "Accountant", "cfo"),
		emp("ext", "Contractor", "agency"),
		emp("self", "Founder", "self"),
	}

	f := BuildHierarchy(Records(records))

	if got := f.Len(context.Background()) + len(f.Unassigned); got != len(records) {
		t.Errorf("Forest.Len() + unassigned = %d, want %d", got, len(records))
	}
	for _, e := range f.Unassigned {
		if _, ok := f.ParentOf[e.ID]; ok {
			t.Errorf("unassigned (%s) has a parent", e.ID)
		}
	}
	checkIndices(t, f)

	seen := types.NewIDSet()
	var collect func(l List)
	collect = func(l List) {
		for _, node := range l {
			if seen.Has(node.ID) {
				t.Errorf("Builder.Build() placed (%s) more than once", node.ID)
				continue
			}
			seen.Add(node.ID)
			collect(node.Children)
		}
	}
	collect(f.Roots)

	for _, e := range f.Unassigned {
		if seen.Has(e.ID) {
			t.Errorf("unassigned (%s) is also in the tree", e.ID)
		}
		seen.Add(e.ID)
	}
	for _, e := range records {
		if !seen.Has(e.ID) {
			t.Errorf("Builder.Build() dropped (%s)", e.ID)
		}
	}
	if seen.Len() != len(records) {
		t.Errorf("Builder.Build() placed %d employees, want %d", seen.Len(), len(records))
	}
}

func TestBuilder_Build_nilRecords(t *testing.T) {
	tests := []struct {
		name      string
		records   []Record
		wantRoots types.IDList
	}{
		{
			name:      "nil employee pointer",
			records:   []Record{emp("a", "Alice", ""), (*Employee)(nil)},
			wantRoots: types.IDList{"a"},
		},
		{
			name:      "nil record",
			records:   []Record{nil, emp("b", "Bob", "a"), emp("a", "Alice", "")},
			wantRoots: types.IDList{"a"},
		},
		{
			name:      "nil custom record",
			records:   []Record{(*pointerRecord)(nil), nil},
			wantRoots: types.IDList{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewBuilder(WithLogger(quietLogger())).Build(tt.records)

			if got := f.Roots.IDs(); !reflect.DeepEqual(got, tt.wantRoots) {
				t.Errorf("Builder.Build() roots = %v, want %v", got, tt.wantRoots)
			}
			if len(f.Unassigned) > 0 || len(f.Duplicates) > 0 {
				t.Errorf("Builder.Build() unassigned = %v, duplicates = %v, want none", f.Unassigned, f.Duplicates)
			}
			checkIndices(t, f)
		})
	}
}

func TestBuilder_Build_duplicates(t *testing.T) {
	records := []Employee{
		emp("a", "Alice", ""),
		emp("a", "Alicia", ""),
		emp("b", "Bob", "a"),
	}

	f := NewBuilder(WithLogger(quietLogger())).Build(Records(records))

	if want := []Employee{emp("a", "Alicia", "")}; !reflect.DeepEqual(f.Duplicates, want) {
		t.Errorf("Builder.Build() duplicates = %v, want %v", f.Duplicates, want)
	}
	if f.Roots[0].Name != "Alice" {
		t.Errorf("Builder.Build() root = %v, want Alice", f.Roots[0].Employee)
	}
}

type pointerRecord struct{ id, name, manager string }

func (p *pointerRecord) GetID() string        { return p.id }
func (p *pointerRecord) GetName() string      { return p.name }
func (p *pointerRecord) GetManagerID() string { return p.manager }

func TestBuilder_Build_customRecord(t *testing.T) {
	f := BuildHierarchy([]Record{
		&pointerRecord{"b", "Bob", "a"},
		&pointerRecord{"a", "Alice", ""},
		&Employee{ID: "c", Name: "Carol", ReportingManagerID: "a"},
	})

	want := &Node{Employee: emp("a", "Alice", ""), Children: List{
		{Employee: emp("b", "Bob", "a")},
		{Employee: emp("c", "Carol", "a")},
	}}
	if !reflect.DeepEqual(f.Roots[0], want) {
		t.Errorf("BuildHierarchy() = %+v, want %+v", f.Roots[0], want)
	}
}

func TestWithConfig(t *testing.T) {
	logger := quietLogger()
	b := NewBuilder(WithDebug(true), WithConfig(Config{Logger: logger, Locale: language.French}))

	want := &Config{Logger: logger, Locale: language.French}
	if !reflect.DeepEqual(b.cfg, want) {
		t.Errorf("NewBuilder() config = %+v, want %+v", b.cfg, want)
	}

	// A Config lacking a logger falls back to the default one.
	if b = NewBuilder(WithConfig(Config{})); b.cfg.Logger == nil {
		t.Errorf("NewBuilder() logger = nil")
	}
}
