// SPDX-License-Identifier: MIT
package orgchart

import (
	"reflect"
	"strings"

	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Record defines an interface for entities that can be read into a Forest.
	Record interface {
		// GetID obtains the record's unique identifier.
		GetID() string
		// GetName obtains the display name, used for ordering.
		GetName() string
		// GetManagerID obtains the identifier of the record's reporting manager.
		//
		// May be empty, self-referential or reference an absent record.
		GetManagerID() string
	}

	// Employee is the directory's employee record & the default Record implementation.
	Employee struct {
		ID                 string `json:"id" yaml:"id" validate:"required,trimmed"`
		Name               string `json:"name" yaml:"name"`
		ReportingManagerID string `json:"reportingManagerId,omitempty" yaml:"reportingManagerId,omitempty"`
	}

	// Node wraps an Employee with its ordered direct reports.
	//
	// Parent relationships are only held by the Forest's indices.
	Node struct {
		Employee `yaml:",inline"`

		Children List `json:"children,omitempty" yaml:"children,omitempty"`
	}

	// List is a type wrapper for []*Node.
	List []*Node

	// LevelList holds a List per tree level.
	LevelList []List
)

// GetID obtains the Employee's identifier.
func (e Employee) GetID() string { return e.ID }

// GetName obtains the Employee's name.
func (e Employee) GetName() string { return e.Name }

// GetManagerID obtains the Employee's reporting manager identifier.
func (e Employee) GetManagerID() string { return e.ReportingManagerID }

// managerID normalizes the reporting manager reference; empty means no manager.
func (e Employee) managerID() string { return strings.TrimSpace(e.ReportingManagerID) }

// String is the fmt.Stringer implementation for Employee.
func (e Employee) String() string {
	if e.Name == "" {
		return "(" + e.ID + ")"
	}

	return e.Name + " (" + e.ID + ")"
}

// Records converts a list of Employee(s) to Record(s).
func Records(employees []Employee) []Record {
	records := make([]Record, len(employees))
	for index := range employees {
		records[index] = employees[index]
	}

	return records
}

// employeeOf copies a Record into an Employee; ok is false for nil records.
func employeeOf(r Record) (e Employee, ok bool) {
	switch record := r.(type) {
	case nil:
		return
	case Employee:
		return record, true
	case *Employee:
		if record == nil {
			return
		}
		return *record, true
	}

	if value := reflect.ValueOf(r); value.Kind() == reflect.Pointer && value.IsNil() {
		return
	}

	return Employee{ID: r.GetID(), Name: r.GetName(), ReportingManagerID: r.GetManagerID()}, true
}

// Leaf checks whether the Node lacks direct reports.
func (n *Node) Leaf() bool { return len(n.Children) < 1 }

// IDs returns the identifiers of a List in order.
func (l List) IDs() (ids types.IDList) {
	ids = make(types.IDList, len(l))
	for index := range l {
		ids[index] = l[index].ID
	}

	return
}

// IDs returns the identifiers of a LevelList, a list per level.
func (l LevelList) IDs() (ids []types.IDList) {
	ids = make([]types.IDList, len(l))
	for index := range l {
		ids[index] = l[index].IDs()
	}

	return
}
