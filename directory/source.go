// SPDX-License-Identifier: MIT
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/orgchart"
)

type (
	// Source defines the employee directory consumed to build org charts.
	Source interface {
		// Tenants lists the tenants known to the Source.
		Tenants(ctx context.Context) ([]string, error)
		// Employees lists a tenant's employee records, in no particular order.
		Employees(ctx context.Context, tenant string) ([]orgchart.Employee, error)
	}

	// FileSource is a Source reading one file per tenant from a directory.
	//
	// A file holds either a list of employees or an object with an "employees" list.
	FileSource struct {
		dir      string
		logger   logrus.FieldLogger
		validate *validator.Validate
	}

	// FileOption defines the FileSource functional option type.
	FileOption func(*FileSource)

	// envelope is the object form of a tenant file.
	envelope struct {
		Employees []orgchart.Employee `json:"employees" yaml:"employees"`
	}
)

// Supported tenant file extensions, by lookup precedence.
var extensions = []string{".json", ".yaml", ".yml"}

// Directory errors.
var (
	ErrUnknownTenant  = errors.New("unknown tenant")
	ErrInvalidRecord  = errors.New("invalid employee record")
	ErrInvalidPayload = errors.New("invalid directory payload")
	ErrNotDirectory   = errors.New("not a directory")
)

// NewFileSource instantiates a FileSource reading from dir.
func NewFileSource(dir string, options ...FileOption) (s *FileSource, err error) {
	info, err := os.Stat(dir)
	if err != nil {
		err = fmt.Errorf("directory source: %w", err)
		return
	}
	if !info.IsDir() {
		err = fmt.Errorf("(%s) %w", dir, ErrNotDirectory)
		return
	}

	validate, err := newValidator()
	if err != nil {
		err = fmt.Errorf("directory source: %w", err)
		return
	}

	s = &FileSource{
		dir:      dir,
		logger:   logrus.New(),
		validate: validate,
	}
	for _, opt := range options {
		opt(s)
	}

	return
}

// WithFileLogger configures the logger option.
func WithFileLogger(logger logrus.FieldLogger) FileOption {
	return func(s *FileSource) { s.logger = logger }
}

// newValidator registers the "trimmed" tag: non-empty without surrounding whitespace.
func newValidator() (v *validator.Validate, err error) {
	v = validator.New(validator.WithRequiredStructEnabled())
	err = v.RegisterValidation("trimmed", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value != "" && value == strings.TrimSpace(value)
	})
	if err != nil {
		return nil, err
	}

	return
}

// Tenants lists the tenants with a supported file, sorted.
func (s *FileSource) Tenants(ctx context.Context) (tenants []string, err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		err = fmt.Errorf("list tenants: %w", err)
		return
	}

	found := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(extensions, ext) {
			continue
		}

		found[strings.TrimSuffix(entry.Name(), ext)] = struct{}{}
	}

	tenants = maps.Keys(found)
	slices.Sort(tenants)

	return
}

// Employees reads & validates a tenant's employee records.
func (s *FileSource) Employees(ctx context.Context, tenant string) (employees []orgchart.Employee, err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	path, err := s.locate(tenant)
	if err != nil {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		err = fmt.Errorf("read tenant (%s): %w", tenant, err)
		return
	}

	if filepath.Ext(path) == ".json" {
		employees, err = decodeJSON(data)
	} else {
		employees, err = decodeYAML(data)
	}
	if err != nil {
		err = fmt.Errorf("tenant (%s) %w: %v", tenant, ErrInvalidPayload, err)
		return
	}

	for index := range employees {
		if vErr := s.validate.Struct(&employees[index]); vErr != nil {
			err = fmt.Errorf("tenant (%s) record %d: %w: %v", tenant, index, ErrInvalidRecord, vErr)
			return nil, err
		}
	}

	s.logger.WithFields(logrus.Fields{"tenant": tenant, "path": path, "employees": len(employees)}).Debug("directory read")

	return
}

// locate resolves a tenant's file following the extension precedence.
func (s *FileSource) locate(tenant string) (path string, err error) {
	if tenant == "" || tenant != filepath.Base(tenant) || strings.HasPrefix(tenant, ".") {
		err = fmt.Errorf("(%s) %w", tenant, ErrUnknownTenant)
		return
	}

	for _, ext := range extensions {
		path = filepath.Join(s.dir, tenant+ext)
		if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
			return
		}
	}

	return "", fmt.Errorf("(%s) %w", tenant, ErrUnknownTenant)
}

// decodeJSON accepts a list of employees or an envelope.
func decodeJSON(data []byte) (employees []orgchart.Employee, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) < 1 {
		return []orgchart.Employee{}, nil
	}

	switch trimmed[0] {
	case '[':
		err = json.Unmarshal(trimmed, &employees)
	case '{':
		var env envelope
		if err = json.Unmarshal(trimmed, &env); err == nil {
			employees = env.Employees
		}
	default:
		err = fmt.Errorf("unexpected token %q", trimmed[0])
	}

	return
}

// decodeYAML accepts a sequence of employees or an envelope mapping.
func decodeYAML(data []byte) (employees []orgchart.Employee, err error) {
	var doc yaml.Node
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	if doc.Kind == 0 || len(doc.Content) < 1 {
		return []orgchart.Employee{}, nil
	}

	switch root := doc.Content[0]; root.Kind {
	case yaml.SequenceNode:
		err = root.Decode(&employees)
	case yaml.MappingNode:
		var env envelope
		if err = root.Decode(&env); err == nil {
			employees = env.Employees
		}
	default:
		err = fmt.Errorf("unexpected yaml node at line %d", root.Line)
	}

	return
}
