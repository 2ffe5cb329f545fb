// SPDX-License-Identifier: MIT
package orgchart

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

type (
	// Config defines configuration options for the Builder & the Forest's operations.
	Config struct {
		// Logger for Builder & Forest messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// Locale used to order names.
		Locale language.Tag
	}

	// Builder generates a Forest from a list of Record(s).
	//
	// A Builder holds no per-build state & is safe for concurrent use.
	Builder struct {
		cfg *Config
	}

	// BuildOption defines the Builder functional option type.
	BuildOption func(*Config)
)

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
		Locale: language.Und,
	}
}

// NewBuilder instantiates a Builder.
func NewBuilder(options ...BuildOption) *Builder {
	cfg := DefConfig()
	for _, opt := range options {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Builder{cfg: cfg}
}

// WithConfig replaces the Builder's Config.
func WithConfig(c Config) BuildOption {
	return func(cfg *Config) { *cfg = c }
}

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) BuildOption {
	return func(cfg *Config) { cfg.Logger = logger }
}

// WithDebug configures the debug option.
func WithDebug(debug bool) BuildOption {
	return func(cfg *Config) { cfg.Debug = debug }
}

// WithLocale configures the locale used to order names.
func WithLocale(tag language.Tag) BuildOption {
	return func(cfg *Config) { cfg.Locale = tag }
}

// BuildHierarchy generates a Forest using the default Config.
func BuildHierarchy(records []Record) *Forest { return NewBuilder().Build(records) }

// Build generates a Forest from an unordered list of Record(s).
//
// Classification is a single pass over the records; manager links are never followed, a manager
// cycle can't stall the build. Records referencing an absent manager are reported in
// Forest.Unassigned, later records repeating an identifier in Forest.Duplicates.
//
// An unassigned record keeps its own reports; they are indexed under it but unreachable from the
// roots.
func (b *Builder) Build(records []Record) (f *Forest) {
	f = newForest(b.cfg, len(records))
	order := newNameOrder(b.cfg.Locale)

	// Insertion order of the arena, the map's iteration order is random.
	nodes := make(List, 0, len(records))
	for index := range records {
		e, ok := employeeOf(records[index])
		if !ok {
			b.cfg.Logger.WithField("index", index).Warn("nil employee record ignored")

			continue
		}
		if _, ok := f.nodes[e.ID]; ok {
			b.cfg.Logger.WithField("id", e.ID).Warn("duplicate employee record ignored")
			f.Duplicates = append(f.Duplicates, e)

			continue
		}

		node := &Node{Employee: e}
		f.nodes[e.ID] = node
		nodes = append(nodes, node)
	}

	for _, node := range nodes {
		managerID := node.managerID()

		switch manager, ok := f.nodes[managerID]; {
		case managerID == "" || managerID == node.ID:
			f.Roots = append(f.Roots, node)
		case ok:
			manager.Children = append(manager.Children, node)
			f.ParentOf[node.ID] = manager.ID
		default:
			if b.cfg.Debug {
				b.cfg.Logger.WithFields(logrus.Fields{"id": node.ID, "manager": managerID}).Debug("unresolved manager")
			}
			f.Unassigned = append(f.Unassigned, node.Employee)
		}
	}

	// Sort every level, including nodes unreachable from a root.
	for _, node := range nodes {
		if node.Leaf() {
			continue
		}

		order.sortNodes(node.Children)
		f.ChildrenOf[node.ID] = node.Children.IDs()
	}
	order.sortNodes(f.Roots)
	order.sortEmployees(f.Unassigned)

	if b.cfg.Debug {
		b.cfg.Logger.Debugf("roots: %s\nunassigned: %s\nparents: %s", spew.Sprint(f.Roots.IDs()), spew.Sprint(f.Unassigned), spew.Sprint(f.ParentOf))
	}

	return
}

// newForest instantiates an empty Forest.
func newForest(cfg *Config, size int) *Forest {
	return &Forest{
		Roots:      make(List, 0),
		Unassigned: make([]Employee, 0),
		ParentOf:   make(ParentIndex, size),
		ChildrenOf: make(ChildIndex, size),

		cfg:   cfg,
		nodes: make(map[string]*Node, size),
	}
}
