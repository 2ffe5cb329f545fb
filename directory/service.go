// SPDX-License-Identifier: MIT
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"

	"gitlab.com/fisherprime/orgchart"
	"gitlab.com/fisherprime/orgchart/types"
)

type (
	// Options defines configuration options for a Service.
	Options struct {
		// Workers bounds the tenants rebuilt concurrently.
		Workers int
		Locale  language.Tag
		Debug   bool
		Logger  logrus.FieldLogger
	}

	// Service holds the latest org chart of every refreshed tenant.
	//
	// Construct one per application & pass it to its consumers.
	Service struct {
		source  Source
		builder *orgchart.Builder
		pool    *ants.Pool
		logger  logrus.FieldLogger
		debug   bool

		mu      sync.RWMutex
		forests map[string]*orgchart.Forest

		builds types.SafeCounter
	}
)

// DefaultWorkers is the worker pool size used when Options.Workers is unset.
const DefaultWorkers = 4

// Service errors.
var (
	ErrNotLoaded = errors.New("org chart not loaded")
	ErrRefresh   = errors.New("failed to refresh org chart")
)

// NewService instantiates a Service backed by source.
func NewService(source Source, opts Options) (s *Service, err error) {
	if opts.Workers < 1 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = logrus.New()
	}

	s = &Service{
		source:  source,
		logger:  opts.Logger,
		debug:   opts.Debug,
		forests: make(map[string]*orgchart.Forest),
		builder: orgchart.NewBuilder(orgchart.WithConfig(orgchart.Config{
			Logger: opts.Logger,
			Debug:  opts.Debug,
			Locale: opts.Locale,
		})),
	}

	s.pool, err = ants.NewPool(opts.Workers,
		ants.WithLogger(opts.Logger),
		ants.WithPanicHandler(func(r interface{}) {
			opts.Logger.WithField("panic", r).Error("org chart worker panicked")
		}),
	)
	if err != nil {
		err = fmt.Errorf("org chart worker pool: %w", err)
		return nil, err
	}

	return
}

// Close releases the Service's worker pool.
func (s *Service) Close() { s.pool.Release() }

// Refresh rebuilds the org charts of tenants, all the Source's tenants when none are given.
// Repeated tenants are rebuilt once.
//
// Each tenant's chart is replaced wholesale once built; a failing tenant keeps its previous chart
// & its error is joined into the result.
func (s *Service) Refresh(ctx context.Context, tenants ...string) (err error) {
	if len(tenants) < 1 {
		if tenants, err = s.source.Tenants(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrRefresh, err)
		}
	}

	var unique types.IDList
	unique.UniqueAppend(tenants...)

	var (
		wg   sync.WaitGroup
		errM sync.Mutex
		errs []error
	)
	addErr := func(tenant string, e error) {
		errM.Lock()
		defer errM.Unlock()
		errs = append(errs, fmt.Errorf("%w (%s): %w", ErrRefresh, tenant, e))
	}

	for _, tenant := range unique {
		tenant := tenant

		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()

			if e := s.refresh(ctx, tenant); e != nil {
				addErr(tenant, e)
			}
		})
		if submitErr != nil {
			wg.Done()
			addErr(tenant, submitErr)
		}
	}
	wg.Wait()

	return errors.Join(errs...)
}

// refresh builds & swaps in a single tenant's org chart.
func (s *Service) refresh(ctx context.Context, tenant string) (err error) {
	if err = ctx.Err(); err != nil {
		return
	}

	employees, err := s.source.Employees(ctx, tenant)
	if err != nil {
		return
	}

	forest := s.builder.Build(orgchart.Records(employees))

	s.mu.Lock()
	s.forests[tenant] = forest
	s.mu.Unlock()
	s.builds.Inc()

	logger := s.logger.WithFields(logrus.Fields{
		"tenant":     tenant,
		"roots":      len(forest.Roots),
		"unassigned": len(forest.Unassigned),
	})
	logger.Info("org chart rebuilt")
	if s.debug {
		logger.Debugf("unassigned: %s", spew.Sdump(forest.Unassigned))
	}

	return
}

// Forest retrieves a tenant's latest org chart.
func (s *Service) Forest(tenant string) (f *orgchart.Forest, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.forests[tenant]
	if !ok {
		err = fmt.Errorf("tenant (%s): %w", tenant, ErrNotLoaded)
	}

	return
}

// Highlight resolves the highlight set for a node hovered on a tenant's org chart.
func (s *Service) Highlight(tenant, hoveredID string) (h orgchart.Highlight, err error) {
	f, err := s.Forest(tenant)
	if err != nil {
		return
	}

	return f.Highlight(hoveredID), nil
}

// Tenants lists the tenants with a loaded org chart, sorted.
func (s *Service) Tenants() (tenants []string) {
	s.mu.RLock()
	tenants = maps.Keys(s.forests)
	s.mu.RUnlock()

	slices.Sort(tenants)

	return
}

// Builds is the number of org charts built by the Service.
func (s *Service) Builds() int { return s.builds.Value() }
