// Package store drives the iterative extraction loop over the child requests
// the engine emits: it memoizes schemas by type identity, tolerates cycles,
// and guarantees at most one in-flight extraction per type across goroutines.
package store

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/tliron/commonlog"

	"github.com/john3300/modelschema/extract"
	"github.com/john3300/modelschema/jtype"
	"github.com/john3300/modelschema/schema"
)

var log = commonlog.GetLogger("modelschema.store")

const defaultCacheSize = 512

type entry struct {
	schema *schema.Schema
	diags  []extract.Diagnostic
}

// diagnostics returns a copy; the cached slice is shared across hits and must
// not leak to callers.
func (e *entry) diagnostics() []extract.Diagnostic {
	out := make([]extract.Diagnostic, len(e.diags))
	copy(out, e.diags)
	return out
}

// Store sequences schema extraction. Strategies are tried in order; the
// first one returning a result wins. The engine itself stays stateless, so
// distinct types may be extracted from different goroutines concurrently.
type Store struct {
	strategies []extract.Strategy

	mu       sync.Mutex
	cache    *lru.Cache[string, *entry]
	inflight map[string]chan struct{}
}

func New(strategies ...extract.Strategy) (*Store, error) {
	if len(strategies) == 0 {
		return nil, fmt.Errorf("new store: no extraction strategies")
	}
	cache, err := lru.New[string, *entry](defaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("new store: %w", err)
	}
	return &Store{
		strategies: strategies,
		cache:      cache,
		inflight:   make(map[string]chan struct{}),
	}, nil
}

// Schema returns the schema for t plus every diagnostic found during the
// pass that produced it. A nil schema with a nil error means no strategy
// recognized t as a target type.
func (s *Store) Schema(t jtype.Type) (*schema.Schema, []extract.Diagnostic, error) {
	key := t.String()
	for {
		s.mu.Lock()
		if e, ok := s.cache.Get(key); ok {
			s.mu.Unlock()
			return e.schema, e.diagnostics(), nil
		}
		done, running := s.inflight[key]
		if !running {
			done = make(chan struct{})
			s.inflight[key] = done
			s.mu.Unlock()
			break
		}
		s.mu.Unlock()
		<-done
	}

	e := s.run(t)

	s.mu.Lock()
	s.cache.Add(key, e)
	close(s.inflight[key])
	delete(s.inflight, key)
	s.mu.Unlock()

	return e.schema, e.diagnostics(), nil
}

// Get implements extract.SchemaStore for strategies that want to consult
// previously extracted schemas while assembling a new one.
func (s *Store) Get(t jtype.Type) *schema.Schema {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.cache.Get(t.String()); ok {
		return e.schema
	}
	return nil
}

// run performs one full extraction pass rooted at t. Child requests are
// processed breadth-first; a type already resolved in this pass is not
// extracted again, which both memoizes diamonds and breaks cycles (the
// engine records a type's schema before its children are visited).
func (s *Store) run(t jtype.Type) *entry {
	log.Infof("extracting schema for %s", t)

	root := extract.NewContext(t)
	resolved := &passCache{schemas: make(map[string]*schema.Schema)}
	queue := []*extract.Context{root}
	var rootSchema *schema.Schema

	for len(queue) > 0 {
		ctx := queue[0]
		queue = queue[1:]
		key := ctx.Type().String()

		result, ok := resolved.schemas[key]
		if !ok {
			if cached := s.Get(ctx.Type()); cached != nil {
				result = cached
			} else {
				result = s.extract(ctx, resolved, &queue)
			}
			resolved.schemas[key] = result
		}
		if ctx == root {
			rootSchema = result
		}
		ctx.Validate(result)
	}

	diags := root.Diagnostics().All()
	if len(diags) > 0 {
		log.Infof("extraction of %s reported %d diagnostics", t, len(diags))
	}
	return &entry{schema: rootSchema, diags: diags}
}

func (s *Store) extract(ctx *extract.Context, resolved *passCache, queue *[]*extract.Context) *schema.Schema {
	for _, strategy := range s.strategies {
		result := strategy.Extract(ctx, s, resolved)
		if result == nil {
			continue
		}
		log.Debugf("extracted %s (%s): %d properties, %d pending",
			ctx.Type(), ctx.Description(), len(result.Schema.Properties), len(result.Children))
		*queue = append(*queue, result.Children...)
		return result.Schema
	}
	log.Debugf("%s is not a target type (%s)", ctx.Type(), ctx.Description())
	return nil
}

// passCache implements extract.SchemaCache over the schemas resolved so far
// in one pass.
type passCache struct {
	schemas map[string]*schema.Schema
}

func (c *passCache) Cached(t jtype.Type) *schema.Schema {
	return c.schemas[t.String()]
}
