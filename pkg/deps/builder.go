package deps

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/depwalk/pkg/depgraph"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	"github.com/matzehuels/depwalk/pkg/observability"
)

// Builder walks a [Source] from a root package and records what it finds in a
// [depgraph.Graph].
type Builder struct {
	src  Source
	opts Options
}

// NewBuilder creates a Builder that resolves packages through src.
func NewBuilder(src Source, opts Options) *Builder {
	return &Builder{src: src, opts: opts.WithDefaults()}
}

// Build explores the dependencies of root depth-first, fetching each package
// at most once. Packages deeper than Options.MaxDepth are left as dangling
// dependency targets; names matching Options.Filter never enter the graph.
//
// A package whose resolution fails is reported in Result.Unresolved and gets
// no graph entry; the walk continues. Build only returns an error for invalid
// input or when ctx is cancelled.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	if err := b.opts.Validate(); err != nil {
		return nil, err
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return nil, errs.New(errs.ErrCodeInvalidPackage, "package name cannot be empty")
	}

	c := &crawler{
		ctx:      ctx,
		opts:     b.opts,
		src:      b.src,
		g:        depgraph.New(),
		explored: make(map[string]bool),
		depths:   make(map[string]int),
	}

	hooks := observability.Walk()
	hooks.OnWalkStart(ctx, root, b.opts.MaxDepth)
	start := time.Now()

	err := c.visit(root, 0, nil)

	res := &Result{
		Root:       root,
		Graph:      c.g,
		Depths:     c.depths,
		Unresolved: c.unresolved,
		Fetches:    c.fetches,
		Duration:   time.Since(start),
	}
	hooks.OnWalkComplete(ctx, root, c.g.Len(), len(c.unresolved), res.Duration, err)
	if err != nil {
		return nil, err
	}
	return res, nil
}

type crawler struct {
	ctx  context.Context
	opts Options
	src  Source

	g          *depgraph.Graph
	explored   map[string]bool
	depths     map[string]int
	unresolved []Unresolved
	fetches    int
}

// path is the chain of ancestors of the package being expanded. Each branch
// extends its parent's chain without touching siblings.
type path struct {
	name   string
	parent *path
}

func (p *path) contains(name string) bool {
	for ; p != nil; p = p.parent {
		if p.name == name {
			return true
		}
	}
	return false
}

func (c *crawler) visit(name string, depth int, ancestors *path) error {
	log := c.opts.Logger
	switch {
	case !WithinDepth(depth, c.opts.MaxDepth):
		log.Debug("depth bound reached", "name", name, "depth", depth)
		return nil
	case ShouldSkip(name, c.opts.Filter):
		log.Debug("filtered", "name", name)
		return nil
	case ancestors.contains(name):
		log.Debug("cycle edge", "name", name, "depth", depth)
		return nil
	case c.explored[name]:
		return nil
	}
	if err := c.ctx.Err(); err != nil {
		return err
	}

	c.explored[name] = true
	deps, err := c.resolve(name, depth)
	if err != nil {
		if ctxErr := c.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !errs.IsFetch(err) {
			err = errs.Wrap(errs.ErrCodeFetch, err, "resolve %s", name)
		}
		c.unresolved = append(c.unresolved, Unresolved{Name: name, Depth: depth, Err: err})
		log.Warn("fetch failed", "name", name, "depth", depth, "err", err)
		return nil
	}

	kept := deps[:0:0]
	for _, d := range deps {
		if d == "" || ShouldSkip(d, c.opts.Filter) {
			continue
		}
		kept = append(kept, d)
	}
	c.g.Set(name, kept)
	c.depths[name] = depth
	log.Debug("expanded", "name", name, "depth", depth, "deps", len(kept))

	// Set deduplicates, so walk the stored list.
	stored, _ := c.g.Deps(name)
	next := &path{name: name, parent: ancestors}
	for _, d := range stored {
		if err := c.visit(d, depth+1, next); err != nil {
			return err
		}
	}
	return nil
}

func (c *crawler) resolve(name string, depth int) ([]string, error) {
	start := time.Now()
	deps, err := c.src.Resolve(c.ctx, name)
	c.fetches++
	observability.Walk().OnResolve(c.ctx, name, depth, len(deps), time.Since(start), err)
	return deps, err
}
