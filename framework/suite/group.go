package suite

import (
	"context"
	"errors"
	"fmt"

	"github.com/routecontract/route-contract-tests/framework"
)

// Hook is a function that runs once for a group, before or after all of its test cases. A
// returned error, a panic, or a FailNow call all count as a failure of the hook.
type Hook func(t *T) error

// CaseFunc is the body of one test case.
type CaseFunc func(t *T)

const afterAllNodeName = "after all hooks"

// Group is a node in a declarative test tree. Groups are built up front, in a purely
// synchronous declaration phase, and then executed by Run.
//
// When a group runs, its before-all hooks run first. If any of them fails, every test case in
// the group and in its descendants is reported as failed with the setup error, without being
// run. After-all hooks run at the end whether or not setup succeeded.
type Group struct {
	name      string
	beforeAll []Hook
	afterAll  []Hook
	items     []item
}

type item struct {
	name  string
	fn    CaseFunc
	group *Group
}

// NewGroup creates a root group. An empty name means that the group's contents are reported
// at the top level of the results.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

func (g *Group) Name() string {
	return g.name
}

// Group adds a child group.
func (g *Group) Group(name string) *Group {
	child := &Group{name: name}
	g.AddGroup(child)
	return child
}

// AddGroup adds an existing group, created with NewGroup, as a child. This lets a group be
// attached only after it has been fully declared.
func (g *Group) AddGroup(child *Group) {
	g.items = append(g.items, item{name: child.name, group: child})
}

// Describe adds a child group and calls fn to populate it.
func (g *Group) Describe(name string, fn func(*Group)) *Group {
	child := g.Group(name)
	fn(child)
	return child
}

func (g *Group) BeforeAll(h Hook) {
	g.beforeAll = append(g.beforeAll, h)
}

func (g *Group) AfterAll(h Hook) {
	g.afterAll = append(g.afterAll, h)
}

// It adds a test case.
func (g *Group) It(name string, fn CaseFunc) {
	g.items = append(g.items, item{name: name, fn: fn})
}

// CaseNames returns the names of the group's own test cases, in declaration order.
func (g *Group) CaseNames() []string {
	var ret []string
	for _, it := range g.items {
		if it.group == nil {
			ret = append(ret, it.name)
		}
	}
	return ret
}

// Groups returns the group's direct child groups, in declaration order.
func (g *Group) Groups() []*Group {
	var ret []*Group
	for _, it := range g.items {
		if it.group != nil {
			ret = append(ret, it.group)
		}
	}
	return ret
}

// Run executes a group tree and returns the results of every group and test case.
func Run(root *Group, filter framework.Filter, testLogger framework.TestLogger) framework.Results {
	return RunContext(context.Background(), root, filter, testLogger)
}

// RunContext is the same as Run, but passes ctx to every test through T.Context.
func RunContext(
	ctx context.Context,
	root *Group,
	filter framework.Filter,
	testLogger framework.TestLogger,
) framework.Results {
	return framework.Run(filter, testLogger, func(c *framework.Context) {
		if root.name == "" {
			root.run(ctx, c, nil)
			return
		}
		c.Run(root.name, func(c1 *framework.Context) {
			root.run(ctx, c1, nil)
		})
	})
}

func (g *Group) run(ctx context.Context, c *framework.Context, inherited error) {
	t := newT(c, ctx)
	setupErr := inherited
	if setupErr == nil {
		if err := runHooks(t, g.beforeAll); err != nil {
			setupErr = err
			c.Errorf("before all hook failed: %s", err)
		}
	}
	defer func() {
		if len(g.afterAll) == 0 {
			return
		}
		if err := runHooks(t, g.afterAll); err != nil {
			c.Run(afterAllNodeName, func(c1 *framework.Context) {
				c1.Errorf("after all hook failed: %s", err)
			})
		}
	}()

	for _, it := range g.items {
		it := it
		if it.group != nil {
			c.Run(it.name, func(c1 *framework.Context) {
				it.group.run(ctx, c1, setupErr)
			})
			continue
		}
		c.Run(it.name, func(c1 *framework.Context) {
			if setupErr != nil {
				c1.Errorf("setup failed: %s", setupErr)
				c1.FailNow()
			}
			it.fn(newT(c1, ctx))
		})
	}
}

func runHooks(t *T, hooks []Hook) error {
	for _, h := range hooks {
		if err := runHook(t, h); err != nil {
			return err
		}
	}
	return nil
}

func runHook(t *T, h Hook) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*framework.Context); ok {
				err = errors.New("hook failed")
				return
			}
			err = fmt.Errorf("unexpected panic in hook: %+v", r)
		}
	}()
	return h(t)
}
