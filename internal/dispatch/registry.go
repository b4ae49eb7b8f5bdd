package dispatch

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"github.com/datawarden/datawarden/internal/pkg/xmap"
)

// Tool is an opaque downstream operation: named, invoked with structured
// input, returning structured output or an error.
type Tool interface {
	Invoke(ctx context.Context, target string, input map[string]any) (map[string]any, error)
}

// ToolFunc adapts a function to the Tool interface.
type ToolFunc func(ctx context.Context, target string, input map[string]any) (map[string]any, error)

func (f ToolFunc) Invoke(ctx context.Context, target string, input map[string]any) (map[string]any, error) {
	return f(ctx, target, input)
}

// Registry maps tool names to implementations. Safe for concurrent use.
type Registry struct {
	tools *xmap.Map[string, Tool]
}

func NewRegistry() *Registry {
	return &Registry{tools: xmap.New[string, Tool]()}
}

// Register binds a tool implementation to a name, replacing any previous one.
func (r *Registry) Register(name string, tool Tool) {
	r.tools.Store(name, tool)
}

// Get returns the tool registered under the name.
func (r *Registry) Get(name string) (Tool, bool) {
	return r.tools.Load(name)
}

// Names returns the sorted registered tool names.
func (r *Registry) Names() []string {
	var names []string

	r.tools.Range(func(name string, _ Tool) bool {
		names = append(names, name)
		return true
	})

	sort.Strings(names)

	return lo.Uniq(names)
}
