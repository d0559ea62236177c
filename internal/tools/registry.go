package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Registry manages the collection of available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*ServerTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*ServerTool),
	}
}

// Register adds tools to the registry.
func (r *Registry) Register(tools ...*ServerTool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, tool := range tools {
		if tool == nil || tool.Tool == nil || tool.Tool.Name == "" {
			return fmt.Errorf("tool name cannot be empty")
		}
		if tool.RegisterFunc == nil {
			return fmt.Errorf("tool %s has no register function", tool.Tool.Name)
		}

		name := tool.Tool.Name
		if _, exists := r.tools[name]; exists {
			return fmt.Errorf("tool %s is already registered", name)
		}
		r.tools[name] = tool
	}
	return nil
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames()
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// Apply registers every tool with server in name order.
func (r *Registry) Apply(server *mcp.Server) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.sortedNames() {
		r.tools[name].RegisterFunc(server)
	}
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
