package core

import (
	"errors"
	"sort"
	"sync"

	"framelink/protocol"
)

// CommandHandler handles one decoded request.
// It returns the result fields merged into the success response, or a fault.
// Handlers must be fast and must not block: the link is stalled while one runs.
type CommandHandler func(msg *protocol.Message) (protocol.Fields, error)

// Command binds a command name to its handler and result type
type Command struct {
	Name    string
	Result  string // Type tag of the success response
	Handler CommandHandler
}

// Registry errors
var (
	ErrRegistryFrozen   = errors.New("command registry is frozen")
	ErrDuplicateCommand = errors.New("command already registered")
	ErrInvalidCommand   = errors.New("command needs a name, result type and handler")
)

// CommandRegistry maps command names to handlers.
// It is built at boot and frozen before the first request is served.
type CommandRegistry struct {
	mu       sync.RWMutex
	commands map[string]*Command
	frozen   bool
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]*Command),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(name, result string, handler CommandHandler) error {
	if name == "" || result == "" || handler == nil {
		return ErrInvalidCommand
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return ErrRegistryFrozen
	}
	if _, exists := r.commands[name]; exists {
		return ErrDuplicateCommand
	}

	r.commands[name] = &Command{
		Name:    name,
		Result:  result,
		Handler: handler,
	}
	return nil
}

// Freeze makes the registry immutable
func (r *CommandRegistry) Freeze() {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()
}

// Frozen reports whether Freeze has been called
func (r *CommandRegistry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Lookup retrieves a command by name
func (r *CommandRegistry) Lookup(name string) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Count returns the number of registered commands
func (r *CommandRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Names returns the registered command names in sorted order
func (r *CommandRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
