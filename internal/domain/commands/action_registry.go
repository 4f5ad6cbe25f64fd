package commands

import (
	"fmt"
	"sort"
)

// ActionRegistry manages all registered scaffolder actions.
type ActionRegistry struct {
	actions map[string]Action
}

// NewActionRegistry creates an empty action registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{
		actions: make(map[string]Action),
	}
}

// Register adds an action under its ID.
func (r *ActionRegistry) Register(action Action) {
	r.actions[action.ID()] = action
}

// Get returns the action with the given ID.
func (r *ActionRegistry) Get(id string) (Action, error) {
	action, ok := r.actions[id]
	if !ok {
		return nil, fmt.Errorf("unknown action: %q", id)
	}
	return action, nil
}

// All returns every registered action ordered by ID.
func (r *ActionRegistry) All() []Action {
	result := make([]Action, 0, len(r.actions))
	for _, id := range r.IDs() {
		result = append(result, r.actions[id])
	}
	return result
}

// IDs returns the sorted list of registered action IDs.
func (r *ActionRegistry) IDs() []string {
	ids := make([]string, 0, len(r.actions))
	for id := range r.actions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
