package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewCloneCommand,
		NewPushCommand,
		NewMergeRequestCommand,
		NewProjectCommand,
		NewBranchCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Register the action registry with every action
	if err := container.Provide(NewActions); err != nil {
		return err
	}

	return nil
}

// NewActions aggregates all actions into a registry.
func NewActions(
	clone *CloneCommand,
	push *PushCommand,
	mergeRequest *MergeRequestCommand,
	project *ProjectCommand,
	branch *BranchCommand,
) *ActionRegistry {
	registry := NewActionRegistry()
	registry.Register(clone)
	registry.Register(push)
	registry.Register(mergeRequest)
	registry.Register(project)
	registry.Register(branch)
	return registry
}
