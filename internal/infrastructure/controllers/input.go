package controllers

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/gitlab-scaffolder/internal/domain/entities"
)

// readInput builds the action input from an optional YAML/JSON document
// ("-" reads stdin) and a list of key=value assignments applied on top.
func readInput(stdin io.Reader, path string, assignments []string) (entities.ActionInput, error) {
	input := entities.ActionInput{}

	if path != "" {
		var (
			data []byte
			err  error
		)
		if path == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input %q: %w", path, err)
		}
		if err = yaml.Unmarshal(data, &input); err != nil {
			return nil, entities.NewInputError("failed to parse input %q: %v", path, err)
		}
		if input == nil {
			input = entities.ActionInput{}
		}
	}

	for _, assignment := range assignments {
		key, raw, ok := strings.Cut(assignment, "=")
		if !ok || key == "" {
			return nil, entities.NewInputError("expected key=value, got %q", assignment)
		}
		input[key] = parseScalar(raw)
	}

	return input, nil
}

// parseScalar interprets a command-line value as a YAML scalar so that
// "true" and "42" keep their types. Anything that is not a scalar stays a string.
func parseScalar(raw string) any {
	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil || value == nil {
		return raw
	}
	switch value.(type) {
	case string, bool, int, float64:
		return value
	default:
		return raw
	}
}
