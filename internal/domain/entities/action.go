package entities

import (
	"fmt"
	"sort"
	"strconv"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Property types understood by ActionSchema.
const (
	TypeString  = "string"
	TypeBoolean = "boolean"
	TypeNumber  = "number"
)

// ActionProperty describes a single input or output field of an action.
type ActionProperty struct {
	Title       string `yaml:"title"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// ActionSchema declares the accepted input and the produced output of an action.
type ActionSchema struct {
	Required []string                  `yaml:"required,omitempty"`
	Input    map[string]ActionProperty `yaml:"input"`
	Output   map[string]ActionProperty `yaml:"output,omitempty"`
}

// ActionInput is the raw parameter set an action is invoked with.
type ActionInput map[string]any

// Normalize checks the input against the schema and returns a copy where
// scalar values are coerced to the declared property types. Unknown keys are
// kept untouched.
func (s ActionSchema) Normalize(input ActionInput) (ActionInput, error) {
	for _, name := range s.Required {
		value, ok := input[name]
		if !ok || value == nil || value == "" {
			return nil, NewInputError("%q is a required input", name)
		}
	}

	normalized := make(ActionInput, len(input))
	for name, value := range input {
		property, declared := s.Input[name]
		if !declared || value == nil {
			normalized[name] = value
			continue
		}

		coerced, err := coerce(property.Type, value)
		if err != nil {
			return nil, NewInputError("%q must be a %s: %v", name, property.Type, err)
		}
		normalized[name] = coerced
	}

	return normalized, nil
}

// PropertyNames returns the declared input property names in sorted order.
func (s ActionSchema) PropertyNames() []string {
	names := make([]string, 0, len(s.Input))
	for name := range s.Input {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decode copies the input into the given struct using its yaml tags.
func (i ActionInput) Decode(target any) error {
	data, err := yaml.Marshal(map[string]any(i))
	if err != nil {
		return fmt.Errorf("failed to encode action input: %w", err)
	}
	if err = yaml.Unmarshal(data, target); err != nil {
		return NewInputError("failed to decode action input: %v", err)
	}
	return nil
}

func coerce(kind string, value any) (any, error) {
	switch kind {
	case TypeString:
		switch v := value.(type) {
		case string:
			return v, nil
		case int, int64, float64, bool:
			return fmt.Sprint(v), nil
		}
	case TypeBoolean:
		switch v := value.(type) {
		case bool:
			return v, nil
		case string:
			return strconv.ParseBool(v)
		}
	case TypeNumber:
		switch v := value.(type) {
		case int, int64, float64:
			return v, nil
		case string:
			return strconv.ParseFloat(v, 64)
		}
	default:
		return value, nil
	}
	return nil, fmt.Errorf("unexpected value %v (%T)", value, value)
}

// ActionContext is handed to an action for a single invocation.
type ActionContext struct {
	WorkspacePath string
	Input         ActionInput
	Settings      *Settings
	Logger        *logger.Entry

	outputs map[string]any
}

// NewActionContext creates the context for one invocation of the given action.
func NewActionContext(
	actionID, workspacePath string,
	input ActionInput,
	settings *Settings,
) *ActionContext {
	if settings == nil {
		settings = NewDefaultSettings()
	}
	return &ActionContext{
		WorkspacePath: workspacePath,
		Input:         input,
		Settings:      settings,
		Logger:        logger.WithField("action", actionID),
		outputs:       make(map[string]any),
	}
}

// Output records a named output value.
func (c *ActionContext) Output(name string, value any) {
	c.outputs[name] = value
}

// Outputs returns every output value recorded so far.
func (c *ActionContext) Outputs() map[string]any {
	return c.outputs
}
