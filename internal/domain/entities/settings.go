package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	defaultHost         = "gitlab.com"
	defaultSourceBranch = "scaffolder"
	defaultTargetBranch = "main"
	defaultCloneBranch  = "main"
	defaultRemote       = "origin"
	defaultAuthorName   = "Scaffolder"
	defaultAuthorEmail  = "scaffolder@backstage.io"
)

// Settings is the top-level configuration for the scaffolder actions.
type Settings struct {
	Integrations Integrations `yaml:"integrations"`
	Defaults     Defaults     `yaml:"defaults"`
}

// Integrations lists the configured SCM integrations.
type Integrations struct {
	GitLab []GitLabIntegration `yaml:"gitlab"`
}

// GitLabIntegration binds a token to a GitLab host.
type GitLabIntegration struct {
	Host  string `yaml:"host"`
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// Defaults holds the values applied when an action input omits a field.
// They are injected per invocation instead of living in package globals.
type Defaults struct {
	Host         string    `yaml:"host"`
	SourceBranch string    `yaml:"source_branch"`
	TargetBranch string    `yaml:"target_branch"`
	CloneBranch  string    `yaml:"clone_branch"`
	Remote       string    `yaml:"remote"`
	Author       Signature `yaml:"author"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns settings with no integrations and the built-in defaults.
func NewDefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	for i := range settings.Integrations.GitLab {
		settings.Integrations.GitLab[i].Token = ResolveToken(settings.Integrations.GitLab[i].Token)
	}

	if validateErr := validate(&settings); validateErr != nil {
		return nil, validateErr
	}

	settings.applyDefaults()
	return &settings, nil
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".scaffolder.yaml",
		".scaffolder.yml",
		"scaffolder.yaml",
		"scaffolder.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// AddEnvironmentIntegration registers a gitlab.com integration from GITLAB_TOKEN
// or GL_TOKEN, unless gitlab.com is already configured.
func (s *Settings) AddEnvironmentIntegration() {
	for _, integration := range s.Integrations.GitLab {
		if strings.EqualFold(integration.Host, defaultHost) {
			return
		}
	}

	token := os.Getenv("GITLAB_TOKEN")
	if token == "" {
		token = os.Getenv("GL_TOKEN")
	}
	if token == "" {
		return
	}

	logger.Debugf("Using token from environment for %s", defaultHost)
	s.Integrations.GitLab = append(s.Integrations.GitLab, GitLabIntegration{
		Host:  defaultHost,
		Token: token,
	})
}

// ResolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func ResolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	if resolved == "" {
		return resolved
	}

	if info, statErr := os.Stat(resolved); statErr == nil && !info.IsDir() {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

func (s *Settings) applyDefaults() {
	d := &s.Defaults
	if d.Host == "" {
		d.Host = defaultHost
	}
	if d.SourceBranch == "" {
		d.SourceBranch = defaultSourceBranch
	}
	if d.TargetBranch == "" {
		d.TargetBranch = defaultTargetBranch
	}
	if d.CloneBranch == "" {
		d.CloneBranch = defaultCloneBranch
	}
	if d.Remote == "" {
		d.Remote = defaultRemote
	}
	if d.Author.Name == "" {
		d.Author.Name = defaultAuthorName
	}
	if d.Author.Email == "" {
		d.Author.Email = defaultAuthorEmail
	}
}

// validate checks for required configuration values.
func validate(settings *Settings) error {
	for i, integration := range settings.Integrations.GitLab {
		if integration.Host == "" {
			return fmt.Errorf("integrations.gitlab[%d].host is required", i)
		}
		if strings.Contains(integration.Host, "/") {
			return fmt.Errorf(
				"integrations.gitlab[%d].host must be a bare hostname, got %q",
				i, integration.Host,
			)
		}
	}
	return nil
}
