package entities

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}
