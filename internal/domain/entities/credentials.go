package entities

// Credentials is a bearer token bound to the URL it was resolved for.
// It lives for a single action invocation and is never persisted.
type Credentials struct {
	URL   string
	Token string
}

// Target is the resolved GitLab host and the token used to talk to it.
type Target struct {
	Host  string
	Token string
}

// HasToken reports whether the credentials carry a usable token.
func (c *Credentials) HasToken() bool {
	return c != nil && c.Token != ""
}
