// Package command implements the text-command surface of the system: commands
// of the form VERB["param","param",...] are parsed and dispatched to the
// services, producing a plain-text reply.
package command

import (
	"regexp"
	"strings"

	"github.com/MarceloCamachh/tecnoWebEmail/internal/domain"
)

// Command is one parsed text command.
type Command struct {
	Verb   string
	Params []string
}

var (
	commandRe = regexp.MustCompile(`^([A-Z]+)\[(.*)\]$`)
	paramRe   = regexp.MustCompile(`"([^"]*)"`)
)

// Parse splits a raw command string into its verb and quoted parameters.
// Whitespace around the command is ignored; parameters may be empty. A string
// that does not match VERB["..."] at all is a validation error.
func Parse(raw string) (*Command, error) {
	trimmed := strings.TrimSpace(raw)
	m := commandRe.FindStringSubmatch(trimmed)
	if m == nil {
		return nil, domain.Validation("malformed command %q, expected VERB[\"param\",...]", raw)
	}

	inner := strings.TrimSpace(m[2])
	cmd := &Command{Verb: m[1]}
	if inner == "" {
		return cmd, nil
	}

	params := paramRe.FindAllStringSubmatch(inner, -1)
	if params == nil {
		return nil, domain.Validation("malformed parameter list in %q, parameters must be double-quoted", raw)
	}
	for _, p := range params {
		cmd.Params = append(cmd.Params, p[1])
	}
	return cmd, nil
}

// arg returns the i-th parameter or "" when absent.
func (c *Command) arg(i int) string {
	if i >= len(c.Params) {
		return ""
	}
	return c.Params[i]
}

func (c *Command) requireArgs(n int) error {
	if len(c.Params) < n {
		return domain.Validation("%s expects at least %d parameters, got %d", c.Verb, n, len(c.Params))
	}
	return nil
}
