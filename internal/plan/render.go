package plan

import (
	"fmt"
	"io"
	"strings"
)

// Render returns the command as one shell line.
func Render(c Command) string {
	return c.Request().String()
}

// Describe writes a human-readable listing of the plan, one line per command.
func Describe(w io.Writer, role Role, phases []Phase) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan for %s (%d phases)\n", role, len(phases))
	for _, p := range phases {
		fmt.Fprintf(&b, "\n%d. %s [%s]", p.Ordinal, p.Title, p.Name)
		if p.BestEffortOnly() {
			b.WriteString(" (best-effort only)")
		}
		b.WriteString("\n")
		if p.Delay > 0 {
			fmt.Fprintf(&b, "   wait %s\n", p.Delay)
		}
		for i, c := range p.Commands {
			var flags []string
			if c.Policy == BestEffort {
				flags = append(flags, c.Policy.String())
			}
			if c.Retry == RetryNetwork {
				flags = append(flags, "retry")
			}
			for _, a := range c.Artifacts {
				flags = append(flags, "-> "+a.Path)
			}

			suffix := ""
			if len(flags) > 0 {
				suffix = "  (" + strings.Join(flags, ", ") + ")"
			}
			fmt.Fprintf(&b, "   %2d) %s\n       $ %s%s\n", i+1, c.Description, Render(c), suffix)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
