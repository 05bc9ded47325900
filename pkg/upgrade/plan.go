// Package upgrade decides target engine versions and drives the plan/apply
// cycle. Three error policies coexist on purpose and must stay distinct:
// inventory failures are recorded and skipped, a declined confirmation
// aborts before any mutation, and a failed apply stops the run with prior
// mutations left in place.
package upgrade

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/opsgrid/dbfleet/pkg/io/logging"
)

// ErrDeclined is returned when the operator answers the confirmation prompt
// with anything but y/Y.
var ErrDeclined = errors.New("apply aborted: confirmation declined")

// PendingCommand is one planned modification. It carries the parameters for
// display and a typed API invocation; no shell string is ever built.
type PendingCommand struct {
	Action  string
	Target  string
	Cluster string
	Region  string
	Version string
	applyFn func(ctx context.Context) error
}

func (c PendingCommand) String() string {
	return fmt.Sprintf("%s %s --engine-version %s  # cluster=%s region=%s",
		c.Action, c.Target, c.Version, c.Cluster, c.Region)
}

// Plan accumulates pending commands in insertion order.
type Plan struct {
	commands []PendingCommand
	logger   logging.LogManager
}

func NewPlan() *Plan {
	return &Plan{logger: logging.GetLogManager()}
}

func (p *Plan) Add(cmd PendingCommand) {
	p.commands = append(p.commands, cmd)
}

func (p *Plan) Len() int { return len(p.commands) }

// Print writes every pending command as a literal line. It never mutates
// anything, so running it twice against an unchanged fleet yields identical
// output.
func (p *Plan) Print(w io.Writer) {
	if len(p.commands) == 0 {
		fmt.Fprintln(w, "No changes needed.")
		return
	}
	fmt.Fprintf(w, "Planned changes (%d):\n", len(p.commands))
	for _, cmd := range p.commands {
		fmt.Fprintf(w, "  %s\n", cmd)
	}
}

// Apply prints the plan, asks for one confirmation, then executes commands
// sequentially in plan order. The run stops on the first failed command;
// already-applied commands are not rolled back.
func (p *Plan) Apply(ctx context.Context, in io.Reader, out io.Writer) error {
	p.Print(out)
	if len(p.commands) == 0 {
		return nil
	}
	if !confirm(in, out) {
		fmt.Fprintln(out, "Apply aborted.")
		return ErrDeclined
	}
	for _, cmd := range p.commands {
		p.logger.Info("Applying", "action", cmd.Action, "target", cmd.Target, "version", cmd.Version)
		if err := cmd.applyFn(ctx); err != nil {
			return fmt.Errorf("apply failed on %s %s: %w", cmd.Action, cmd.Target, err)
		}
	}
	return nil
}

func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Proceed with applying these changes? [y/N]: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}
