// Package dispatch implements the host loop: it owns the currently active
// module, feeds it events one at a time, and interprets the artifacts that
// come back by launching external commands, switching modules, or ending
// the run.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/musicinmybrain/git-interactive-rebase-tool/internal/module"
)

// EventSource supplies one event at a time to the dispatcher. Next returns
// ok == false when there are no more events to deliver (e.g. the
// underlying input stream closed).
type EventSource interface {
	Next(ctx context.Context) (e module.Event, ok bool)
}

// CommandRunner launches program with args, attaching it to the terminal,
// and reports whether it exited zero. This is the dispatcher's host-side
// realization of the module.Artifact{Kind: KindExternalCommand} contract;
// the core module packages never call it directly.
type CommandRunner func(program string, args []string) error

// Dispatcher owns the active module and drives it to completion.
type Dispatcher struct {
	modules map[module.State]module.Module
	active  module.State

	events EventSource
	runner CommandRunner
	log    *slog.Logger
}

// New builds a Dispatcher over the given module set, starting in
// initial, pulling events from events, and launching external commands
// through runner.
func New(
	modules map[module.State]module.Module,
	initial module.State,
	events EventSource,
	runner CommandRunner,
	log *slog.Logger,
) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		modules: modules,
		active:  initial,
		events:  events,
		runner:  runner,
		log:     log,
	}
}

// Run drives the dispatcher until a module requests program exit or the
// context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) (module.ExitCode, error) {
	// The initial activation has no module to come from; List, the default
	// landing module, is passed as its prior state, so a module that fails
	// on entry falls back to List instead of re-entering itself.
	if code, done, err := d.apply(ctx, d.modules[d.active].Activate(module.List)); done {
		return code, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return module.Bad, err
		}

		e, ok := d.events.Next(ctx)
		if !ok {
			return module.Good, nil
		}

		if code, done, err := d.apply(ctx, d.modules[d.active].HandleEvent(e)); done {
			return code, err
		}
	}
}

// apply interprets a batch of artifacts, recursing to feed the terminal
// meta-event from a launched external command straight back into the
// active module, since the dispatcher is the only thing that knows when
// that command has finished.
func (d *Dispatcher) apply(ctx context.Context, results module.Results) (code module.ExitCode, done bool, err error) {
	for _, a := range results {
		switch a.Kind {
		case module.KindExternalCommand:
			runErr := d.runner(a.Program, a.Args)
			meta := module.MetaExternalCommandSuccess
			if runErr != nil {
				meta = module.MetaExternalCommandError
				d.log.Warn("external command failed", "program", a.Program, "err", runErr)
			}

			more := d.modules[d.active].HandleEvent(module.Event{Meta: meta})
			if code, done, err := d.apply(ctx, more); done {
				return code, done, err
			}

		case module.KindEvent:
			d.log.Debug("event handled", "module", d.active)

		case module.KindChangeState:
			if code, done, err := d.switchTo(ctx, a.TargetState); done {
				return code, done, err
			}

		case module.KindExitStatus:
			return a.ExitCode, true, nil

		case module.KindError:
			d.log.Error(a.Message, "module", d.active)
			if a.Continuation != nil {
				if code, done, err := d.switchTo(ctx, *a.Continuation); done {
					return code, done, err
				}
			}
		}
	}

	return 0, false, nil
}

// switchTo deactivates the current module, activates target, and applies
// whatever artifacts that activation immediately produces (e.g. re-entering
// ExternalEditor emits a fresh ExternalCommand on the spot).
func (d *Dispatcher) switchTo(ctx context.Context, target module.State) (code module.ExitCode, done bool, err error) {
	prior := d.active
	d.modules[prior].Deactivate()

	d.active = target
	return d.apply(ctx, d.modules[target].Activate(prior))
}
