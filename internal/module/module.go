// Package module defines the shared contract implemented by every
// interactive screen in the rebase tool (the external-editor module, the
// list module, the confirm module, ...), along with the event and artifact
// vocabulary the dispatcher uses to drive them.
//
// This is deliberately not an alias of a one-shot "Field"/"Init, Update,
// Render" widget contract: a Field is initialized once per form and then
// driven to a single accept/skip outcome, whereas a Module is long-lived
// and may be re-Activated every time the dispatcher switches the user
// back into it.
package module

// State identifies which module is active, so artifacts can request a
// transition and the dispatcher can hand the prior module back to a module
// it is re-entering.
type State int

// The closed set of modules this tool's dispatcher knows how to switch
// between.
const (
	List State = iota
	ExternalEditor
	Confirm
)

func (s State) String() string {
	switch s {
	case List:
		return "list"
	case ExternalEditor:
		return "externalEditor"
	case Confirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// ExitCode is the outcome reported in an Artifact of kind ExitStatus.
type ExitCode int

const (
	// Good indicates the rebase plan editing session completed, or the
	// user deliberately chose to abort from a module that has already
	// emptied the plan itself.
	Good ExitCode = iota
	// Bad indicates the session ended due to an unrecoverable error.
	Bad
	// Abort indicates the user confirmed abandoning the rebase; the host
	// empties the plan before writing it back so Git aborts.
	Abort
)

// Event is anything the event layer or host can deliver to a module.
//
// It is a minimal, closed vocabulary: a single decoded key, an arrow key
// (which a raw keystroke stream delivers as a multi-byte escape sequence
// rather than a single rune), or one of the two meta-events a host-spawned
// external command can resolve to. Modules in the Active state silently
// drop anything else.
type Event struct {
	// Key is the rune of a character event (e.g. '1'..'4'), valid when
	// Meta == MetaNone and Arrow == ArrowNone.
	Key rune

	// Arrow identifies an arrow-key event decoded from an escape
	// sequence, valid when Meta == MetaNone.
	Arrow ArrowKey

	// Meta identifies a synthetic event emitted by the host rather than
	// a raw keystroke.
	Meta MetaEvent
}

// ArrowKey distinguishes the arrow keys an [EventSource] may decode from a
// multi-byte terminal escape sequence, since those have no single-rune
// representation.
type ArrowKey int

const (
	// ArrowNone marks an Event as carrying no arrow key.
	ArrowNone ArrowKey = iota
	// ArrowUp is the up-arrow key.
	ArrowUp
	// ArrowDown is the down-arrow key.
	ArrowDown
)

// ArrowEvent builds an Event carrying an arrow-key press.
func ArrowEvent(a ArrowKey) Event { return Event{Arrow: a} }

// MetaEvent distinguishes host-synthesized events from raw keystrokes.
type MetaEvent int

const (
	// MetaNone marks an Event as a plain key event.
	MetaNone MetaEvent = iota
	// MetaExternalCommandSuccess reports that a spawned external command
	// exited zero.
	MetaExternalCommandSuccess
	// MetaExternalCommandError reports that a spawned external command
	// exited non-zero, or otherwise failed to run.
	MetaExternalCommandError
)

// KeyEvent builds a plain character Event.
func KeyEvent(r rune) Event { return Event{Key: r} }

// ArtifactKind discriminates the closed set of artifacts a module may
// return.
type ArtifactKind int

const (
	// KindExternalCommand requests the host launch a child process.
	KindExternalCommand ArtifactKind = iota
	// KindEvent echoes the event that was just consumed, so the
	// dispatcher may record it.
	KindEvent
	// KindChangeState requests the dispatcher switch the active module.
	KindChangeState
	// KindExitStatus requests the program exit with the given outcome.
	KindExitStatus
	// KindError reports a recoverable or unrecoverable error.
	KindError
)

// Artifact is a side-effect request a module hands back to its caller
// instead of performing the side effect itself: a command to launch, a
// state to switch to, an exit code, or an error to report. The module never
// spawns a process, switches state, or calls os.Exit on its own.
type Artifact struct {
	Kind ArtifactKind

	// Program and Args are set when Kind == KindExternalCommand.
	Program string
	Args    []string

	// Event is set when Kind == KindEvent.
	Event Event

	// TargetState is set when Kind == KindChangeState.
	TargetState State

	// ExitCode is set when Kind == KindExitStatus.
	ExitCode ExitCode

	// Message and Continuation are set when Kind == KindError.
	// Continuation is the state the dispatcher should return to, if any
	// was supplied.
	Message      string
	Continuation *State
}

// ExternalCommand builds an Artifact requesting the host launch program
// with args.
func ExternalCommand(program string, args []string) Artifact {
	return Artifact{Kind: KindExternalCommand, Program: program, Args: args}
}

// EchoEvent builds an Artifact echoing e back to the dispatcher.
func EchoEvent(e Event) Artifact {
	return Artifact{Kind: KindEvent, Event: e}
}

// ChangeState builds an Artifact requesting a switch to the given module.
func ChangeState(s State) Artifact {
	return Artifact{Kind: KindChangeState, TargetState: s}
}

// ExitStatus builds an Artifact requesting the program exit with code.
func ExitStatus(code ExitCode) Artifact {
	return Artifact{Kind: KindExitStatus, ExitCode: code}
}

// Error builds an Artifact reporting message, optionally naming a
// continuation state for the dispatcher to fall back to.
func Error(message string, continuation *State) Artifact {
	return Artifact{Kind: KindError, Message: message, Continuation: continuation}
}

// ContinuationState is a convenience constructor for a *State literal, since
// Go has no address-of-literal syntax.
func ContinuationState(s State) *State {
	return &s
}

// Results is the ordered list of artifacts a module hands back from
// Activate, Deactivate, or HandleEvent.
type Results []Artifact

// ViewData is the renderable payload of a module's current prompt: a title,
// a body of literal lines, and an optional footer. Rendering to screen
// cells is out of scope for this package; ViewData is plain data consumed
// by the view layer.
type ViewData struct {
	Title  string
	Body   []string
	Footer string
}

// Module is the capability set every interactive screen implements.
type Module interface {
	// Activate is called when the module becomes active, receiving the
	// state the dispatcher is switching from.
	Activate(prior State) Results

	// Deactivate is called when leaving the module, releasing any
	// cached state.
	Deactivate() Results

	// HandleEvent consumes one event and returns the artifacts it
	// produces.
	HandleEvent(e Event) Results

	// BuildViewData renders the module's current prompt.
	BuildViewData() ViewData
}
