package script

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// State is the lifecycle position of a single load of a script.
type State string

const (
	stateUnloaded = "unloaded"
	stateLoading  = "loading"
	stateActive   = "active"
	stateFailed   = "failed"
)

const (
	// StateUnloaded is the initial state and the state after unload.
	StateUnloaded State = stateUnloaded
	// StateLoading spans the interpreter call.
	StateLoading State = stateLoading
	// StateActive means the script is registered.
	StateActive State = stateActive
	// StateFailed means the interpreter rejected the script; terminal.
	StateFailed State = stateFailed
)

// Event types for the lifecycle machine.
const (
	EventLoad   = "LOAD"
	EventLoaded = "LOADED"
	EventFail   = "FAIL"
	EventUnload = "UNLOAD"
)

// LifecycleContext is the statekit context of a lifecycle machine.
type LifecycleContext struct {
	Name string
}

// Lifecycle tracks one load attempt of a script through
// unloaded -> loading -> {active, failed} and active -> unloaded.
type Lifecycle struct {
	name    string
	interp  *statekit.Interpreter[LifecycleContext]
	failure string
}

// NewLifecycle builds and starts a lifecycle machine in the unloaded state.
func NewLifecycle(name string) (*Lifecycle, error) {
	l := &Lifecycle{name: name}

	machine, err := statekit.NewMachine[LifecycleContext]("script-" + name).
		WithInitial(stateUnloaded).
		WithContext(LifecycleContext{Name: name}).
		WithAction("recordFailure", func(_ *LifecycleContext, event statekit.Event) {
			if payload, ok := event.Payload.(map[string]interface{}); ok {
				if msg, ok := payload["message"].(string); ok {
					l.failure = msg
				}
			}
		}).
		State(stateUnloaded).
		On(EventLoad).Target(stateLoading).Done().
		State(stateLoading).
		On(EventLoaded).Target(stateActive).
		On(EventFail).Target(stateFailed).Done().
		State(stateActive).
		On(EventUnload).Target(stateUnloaded).Done().
		State(stateFailed).
		OnEntry("recordFailure").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build lifecycle for %s: %w", name, err)
	}

	l.interp = statekit.NewInterpreter(machine)
	l.interp.Start()
	return l, nil
}

// Begin marks the interpreter call as started.
func (l *Lifecycle) Begin() {
	l.interp.Send(statekit.Event{Type: EventLoad})
}

// Succeed marks the script as registered.
func (l *Lifecycle) Succeed() {
	l.interp.Send(statekit.Event{Type: EventLoaded})
}

// Fail marks the load as rejected with the interpreter's message.
func (l *Lifecycle) Fail(message string) {
	l.interp.Send(statekit.Event{
		Type:    EventFail,
		Payload: map[string]interface{}{"message": message},
	})
	l.interp.Stop()
}

// Unload returns an active script to the unloaded state and stops the machine.
func (l *Lifecycle) Unload() {
	l.interp.Send(statekit.Event{Type: EventUnload})
	l.interp.Stop()
}

// State returns the current state.
func (l *Lifecycle) State() State {
	return State(l.interp.State().Value)
}

// Failure returns the message recorded on entering the failed state.
func (l *Lifecycle) Failure() string {
	return l.failure
}

// Name returns the script name the lifecycle belongs to.
func (l *Lifecycle) Name() string {
	return l.name
}
