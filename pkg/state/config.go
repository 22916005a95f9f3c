// SPDX-License-Identifier: BSD-3-Clause

package state

import (
	"context"
	"fmt"
	"time"
)

// StateDefinition describes one state and its entry/exit hooks.
type StateDefinition struct {
	Name        string
	Description string
	OnEntry     func(ctx context.Context) error
	OnExit      func(ctx context.Context) error
}

// TransitionDefinition describes one allowed transition, with an optional
// guard gating whether it may fire and an optional action run on entry to
// the destination state.
type TransitionDefinition struct {
	From    string
	To      string
	Trigger string
	Guard   func(ctx context.Context) bool
	Action  func(ctx context.Context, from, to string) error
}

// Config holds the configuration for a state machine wrapper.
type Config struct {
	Name          string
	Description   string
	InitialState  string
	States        []StateDefinition
	Transitions   []TransitionDefinition
	StateTimeout  time.Duration
	PersistState  bool
	EnableTracing bool
}

// Option represents a configuration option for the state machine.
type Option interface {
	apply(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) apply(c *Config) { f(c) }

// WithName sets the name of the state machine.
func WithName(name string) Option {
	return optionFunc(func(c *Config) { c.Name = name })
}

// WithDescription sets the description of the state machine.
func WithDescription(description string) Option {
	return optionFunc(func(c *Config) { c.Description = description })
}

// WithInitialState sets the initial state of the state machine.
func WithInitialState(state string) Option {
	return optionFunc(func(c *Config) { c.InitialState = state })
}

// WithStates sets the available states for the state machine.
func WithStates(states ...StateDefinition) Option {
	return optionFunc(func(c *Config) { c.States = append(c.States, states...) })
}

// WithTransitions adds transitions to the state machine.
func WithTransitions(transitions ...TransitionDefinition) Option {
	return optionFunc(func(c *Config) { c.Transitions = append(c.Transitions, transitions...) })
}

// WithTransition adds a single unguarded, action-less transition.
func WithTransition(from, to, trigger string) Option {
	return WithTransitions(TransitionDefinition{From: from, To: to, Trigger: trigger})
}

// WithGuardedTransition adds a transition with a guard condition.
func WithGuardedTransition(from, to, trigger string, guard func(ctx context.Context) bool) Option {
	return WithTransitions(TransitionDefinition{From: from, To: to, Trigger: trigger, Guard: guard})
}

// WithActionTransition adds a transition with an entry action.
func WithActionTransition(from, to, trigger string, action func(ctx context.Context, from, to string) error) Option {
	return WithTransitions(TransitionDefinition{From: from, To: to, Trigger: trigger, Action: action})
}

// WithStateTimeout sets the maximum duration for state transitions.
func WithStateTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *Config) { c.StateTimeout = timeout })
}

// WithPersistState enables persistence-callback invocation on every transition.
func WithPersistState(persist bool) Option {
	return optionFunc(func(c *Config) { c.PersistState = persist })
}

// WithTracing enables OpenTelemetry spans around Fire calls.
func WithTracing(enabled bool) Option {
	return optionFunc(func(c *Config) { c.EnableTracing = enabled })
}

// NewConfig creates a new state machine configuration with the provided options.
func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		StateTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt.apply(cfg)
	}
	return cfg
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidConfig)
	}
	if c.InitialState == "" {
		return fmt.Errorf("%w: initial state cannot be empty", ErrInvalidConfig)
	}
	if len(c.States) == 0 {
		return fmt.Errorf("%w: at least one state must be defined", ErrInvalidConfig)
	}

	initialStateFound := false
	stateNames := make(map[string]bool, len(c.States))
	for _, s := range c.States {
		if s.Name == "" {
			return fmt.Errorf("%w: state name cannot be empty", ErrInvalidConfig)
		}
		if stateNames[s.Name] {
			return fmt.Errorf("%w: duplicate state name: %s", ErrInvalidConfig, s.Name)
		}
		stateNames[s.Name] = true
		if s.Name == c.InitialState {
			initialStateFound = true
		}
	}
	if !initialStateFound {
		return fmt.Errorf("%w: initial state %s not found in states list", ErrInvalidConfig, c.InitialState)
	}

	for _, t := range c.Transitions {
		if t.From == "" || t.To == "" {
			return fmt.Errorf("%w: transition from and to states cannot be empty", ErrInvalidConfig)
		}
		if t.Trigger == "" {
			return fmt.Errorf("%w: transition trigger cannot be empty", ErrInvalidConfig)
		}
		if !stateNames[t.From] {
			return fmt.Errorf("%w: transition from state %s not found", ErrInvalidConfig, t.From)
		}
		if !stateNames[t.To] {
			return fmt.Errorf("%w: transition to state %s not found", ErrInvalidConfig, t.To)
		}
	}

	if c.StateTimeout <= 0 {
		return fmt.Errorf("%w: state timeout must be positive", ErrInvalidConfig)
	}

	return nil
}
