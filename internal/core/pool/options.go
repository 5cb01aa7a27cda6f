package pool

import (
	"fmt"
	"strings"
)

// Policy selects what Create does when a capped factory is at capacity.
type Policy uint8

const (
	// PolicyFail returns ErrPoolExhausted immediately.
	PolicyFail Policy = iota
	// PolicyBlock waits for a release, Close, or context cancellation.
	PolicyBlock
)

func (p Policy) String() string {
	switch p {
	case PolicyFail:
		return "fail"
	case PolicyBlock:
		return "block"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy accepts "fail" or "block", case-insensitively. Empty means fail.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return PolicyFail, nil
	case "block":
		return PolicyBlock, nil
	default:
		return PolicyFail, fmt.Errorf("%w: unknown exhaust policy %q", ErrInvalidOption, s)
	}
}

// Option configures a Factory.
type Option func(*options)

type options struct {
	name      string
	prewarm   int
	capacity  int
	policy    Policy
	observers []Observer
}

func defaultOptions() options {
	return options{name: "unnamed"}
}

func (o options) validate() error {
	if o.prewarm < 0 {
		return fmt.Errorf("%w: negative prewarm %d", ErrInvalidOption, o.prewarm)
	}
	if o.capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidOption, o.capacity)
	}
	if o.capacity > 0 && o.prewarm > o.capacity {
		return fmt.Errorf("%w: prewarm %d exceeds capacity %d", ErrInvalidOption, o.prewarm, o.capacity)
	}
	if o.policy != PolicyFail && o.policy != PolicyBlock {
		return fmt.Errorf("%w: %s", ErrInvalidOption, o.policy)
	}
	return nil
}

// WithName labels the factory in errors and observer callbacks.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithPrewarm eagerly constructs n raw instances when the factory is built.
func WithPrewarm(n int) Option {
	return func(o *options) {
		o.prewarm = n
	}
}

// WithCapacity caps the number of instances the factory owns. Zero means unbounded.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithExhaustPolicy selects the behaviour of Create at capacity.
func WithExhaustPolicy(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}

// WithObserver attaches lifecycle hooks. May be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}
