package wrapper

import (
	"errors"
	"fmt"
)

var (
	// ErrNamingCollision is wrapped by NamingCollisionError.
	ErrNamingCollision = errors.New("reserved attribute name")
	// ErrNoModulePath means no import path could be resolved for a component.
	ErrNoModulePath = errors.New("no module path")
	// ErrExcluded means the requested component matches an exclude pattern.
	ErrExcluded = errors.New("component is excluded")
)

// NamingCollisionError reports a manifest attribute whose name is a reserved
// word and that has no entry in the attribute mapping.
type NamingCollisionError struct {
	Attribute string
	Component string
}

func (e *NamingCollisionError) Error() string {
	return fmt.Sprintf("attribute `%s` in custom element `%s` is a reserved keyword and cannot be used; "+
		"add an attribute_mapping entry to rename the JavaScript variable that gets passed to the attribute",
		e.Attribute, e.Component)
}

func (e *NamingCollisionError) Unwrap() error { return ErrNamingCollision }

// ConfigError reports configuration that makes generation impossible.
type ConfigError struct {
	Component string // empty for run-level problems
	Msg       string
	Err       error
}

func (e *ConfigError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Component != "" {
		return fmt.Sprintf("component %s: %s", e.Component, msg)
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }
