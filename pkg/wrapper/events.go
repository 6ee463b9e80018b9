package wrapper

import (
	"fmt"
	"strings"

	"github.com/gnana997/cewrap/pkg/manifest"
	"github.com/gnana997/cewrap/pkg/naming"
)

// EventName maps a DOM event to its React handler prop.
type EventName struct {
	Name        string
	ReactName   string
	Description string
	Type        string
	// Custom marks configured global events. Their handlers are passed
	// straight through instead of being attached with useEventListener.
	Custom bool
}

// ReactEventName returns the handler prop for a DOM event name.
func ReactEventName(name string) string {
	return "on" + naming.ToPascalCase(name)
}

// ResolveEvents returns the named manifest events of a component followed by
// the configured global events. Names are unique; the first occurrence wins.
// Two different event names that map to the same handler prop (for example
// "my-change" and "my:change") return a *ConfigError.
func ResolveEvents(cfg *Config, comp manifest.Component) ([]EventName, error) {
	var events []EventName
	seen := make(map[string]bool)
	handlers := make(map[string]string)

	for _, e := range comp.Events {
		if e.Name == "" || seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		reactName := ReactEventName(e.Name)
		if other, ok := handlers[reactName]; ok {
			return nil, &ConfigError{
				Component: comp.ClassName,
				Msg:       fmt.Sprintf("events %q and %q both map to handler %s", other, e.Name, reactName),
			}
		}
		handlers[reactName] = e.Name
		events = append(events, EventName{
			Name:        e.Name,
			ReactName:   reactName,
			Description: e.Description,
			Type:        e.Type,
		})
	}

	for _, g := range cfg.GlobalEvents {
		if _, ok := handlers[g.Event]; g.Event == "" || ok || seen[g.Event] {
			continue
		}
		seen[g.Event] = true
		handlers[g.Event] = g.Event
		events = append(events, EventName{
			Name:        g.Event,
			ReactName:   g.Event,
			Description: g.Description,
			Type:        g.Type,
			Custom:      true,
		})
	}

	return events, nil
}

// componentEvents returns the events attached with useEventListener.
func componentEvents(events []EventName) []EventName {
	var out []EventName
	for _, e := range events {
		if !e.Custom {
			out = append(out, e)
		}
	}
	return out
}

func customEvents(events []EventName) []EventName {
	var out []EventName
	for _, e := range events {
		if e.Custom {
			out = append(out, e)
		}
	}
	return out
}

// typedEventType normalizes an event type for the strongly typed aliases.
// Untyped events (empty, Event or CustomEvent) report ok=false.
// Object shapes are wrapped as CustomEvent detail.
func typedEventType(t string) (string, bool) {
	t = strings.TrimSpace(t)
	switch t {
	case "", "Event", "CustomEvent":
		return "", false
	}
	if strings.HasPrefix(t, "{") {
		return "CustomEvent<" + t + ">", true
	}
	return t, true
}

// eventAliasName is the strongly typed alias of one event.
func eventAliasName(component, event string) string {
	return component + naming.ToPascalCase(event) + "ElementEvent"
}

// eventPropType returns the handler argument type of an event prop.
func eventPropType(cfg *Config, component string, e EventName) string {
	if e.Custom {
		if e.Type == "" {
			return "Event"
		}
		return e.Type
	}
	t, ok := typedEventType(e.Type)
	if cfg.StronglyTypedEvents {
		if ok {
			return eventAliasName(component, e.Name)
		}
		return component + "ElementEvent"
	}
	if ok {
		return t
	}
	return "CustomEvent"
}
