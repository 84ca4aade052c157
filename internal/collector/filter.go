package collector

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter decides which events reach the sink. Expressions see the event as
// guid, kind, created_at and entity, where entity holds the decoded entity
// fields under their wire names, for example
//
//	entity.state == "STARTED" && entity.memory_in_mb_per_instance >= 1024
type Filter struct {
	expression string
	program    *vm.Program
}

// NewFilter compiles expression. An empty expression yields a nil filter,
// which keeps every event.
func NewFilter(expression string) (*Filter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, nil
	}

	program, err := expr.Compile(expression,
		expr.Env(filterEnv("", Event{}, nil)),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("compiling filter %q: %w", expression, err)
	}

	return &Filter{expression: expression, program: program}, nil
}

// String returns the source expression.
func (f *Filter) String() string {
	if f == nil {
		return ""
	}

	return f.expression
}

// Match evaluates the filter against event.
func (f *Filter) Match(kind Kind, event Event) (bool, error) {
	if f == nil {
		return true, nil
	}

	var entity map[string]any
	if len(event.Entity) > 0 {
		err := json.Unmarshal(event.Entity, &entity)
		if err != nil {
			return false, fmt.Errorf("decoding entity of event %s: %w", event.GUID, err)
		}
	}

	result, err := expr.Run(f.program, filterEnv(kind, event, entity))
	if err != nil {
		return false, fmt.Errorf("evaluating filter on event %s: %w", event.GUID, err)
	}

	matched, _ := result.(bool)

	return matched, nil
}

// Apply returns the events that match, in order.
func (f *Filter) Apply(kind Kind, events []Event) ([]Event, error) {
	if f == nil {
		return events, nil
	}

	kept := make([]Event, 0, len(events))

	for _, event := range events {
		matched, err := f.Match(kind, event)
		if err != nil {
			return nil, err
		}

		if matched {
			kept = append(kept, event)
		}
	}

	return kept, nil
}

func filterEnv(kind Kind, event Event, entity map[string]any) map[string]any {
	return map[string]any{
		"guid":       event.GUID,
		"kind":       string(kind),
		"created_at": event.CreatedAt,
		"entity":     entity,
		"now":        time.Now,
		"hoursSince": func(t time.Time) float64 {
			return time.Since(t).Hours()
		},
	}
}
