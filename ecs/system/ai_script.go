package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// ScriptLoader returns the source of a tengo script by path.
type ScriptLoader func(path string) ([]byte, error)

// AttackSelector runs an actor's selection script over the attacks that are
// ready right now. The script reads the globals ready, distance, phase and
// health_ratio and assigns the chosen name to choice.
type AttackSelector struct {
	load  ScriptLoader
	cache map[string]*tengo.Compiled
}

func NewAttackSelector(load ScriptLoader) *AttackSelector {
	return &AttackSelector{load: load, cache: make(map[string]*tengo.Compiled)}
}

// SelectionInput is what a selection script may look at.
type SelectionInput struct {
	Ready       []string
	Distance    float64
	Phase       int
	HealthRatio float64
}

// Choose returns the script's choice. The caller checks the result against
// the ready list.
func (s *AttackSelector) Choose(path string, in SelectionInput) (string, error) {
	if s == nil || s.load == nil {
		return "", fmt.Errorf("attack selector has no script loader")
	}
	compiled, err := s.compiled(path)
	if err != nil {
		return "", err
	}

	ready := make([]interface{}, 0, len(in.Ready))
	for _, name := range in.Ready {
		ready = append(ready, name)
	}
	for name, v := range map[string]interface{}{
		"ready":        ready,
		"distance":     in.Distance,
		"phase":        in.Phase,
		"health_ratio": in.HealthRatio,
		"choice":       "",
	} {
		if err := compiled.Set(name, v); err != nil {
			return "", fmt.Errorf("set %s in %s: %w", name, path, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return "", fmt.Errorf("run %s: %w", path, err)
	}
	return strings.TrimSpace(compiled.Get("choice").String()), nil
}

// Invalidate drops a cached script so the next call recompiles it.
func (s *AttackSelector) Invalidate(path string) {
	if s == nil {
		return
	}
	if path == "" {
		clear(s.cache)
		return
	}
	delete(s.cache, path)
}

func (s *AttackSelector) compiled(path string) (*tengo.Compiled, error) {
	if c, ok := s.cache[path]; ok {
		return c, nil
	}
	src, err := s.load(path)
	if err != nil {
		return nil, fmt.Errorf("load attack script %s: %w", path, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("ready", []interface{}{})
	_ = script.Add("distance", 0.0)
	_ = script.Add("phase", 1)
	_ = script.Add("health_ratio", 1.0)
	_ = script.Add("choice", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile attack script %s: %w", path, err)
	}
	s.cache[path] = compiled
	return compiled, nil
}
