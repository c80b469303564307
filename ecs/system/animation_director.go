package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/character2d/ecs"
	"github.com/milk9111/character2d/ecs/component"
	"github.com/milk9111/character2d/logging"
	"github.com/milk9111/character2d/prefabs"
)

// AnimationDirectorSystem lets a tengo script pick a character's animation.
// The script sees the globals `tick` (world frame) and `current` (the
// request so far) and assigns the global `anim`; a non-empty `anim` becomes
// the new request.
type AnimationDirectorSystem struct {
	load    func(name string) ([]byte, error)
	log     *log.Logger
	scripts map[string]*directorScript

	// compile errors are permanent; load errors are retried every tick
	broken   map[string]error
	reported map[string]bool
}

type directorScript struct {
	compiled *tengo.Compiled
}

func NewAnimationDirectorSystem(load func(name string) ([]byte, error), logger *log.Logger) *AnimationDirectorSystem {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &AnimationDirectorSystem{
		load:     load,
		log:      logging.Or(logger),
		scripts:  make(map[string]*directorScript),
		broken:   make(map[string]error),
		reported: make(map[string]bool),
	}
}

func (d *AnimationDirectorSystem) Update(w *ecs.World) {
	if d == nil || w == nil {
		return
	}
	tick := int(w.Time().Frame)
	ecs.ForEach2(w, component.AnimationScriptComponent.Kind(), component.AnimationRequestComponent.Kind(), func(e ecs.Entity, sc *component.AnimationScript, req *component.AnimationRequest) {
		rt, err := d.script(sc.Path)
		if err != nil {
			if !d.reported[sc.Path] {
				d.reported[sc.Path] = true
				d.log.Warn("director script unavailable", "entity", e, "script", sc.Path, "err", err)
			}
			return
		}
		name, err := rt.run(tick, req.Name)
		if err != nil {
			d.log.Warn("director script failed", "entity", e, "script", sc.Path, "err", err)
			return
		}
		if name != "" {
			req.Set(name)
		}
	})
}

func (d *AnimationDirectorSystem) script(path string) (*directorScript, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := d.scripts[path]; ok {
		return rt, nil
	}
	if err, ok := d.broken[path]; ok {
		return nil, err
	}
	src, err := d.load(path)
	if err != nil {
		return nil, err
	}
	rt, err := compileDirectorScript(src)
	if err != nil {
		err = fmt.Errorf("compile %s: %w", path, err)
		d.broken[path] = err
		return nil, err
	}
	delete(d.reported, path)
	d.scripts[path] = rt
	return rt, nil
}

func compileDirectorScript(src []byte) (*directorScript, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tick", 0)
	_ = script.Add("current", "")
	_ = script.Add("anim", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, err
	}
	return &directorScript{compiled: compiled}, nil
}

func (s *directorScript) run(tick int, current string) (string, error) {
	if err := s.compiled.Set("tick", tick); err != nil {
		return "", err
	}
	if err := s.compiled.Set("current", current); err != nil {
		return "", err
	}
	if err := s.compiled.Set("anim", ""); err != nil {
		return "", err
	}
	if err := s.compiled.Run(); err != nil {
		return "", err
	}
	return s.compiled.Get("anim").String(), nil
}
