package chart

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Registry binds chart roles to canvases and live instances. It is not safe
// for concurrent use; the UI event loop owns it.
type Registry struct {
	renderer Renderer
	theme    Theme
	canvases map[Role]Canvas
	live     map[Role]Instance
	specs    map[Role]Spec
}

// NewRegistry creates an empty registry drawing with renderer.
func NewRegistry(renderer Renderer, theme Theme) *Registry {
	return &Registry{
		renderer: renderer,
		theme:    theme,
		canvases: make(map[Role]Canvas),
		live:     make(map[Role]Instance),
		specs:    make(map[Role]Spec),
	}
}

// Mount makes a canvas available for role. Remounting a live role redraws
// it at the new size.
func (g *Registry) Mount(role Role, width, height int) error {
	g.canvases[role] = Canvas{Width: width, Height: height}
	if spec, ok := g.specs[role]; ok {
		return g.Render(role, spec)
	}
	return nil
}

// Unmount destroys the role's chart and removes its canvas.
func (g *Registry) Unmount(role Role) {
	g.Destroy(role)
	delete(g.canvases, role)
}

// Mounted reports whether role has a canvas.
func (g *Registry) Mounted(role Role) bool {
	_, ok := g.canvases[role]
	return ok
}

// Render destroys whatever is bound to role and draws spec in its place.
// Without a canvas nothing happens. An empty spec only clears the
// technical and volume roles.
func (g *Registry) Render(role Role, spec Spec) error {
	if _, ok := g.canvases[role]; !ok {
		return nil
	}
	if spec == nil || spec.Empty() {
		if role == RoleTechnical || role == RoleVolume {
			g.Destroy(role)
		}
		return nil
	}

	g.Destroy(role)
	inst, err := g.renderer.Draw(role, g.canvases[role], spec, g.theme)
	if err != nil {
		return fmt.Errorf("render %s chart: %w", role, err)
	}
	g.live[role] = inst
	g.specs[role] = spec
	return nil
}

// Destroy releases the instance bound to role, including one the renderer
// still tracks for that canvas.
func (g *Registry) Destroy(role Role) {
	if inst, ok := g.live[role]; ok {
		inst.Destroy()
		delete(g.live, role)
	}
	delete(g.specs, role)
	if orphan := g.renderer.Lookup(role); orphan != nil {
		orphan.Destroy()
	}
}

// DestroyAll releases every live instance.
func (g *Registry) DestroyAll() {
	for _, role := range slices.Sorted(maps.Keys(g.live)) {
		g.Destroy(role)
	}
}

// SetTheme switches the palette and redraws every live chart from its last
// spec. No data is refetched.
func (g *Registry) SetTheme(theme Theme) error {
	g.theme = theme
	var errs []error
	for _, role := range slices.Sorted(maps.Keys(g.specs)) {
		if err := g.Render(role, g.specs[role]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Theme returns the active palette.
func (g *Registry) Theme() Theme { return g.theme }

// View returns the drawn chart for role, or "" when none is live.
func (g *Registry) View(role Role) string {
	if inst, ok := g.live[role]; ok {
		return inst.View()
	}
	return ""
}

// Live reports whether role has a live instance.
func (g *Registry) Live(role Role) bool {
	_, ok := g.live[role]
	return ok
}

// LiveCount is the number of live instances.
func (g *Registry) LiveCount() int { return len(g.live) }
