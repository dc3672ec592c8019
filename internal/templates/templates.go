// Package templates holds the catalog of project templates: a fixed mapping
// from a template key to an ordered list of milestone names used to seed a
// new project's timeline.
package templates

// Template is a named, ordered list of milestone names.
type Template struct {
	Label      string
	Milestones []string
}

// Template keys accepted at project creation.
const (
	KeyWebDev = "web-dev"
	KeyAppDev = "app-dev"
	KeyDesign = "design"
	KeyBlank  = "blank"
)

var catalog = map[string]Template{
	KeyWebDev: {
		Label:      "Web Development",
		Milestones: []string{"Wireframing", "UI Design", "Frontend Dev", "Backend Setup", "Deployment"},
	},
	KeyAppDev: {
		Label:      "Mobile App",
		Milestones: []string{"Prototype", "API Design", "App Development", "Play Store Submit"},
	},
	KeyDesign: {
		Label:      "Brand Identity / Logo",
		Milestones: []string{"Moodboard", "Sketching", "Vectorizing", "Final Delivery"},
	},
	KeyBlank: {
		Label:      "Start from Scratch",
		Milestones: []string{},
	},
}

// DefaultMilestones seed a timeline when the owner asks for a starting point
// on an empty project.
var DefaultMilestones = []string{"Planning", "Development", "Delivery"}

// Get returns the template for a key. The empty key maps to the blank
// template.
func Get(key string) (Template, bool) {
	if key == "" {
		key = KeyBlank
	}
	tpl, ok := catalog[key]
	return tpl, ok
}

// Keys returns the catalog keys in a stable order.
func Keys() []string {
	return []string{KeyWebDev, KeyAppDev, KeyDesign, KeyBlank}
}
