package positions

import "strings"

// Position is a hiring role a CV can be evaluated against.
type Position struct {
	ID   string
	Name string
	Icon string
}

var catalog = []Position{
	{ID: "python_developer", Name: "Python Developer", Icon: "🐍"},
	{ID: "java_developer", Name: "Java Developer", Icon: "☕"},
	{ID: "ai_ml_engineer", Name: "AI/ML Engineer", Icon: "🤖"},
	{ID: "frontend_developer", Name: "Frontend Developer", Icon: "🎨"},
	{ID: "devops_engineer", Name: "DevOps Engineer", Icon: "🔧"},
	{ID: "full_stack_developer", Name: "Full Stack Developer", Icon: "🚀"},
	{ID: "data_engineer", Name: "Data Engineer", Icon: "📊"},
	{ID: "qa_engineer", Name: "QA Engineer", Icon: "✅"},
}

// All returns a copy of the catalog in display order.
func All() []Position {
	out := make([]Position, len(catalog))
	copy(out, catalog)
	return out
}

func ByID(id string) (Position, bool) {
	for _, p := range catalog {
		if p.ID == id {
			return p, true
		}
	}
	return Position{}, false
}

// ByName matches display names case-insensitively, then falls back to ids.
func ByName(name string) (Position, bool) {
	name = strings.TrimSpace(name)
	for _, p := range catalog {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return ByID(strings.ToLower(name))
}

func Names() []string {
	names := make([]string, 0, len(catalog))
	for _, p := range catalog {
		names = append(names, p.Name)
	}
	return names
}

// Label is the text shown in selection lists.
func (p Position) Label() string {
	return p.Icon + " " + p.Name
}
