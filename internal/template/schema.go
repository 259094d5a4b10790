package template

// TemplateSchema is the top-level YAML template structure. Nodes nest
// directly: depth in the tree decides the level (line, component, bet,
// initiative), so a template never states levels explicitly.
type TemplateSchema struct {
	ID          string       `yaml:"id"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description,omitempty"`
	Nodes       []NodeConfig `yaml:"nodes"`
}

type NodeConfig struct {
	Code     string       `yaml:"code"`
	Name     string       `yaml:"name"`
	Children []NodeConfig `yaml:"children,omitempty"`
}
