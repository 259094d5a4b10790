package template

import "fmt"

// maxDepth is the number of hierarchy levels a template may nest:
// line, component, bet, initiative.
const maxDepth = 4

// ValidateSchema checks a TemplateSchema for structural errors.
// Returns a slice of errors (empty if valid).
func ValidateSchema(schema *TemplateSchema) []error {
	var errs []error

	if schema.ID == "" {
		errs = append(errs, fmt.Errorf("template id is required"))
	}
	if schema.Name == "" {
		errs = append(errs, fmt.Errorf("template name is required"))
	}

	errs = append(errs, validateNodes(schema.Nodes, "nodes", 1)...)
	return errs
}

func validateNodes(nodes []NodeConfig, path string, depth int) []error {
	var errs []error

	codes := map[string]bool{}
	for i, n := range nodes {
		at := fmt.Sprintf("%s[%d]", path, i)
		if n.Code == "" {
			errs = append(errs, fmt.Errorf("%s: code is required", at))
		}
		if n.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", at))
		}
		if codes[n.Code] {
			errs = append(errs, fmt.Errorf("%s: duplicate sibling code %q", at, n.Code))
		}
		codes[n.Code] = true

		if len(n.Children) > 0 {
			if depth >= maxDepth {
				errs = append(errs, fmt.Errorf("%s: nesting deeper than %d levels", at, maxDepth))
				continue
			}
			errs = append(errs, validateNodes(n.Children, at+".children", depth+1)...)
		}
	}
	return errs
}
