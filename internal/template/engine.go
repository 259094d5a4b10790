package template

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/camiloruiz/plandes/internal/domain"
)

//go:embed default.yaml
var defaultTemplateYAML []byte

// TemplateFile pairs a parsed template with its on-disk source.
// The embedded default template has an empty Path.
type TemplateFile struct {
	Schema TemplateSchema
	Path   string
}

// ParseTemplateYAML decodes and validates a single template payload.
func ParseTemplateYAML(data []byte) (*TemplateSchema, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("template payload is empty")
	}
	var schema TemplateSchema
	if err := yaml.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	if errs := ValidateSchema(&schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template: %w", errors.Join(errs...))
	}
	return &schema, nil
}

// LoadTemplateFile reads a YAML file from disk and returns the parsed template.
func LoadTemplateFile(path string) (TemplateFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return TemplateFile{}, fmt.Errorf("reading template %s: %w", path, err)
	}
	schema, err := ParseTemplateYAML(data)
	if err != nil {
		return TemplateFile{}, fmt.Errorf("template %s: %w", path, err)
	}
	return TemplateFile{Schema: *schema, Path: filepath.Clean(path)}, nil
}

// LoadTemplateDir scans a directory for *.yaml templates and returns them
// sorted by path. A missing or empty directory yields only the embedded
// default template, so startup never depends on user-provided files.
func LoadTemplateDir(dir string) ([]TemplateFile, error) {
	templates := []TemplateFile{DefaultTemplate()}

	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return templates, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return templates, nil
		}
		return nil, fmt.Errorf("reading template dir %s: %w", trimmed, err)
	}

	var loaded []TemplateFile
	for _, entry := range entries {
		if entry.IsDir() || !isYAMLFile(entry.Name()) {
			continue
		}
		tf, err := LoadTemplateFile(filepath.Join(trimmed, entry.Name()))
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, tf)
	}
	sort.Slice(loaded, func(i, j int) bool { return loaded[i].Path < loaded[j].Path })
	return append(templates, loaded...), nil
}

// FindTemplate returns the template with the given id, or an error naming
// the ids that are available.
func FindTemplate(templates []TemplateFile, id string) (*TemplateSchema, error) {
	var ids []string
	for i := range templates {
		if templates[i].Schema.ID == id {
			return &templates[i].Schema, nil
		}
		ids = append(ids, templates[i].Schema.ID)
	}
	return nil, fmt.Errorf("template %q not found (available: %s)", id, strings.Join(ids, ", "))
}

// DefaultTemplate returns the embedded template used when no template id
// is given. It is validated at build time by the package tests.
func DefaultTemplate() TemplateFile {
	var schema TemplateSchema
	if err := yaml.Unmarshal(defaultTemplateYAML, &schema); err != nil {
		panic(fmt.Sprintf("embedded default template: %v", err))
	}
	return TemplateFile{Schema: schema}
}

// Instantiate materializes a template's node tree as plan nodes for the
// given plan. Every node gets a fresh UUID; levels follow nesting depth
// starting at line.
func Instantiate(schema *TemplateSchema, planID string) ([]*domain.PlanNode, error) {
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return nil, fmt.Errorf("invalid template: %w", errors.Join(errs...))
	}

	now := time.Now().UTC()
	var nodes []*domain.PlanNode

	var expand func(configs []NodeConfig, parentID *string, level domain.NodeLevel) error
	expand = func(configs []NodeConfig, parentID *string, level domain.NodeLevel) error {
		for _, nc := range configs {
			node := &domain.PlanNode{
				ID:        uuid.New().String(),
				PlanID:    planID,
				ParentID:  parentID,
				Level:     level,
				Code:      nc.Code,
				Name:      nc.Name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			nodes = append(nodes, node)

			if len(nc.Children) > 0 {
				child, ok := domain.ChildLevel(level)
				if !ok {
					return fmt.Errorf("node %q: %s nodes cannot have children", nc.Code, level)
				}
				if err := expand(nc.Children, &node.ID, child); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := expand(schema.Nodes, nil, domain.LevelLine); err != nil {
		return nil, err
	}
	return nodes, nil
}

func isYAMLFile(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	return strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml")
}
