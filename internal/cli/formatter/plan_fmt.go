package formatter

import (
	"fmt"

	"github.com/camiloruiz/plandes/internal/domain"
	"github.com/camiloruiz/plandes/internal/hierarchy"
)

// FormatPlanList renders plans as a table, highlighting the active one.
func FormatPlanList(plans []*domain.Plan) string {
	headers := []string{"ID", "Plan", "Vigencia", "Estado"}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		state := Dim("inactivo")
		if p.Active {
			state = StyleGreen.Render("activo")
		}
		rows = append(rows, []string{
			Dim(shortID(p.ID)),
			p.Name,
			p.ValidityLabel(),
			state,
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlanTree renders a plan hierarchy with codes and per-initiative
// goal counts.
func FormatPlanTree(roots []*hierarchy.TreeNode, goalCounts map[string]int) string {
	var items []TreeItem

	var walk func(nodes []*hierarchy.TreeNode, level int)
	walk = func(nodes []*hierarchy.TreeNode, level int) {
		for i, n := range nodes {
			item := TreeItem{
				Code:   n.Node.Code,
				Name:   n.Node.Name,
				Level:  level,
				IsLast: i == len(nodes)-1,
			}
			if n.Node.Level == domain.LevelInitiative {
				if c := goalCounts[n.Node.ID]; c > 0 {
					item.Detail = fmt.Sprintf("%d metas", c)
					if c == 1 {
						item.Detail = "1 meta"
					}
				}
			}
			items = append(items, item)
			walk(n.Children, level+1)
		}
	}
	walk(roots, 0)

	return RenderTree(items)
}

// shortID returns the first uuid segment, enough to disambiguate in a
// single database.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
