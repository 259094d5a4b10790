package hierarchy

import (
	"sort"

	"github.com/camiloruiz/plandes/internal/domain"
)

// TreeNode is one node of the materialized plan tree.
type TreeNode struct {
	Node     *domain.PlanNode
	Children []*TreeNode
}

// Build converts a flat node list into a nested, code-ordered tree.
// A node whose declared parent is not among the input ids is treated as
// a root rather than dropped; orphans counts how many nodes fell back
// that way so the caller can surface the inconsistency. Building twice
// from the same input yields structurally identical trees.
func Build(nodes []*domain.PlanNode) (roots []*TreeNode, orphans int) {
	index := make(map[string]*TreeNode, len(nodes))
	for _, n := range nodes {
		index[n.ID] = &TreeNode{Node: n}
	}

	for _, n := range nodes {
		tn := index[n.ID]
		if n.ParentID == nil {
			roots = append(roots, tn)
			continue
		}
		parent, ok := index[*n.ParentID]
		if !ok {
			orphans++
			roots = append(roots, tn)
			continue
		}
		parent.Children = append(parent.Children, tn)
	}

	sortTree(roots)
	for _, r := range roots {
		sortChildren(r)
	}
	return roots, orphans
}

// Walk visits the tree depth-first in code order, calling fn with each
// node and its ancestor chain (outermost first). The tree is not
// mutated; fn must not retain the ancestors slice.
func Walk(roots []*TreeNode, fn func(n *TreeNode, ancestors []*TreeNode)) {
	var visit func(n *TreeNode, ancestors []*TreeNode)
	visit = func(n *TreeNode, ancestors []*TreeNode) {
		fn(n, ancestors)
		next := append(append([]*TreeNode(nil), ancestors...), n)
		for _, c := range n.Children {
			visit(c, next)
		}
	}
	for _, r := range roots {
		visit(r, nil)
	}
}

func sortChildren(n *TreeNode) {
	sortTree(n.Children)
	for _, c := range n.Children {
		sortChildren(c)
	}
}

func sortTree(nodes []*TreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return CompareCodes(nodes[i].Node.Code, nodes[j].Node.Code) < 0
	})
}
