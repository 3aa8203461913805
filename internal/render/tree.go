// Package render draws a condition forest for the terminal.
package render

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/solatis/querybuilder/internal/theme"
	"github.com/solatis/querybuilder/internal/types"
)

// Placeholder shown for a field that has not been filled in.
const missing = "?"

// TreeRenderer renders forests with depth-colored styles.
// Colors degrade to plain text when the output is not a color terminal.
type TreeRenderer struct {
	r *lipgloss.Renderer
}

// NewTreeRenderer returns a renderer whose color profile is detected from w.
func NewTreeRenderer(w io.Writer) *TreeRenderer {
	return &TreeRenderer{r: lipgloss.NewRenderer(w)}
}

// Render returns one line per condition, depth-first, with tree branches
// ("├── ", "└── ") for nested groups. Connectors read as in the compiled filter:
// a condition with children ends with its group connector and "(", the group's
// last line closes it with ")", and the sibling connector follows the condition,
// or its closed group, unless it is the last of its level.
func (t *TreeRenderer) Render(forest []*types.ConditionNode) string {
	if len(forest) == 0 {
		return t.r.NewStyle().Faint(true).Render("(no conditions)")
	}
	var lines []string
	t.renderLevel(&lines, forest, nil, 0)
	return strings.Join(lines, "\n")
}

// renderLevel appends the lines of one sibling level. rails records, for each
// ancestor level, whether a vertical line continues below it.
func (t *TreeRenderer) renderLevel(lines *[]string, level []*types.ConditionNode, rails []bool, depth int) {
	colors := theme.ForDepth(depth)
	for i, node := range level {
		isLast := i == len(level)-1

		var sb strings.Builder
		sb.WriteString(t.prefix(rails, isLast, depth, colors))
		sb.WriteString(t.fields(node, colors))
		if node.HasChildren() {
			sb.WriteString("  ")
			sb.WriteString(t.connector(node.ChildGroupConnector, theme.ForDepth(depth+1)))
			sb.WriteString(" (")
		}
		*lines = append(*lines, sb.String())

		if node.HasChildren() {
			childRails := rails
			if depth > 0 {
				childRails = append(append([]bool(nil), rails...), !isLast)
			}
			t.renderLevel(lines, node.Children, childRails, depth+1)
			(*lines)[len(*lines)-1] += ")"
		}
		if !isLast {
			(*lines)[len(*lines)-1] += "  " + t.connector(node.SiblingConnector, colors)
		}
	}
}

func (t *TreeRenderer) prefix(rails []bool, isLast bool, depth int, colors theme.Color) string {
	if depth == 0 {
		return "" // Root nodes have no prefix
	}
	var parts []string
	for _, continues := range rails {
		if continues {
			parts = append(parts, "│   ")
		} else {
			parts = append(parts, "    ")
		}
	}
	if isLast {
		parts = append(parts, "└── ")
	} else {
		parts = append(parts, "├── ")
	}
	return t.r.NewStyle().Foreground(colors.Accent).Render(strings.Join(parts, ""))
}

func (t *TreeRenderer) fields(node *types.ConditionNode, colors theme.Color) string {
	attrStyle := t.r.NewStyle().Foreground(colors.Text).Bold(true)
	opStyle := t.r.NewStyle().Foreground(colors.Accent)
	valueStyle := t.r.NewStyle().Foreground(colors.Text)

	return strings.Join([]string{
		attrStyle.Render(orMissing(node.SelectedAttribute)),
		opStyle.Render(orMissing(node.SelectedOperator)),
		valueStyle.Render(orMissing(node.SelectedValue.String())),
	}, " ")
}

func (t *TreeRenderer) connector(conn string, colors theme.Color) string {
	return t.r.NewStyle().
		Background(colors.Background).
		Foreground(colors.Text).
		Bold(true).
		Padding(0, 1).
		Render(orMissing(conn))
}

func orMissing(s string) string {
	if strings.TrimSpace(s) == "" {
		return missing
	}
	return s
}
