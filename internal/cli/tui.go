package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mhagedorn/scenegraph/pkg/graph"
	"github.com/mhagedorn/scenegraph/pkg/scene"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ExploreModel - Interactive scene browsing
// =============================================================================

// ExploreModel is the bubbletea model for browsing a scene's objects,
// filtering them by attribute, and inspecting relations.
type ExploreModel struct {
	Scene *scene.Scene
	Graph *graph.Graph

	ids    []int // object ids visible under the active filter
	cursor int
	offset int
	height int

	filtering bool   // capturing filter keystrokes
	filter    string // active key=value expression
	filterErr string

	detail bool // showing the detail pane for the object under the cursor
}

// NewExploreModel creates an explore model showing every object.
func NewExploreModel(sc *scene.Scene, g *graph.Graph) ExploreModel {
	return ExploreModel{
		Scene:  sc,
		Graph:  g,
		ids:    g.NodeIDs(),
		height: 15,
	}
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg), nil
		}
		if m.detail {
			switch msg.String() {
			case "q", "ctrl+c":
				return m, tea.Quit
			case "esc", "enter", "backspace":
				m.detail = false
			}
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		case "enter":
			if len(m.ids) > 0 {
				m.detail = true
			}
		case "/":
			m.filtering = true
			m.filter = ""
			m.filterErr = ""
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 8
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

// updateFilter handles keystrokes while the filter prompt is active.
func (m ExploreModel) updateFilter(msg tea.KeyMsg) ExploreModel {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.filtering = false
	case tea.KeyEsc:
		m.filtering = false
		m.filter = ""
		m.filterErr = ""
		m.applyFilter()
		m.cursor, m.offset = 0, 0
	case tea.KeyEnter:
		m.filtering = false
		m.applyFilter()
		m.cursor, m.offset = 0, 0
	case tea.KeyBackspace:
		if m.filter != "" {
			runes := []rune(m.filter)
			m.filter = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.filter += " "
	case tea.KeyRunes:
		m.filter += string(msg.Runes)
	}
	return m
}

// applyFilter recomputes the visible id list from the filter expression.
// An unparsable expression keeps the previous list and shows the error.
func (m *ExploreModel) applyFilter() {
	if m.filter == "" {
		m.ids = m.Graph.NodeIDs()
		m.filterErr = ""
		return
	}
	key, value, err := parseAttrQuery(m.filter)
	if err != nil {
		m.filterErr = err.Error()
		return
	}
	m.ids = m.Graph.FindByAttribute(key, value)
	m.filterErr = ""
}

func (m ExploreModel) View() string {
	if m.detail {
		return m.detailView()
	}
	return m.listView()
}

// listView renders the scrollable object table.
func (m ExploreModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Scene Explorer"))
	if m.Scene.ImageName != "" {
		b.WriteString(listDimStyle.Render(" — " + m.Scene.ImageName))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  / filter  q quit"))
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.ids) {
		end = len(m.ids)
	}

	rows := [][]string{}
	for i := m.offset; i < end; i++ {
		id := m.ids[i]
		obj, ok := m.Scene.Object(id)
		if !ok {
			continue
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", id),
			obj.Name,
			obj.Attributes.Color,
			obj.Attributes.Shape,
			obj.Attributes.Material,
			fmt.Sprintf("%d", m.Graph.Degree(id)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Object", "Color", "Shape", "Material", "Links").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.offset+row == m.cursor {
				return listSelectedStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")

	switch {
	case m.filtering:
		b.WriteString(StyleHighlight.Render("  filter: ") + StyleValue.Render(m.filter) + StyleHighlight.Render("█"))
	case m.filterErr != "":
		b.WriteString(StyleWarning.Render("  " + m.filterErr))
	case m.filter != "":
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  filter: %s  [%d/%d]", m.filter, len(m.ids), m.Graph.NodeCount())))
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ids))))
	}

	return b.String()
}

// detailView renders the full record of the object under the cursor.
func (m ExploreModel) detailView() string {
	id := m.ids[m.cursor]
	obj, ok := m.Scene.Object(id)
	if !ok {
		return listDimStyle.Render("object missing")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s  #%d", obj.Name, obj.ID)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(colorGray).Width(14)
	line := func(k, v string) {
		b.WriteString(label.Render(k) + StyleValue.Render(v) + "\n")
	}

	bb := obj.BoundingBox
	line("bounding box", fmt.Sprintf("(%.2f, %.2f) %s (%.2f, %.2f)", bb.XMin, bb.YMin, iconArrow, bb.XMax, bb.YMax))
	line("center", fmt.Sprintf("(%.2f, %.2f)", obj.Center.X, obj.Center.Y))

	b.WriteString("\n" + StyleHighlight.Render("Attributes") + "\n")
	a := obj.Attributes
	line("color", a.Color)
	line("size", a.Size)
	line("position", a.Position)
	line("shape", a.Shape)
	line("material", a.Material)
	line("orientation", a.Orientation)
	if a.Mass != nil {
		line("mass", fmt.Sprintf("%g", *a.Mass))
	}
	line("texture", a.Texture)
	for k, v := range a.Extra {
		line(k, fmt.Sprintf("%v", v))
	}

	if len(obj.Relations) > 0 {
		b.WriteString("\n" + StyleHighlight.Render("Relations") + "\n")
		for _, rel := range obj.Relations {
			target := rel.ObjectName
			if target == "" {
				if n, ok := m.Graph.Node(rel.ObjectID); ok {
					target = n.Name
				}
			}
			b.WriteString(label.Render(rel.Type) +
				StyleValue.Render(fmt.Sprintf("%s %s (#%d)", iconArrow, target, rel.ObjectID)) +
				listDimStyle.Render(fmt.Sprintf("  %.0f%%", rel.Confidence*100)) + "\n")
		}
	}

	if obj.Semantic.Function != "" || len(obj.Semantic.Actions) > 0 {
		b.WriteString("\n" + StyleHighlight.Render("Semantics") + "\n")
		if obj.Semantic.Function != "" {
			line("function", obj.Semantic.Function)
		}
		for _, act := range obj.Semantic.Actions {
			line(act.Name, act.Description)
		}
	}

	return b.String()
}
