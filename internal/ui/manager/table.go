package manager

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nothingTVatYT/Seed/internal/reconcile"
	"github.com/nothingTVatYT/Seed/internal/ui/styles"
)

const (
	nameColWidth    = 28
	versionColWidth = 10
)

var (
	headerStyle         = lipgloss.NewStyle().Bold(true).Foreground(styles.TextMutedColor)
	emptyStyle          = lipgloss.NewStyle().Foreground(styles.TextMutedColor).Padding(1, 2)
	templateMarkerStyle = lipgloss.NewStyle().Foreground(styles.TemplateMarkerColor)
)

// projectRow is one table entry.
type projectRow struct {
	name       string
	path       string
	version    string
	arguments  string
	status     reconcile.Status
	isTemplate bool
	hasIcon    bool
}

// FilterValue implements list.Item.
func (r projectRow) FilterValue() string { return r.name }

// rowDelegate renders one project per line: cursor, icon marker, name,
// template marker, pinned version and the reconciliation badge.
type rowDelegate struct{}

// Height returns the height of each item.
func (d rowDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d rowDelegate) Spacing() int {
	return 0
}

// Update handles any delegate-level updates.
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders a project row.
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	row, ok := item.(projectRow)
	if !ok {
		return
	}

	indicator := "  "
	if index == m.Index() {
		indicator = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	icon := "  "
	if row.hasIcon {
		icon = "▣ "
	}

	name := runewidth.FillRight(runewidth.Truncate(row.name, nameColWidth, "…"), nameColWidth)

	marker := "   "
	if row.isTemplate {
		marker = templateMarkerStyle.Render("[T]")
	}

	version := runewidth.FillRight(runewidth.Truncate(row.version, versionColWidth, "…"), versionColWidth)

	_, _ = fmt.Fprint(w, indicator+icon+name+" "+marker+" "+version+" "+statusBadge(row.status))
}

// statusBadge renders the colored verdict for a row.
func statusBadge(s reconcile.Status) string {
	return statusStyle(s).Render("● " + s.String())
}

func statusStyle(s reconcile.Status) lipgloss.Style {
	switch s {
	case reconcile.StatusInstalled:
		return lipgloss.NewStyle().Foreground(styles.StatusInstalledColor)
	case reconcile.StatusMissing:
		return lipgloss.NewStyle().Foreground(styles.StatusMissingColor)
	case reconcile.StatusResolving:
		return lipgloss.NewStyle().Foreground(styles.StatusResolvingColor)
	default:
		return lipgloss.NewStyle().Foreground(styles.StatusUnknownColor)
	}
}

// table is the project list plus its fixed header row.
type table struct {
	list   list.Model
	rows   []projectRow
	width  int
	height int
}

func newTable() table {
	l := list.New([]list.Item{}, rowDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return table{list: l}
}

// SetSize reserves one line for the header and hands the rest to the list.
func (t table) SetSize(width, height int) table {
	t.width = width
	t.height = height
	listHeight := height - 1
	if listHeight < 0 {
		listHeight = 0
	}
	t.list.SetSize(width, listHeight)
	return t
}

// SetRows replaces the rows, keeping the cursor on the same project when
// it survives the update.
func (t table) SetRows(rows []projectRow) table {
	var currentPath string
	if row, ok := t.Selected(); ok {
		currentPath = row.path
	}

	t.rows = rows
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = r
	}
	t.list.SetItems(items)

	// SetItems does not clamp the cursor when the list shrinks.
	if idx := t.list.Index(); idx >= len(rows) && len(rows) > 0 {
		t.list.Select(len(rows) - 1)
	}

	if currentPath != "" {
		t = t.SelectByPath(currentPath)
	}
	return t
}

// Len returns the number of rows.
func (t table) Len() int {
	return len(t.rows)
}

// Selected returns the row under the cursor.
func (t table) Selected() (projectRow, bool) {
	if len(t.rows) == 0 {
		return projectRow{}, false
	}
	idx := t.list.Index()
	if idx < 0 || idx >= len(t.rows) {
		return projectRow{}, false
	}
	return t.rows[idx], true
}

// SelectByPath moves the cursor to the project with the given path. The
// cursor stays put when the path is not present.
func (t table) SelectByPath(path string) table {
	for i, r := range t.rows {
		if r.path == path {
			t.list.Select(i)
			break
		}
	}
	return t
}

// RowByPath looks a row up by project path.
func (t table) RowByPath(path string) (projectRow, bool) {
	for _, r := range t.rows {
		if r.path == path {
			return r, true
		}
	}
	return projectRow{}, false
}

// Update forwards navigation messages to the list.
func (t table) Update(msg tea.Msg) (table, tea.Cmd) {
	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

// View renders the header and the rows, or an import hint while the
// registry is empty.
func (t table) View() string {
	if len(t.rows) == 0 {
		return emptyStyle.Render("No projects yet. Press 'i' to import one.")
	}
	return t.header() + "\n" + t.list.View()
}

func (t table) header() string {
	name := runewidth.FillRight("NAME", nameColWidth)
	version := runewidth.FillRight("ENGINE", versionColWidth)
	return headerStyle.Render("    " + name + "     " + version + " STATUS")
}
