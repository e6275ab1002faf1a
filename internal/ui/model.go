// Package ui is the terminal selector and gallery for browsing
// recommendations: pick a reference item from the filterable list on the
// left, see its closest matches on the right.
package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	gamerec "github.com/davrell/gamerec"
	"github.com/davrell/gamerec/images"
	"github.com/davrell/gamerec/internal/filelog"
	"github.com/davrell/gamerec/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#58a6ff")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#30363d")).
			Padding(0, 1)

	distanceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8b949e"))
	noImageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#f85149"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#484f58"))
)

// catalogItem adapts a catalog entry to the bubbles list.
type catalogItem struct {
	item types.Item
}

func (i catalogItem) Title() string { return i.item.Name }

func (i catalogItem) Description() string {
	return fmt.Sprintf("votes %.0f · playtime %.1fh", i.item.ApprovalCount, i.item.UsageTime)
}

func (i catalogItem) FilterValue() string { return i.item.Name }

// recsMsg delivers computed recommendations back to the model.
type recsMsg struct {
	reference string
	recs      []types.Recommendation
	err       error
}

// Model is the root TUI model.
type Model struct {
	list      list.Model
	rec       *gamerec.Recommender
	images    *images.Resolver
	reference string
	recs      []types.Recommendation
	loaded    bool
	err       error

	width, height int
}

// New creates the TUI over an already-loaded catalog.
func New(rec *gamerec.Recommender, resolver *images.Resolver, items []types.Item) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("#58a6ff"))

	listItems := make([]list.Item, 0, len(items))
	for _, item := range items {
		listItems = append(listItems, catalogItem{item: item})
	}

	l := list.New(listItems, delegate, 0, 0)
	l.Title = "Select a game"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return Model{
		list:   l,
		rec:    rec,
		images: resolver,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// recommend computes recommendations off the update loop.
func (m Model) recommend(name string) tea.Cmd {
	return func() tea.Msg {
		recs, err := m.rec.Recommend(context.Background(), name, m.rec.DefaultTopN())
		return recsMsg{reference: name, recs: recs, err: err}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width/2-4, msg.Height-4)
		return m, nil

	case recsMsg:
		m.loaded = true
		m.reference = msg.reference
		m.recs = msg.recs
		m.err = msg.err
		if msg.err != nil {
			filelog.Error("recommendation failed", "reference", msg.reference, "error", msg.err)
		} else {
			filelog.Debug("recommendations computed", "reference", msg.reference, "count", len(msg.recs))
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if item, ok := m.list.SelectedItem().(catalogItem); ok {
				return m, m.recommend(item.item.Name)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	left := panelStyle.Width(m.width/2 - 2).Render(m.list.View())
	right := panelStyle.Width(m.width - m.width/2 - 2).Render(m.resultsView())
	help := helpStyle.Render("  [enter]recommend  [/]search  [q]quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}

func (m Model) resultsView() string {
	if !m.loaded {
		return noImageStyle.Render("Pick a game and press enter.")
	}
	if m.err != nil {
		return errStyle.Render("error: " + m.err.Error())
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Similar to " + m.reference))
	b.WriteString("\n\n")

	if len(m.recs) == 0 {
		b.WriteString(noImageStyle.Render("No recommendations."))
		return b.String()
	}

	for i, rec := range m.recs {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, rec.Item.Name))
		b.WriteString(fmt.Sprintf("   votes %.0f · playtime %.1fh  %s\n",
			rec.Item.ApprovalCount,
			rec.Item.UsageTime,
			distanceStyle.Render(fmt.Sprintf("distance %.2f", rec.Distance))))

		if path, ok := m.images.Resolve(rec.Item.Name); ok {
			b.WriteString(noImageStyle.Render("   image: " + filepath.Base(path)))
		} else {
			b.WriteString(noImageStyle.Render("   image not available"))
		}
		b.WriteString("\n\n")
	}

	return b.String()
}
