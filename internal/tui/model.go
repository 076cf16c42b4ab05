// Package tui implements the cinder status screen.
//
// The bubbletea model owns the frame loop: every tick it runs one Update
// pass over the component registry (where components poll their workers)
// and re-renders each component's Draw output in a viewport.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cinder-flash/cinder/internal/app"
	"github.com/cinder-flash/cinder/internal/events"
	"github.com/cinder-flash/cinder/internal/tui/styles"
)

// tickMsg drives the frame loop.
type tickMsg time.Time

// shutdownMsg is sent when the app context's Done channel closes.
type shutdownMsg struct{}

// Model is the root bubbletea model.
type Model struct {
	appCtx   *app.Context
	interval time.Duration

	viewport viewport.Model
	width    int
	height   int
	ready    bool
	frames   uint64
	quitting bool
}

// NewModel builds the root model around a started app context.
func NewModel(appCtx *app.Context) Model {
	styles.Apply(appCtx.Config.UI.Theme)
	return Model{
		appCtx:   appCtx,
		interval: appCtx.Config.UI.RefreshRate(),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// watchShutdown converts the app context's Done channel into a message so
// an external Shutdown also exits the UI.
func (m Model) watchShutdown() tea.Cmd {
	done := m.appCtx.Done()
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return shutdownMsg{}
	}
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.watchShutdown())
}

// Update handles messages and advances the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			m.appCtx.Events.Broadcast(events.AppShutdownRequested.New(nil, &events.AppShutdownRequestedData{}))
			return m, tea.Quit
		case "r":
			m.appCtx.Events.Broadcast(events.UIRefreshRequested.New(nil, &events.RefreshRequestedData{}))
			return m, nil
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		contentHeight := m.height - headerHeight - footerHeight
		if contentHeight < 1 {
			contentHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, contentHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = contentHeight
		}
		return m, nil

	case tickMsg:
		m.frames++
		m.appCtx.Components.UpdateAll()
		if m.ready {
			m.viewport.SetContent(m.content())
		}
		return m, m.tick()

	case shutdownMsg:
		m.quitting = true
		return m, tea.Quit
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

const (
	headerHeight = 2
	footerHeight = 1
)

// content joins every registered component's Draw output.
func (m Model) content() string {
	panes := m.appCtx.Components.DrawAll()
	boxed := make([]string, 0, len(panes))
	for _, pane := range panes {
		if pane == "" {
			continue
		}
		boxed = append(boxed, styles.ContentBox.Width(m.width-2).Render(pane))
	}
	return strings.Join(boxed, "\n")
}

// View renders the full screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "starting..."
	}

	header := lipgloss.JoinHorizontal(lipgloss.Left,
		styles.Title.Render("cinder"),
		" ",
		styles.Subtitle.Render(fmt.Sprintf("v%s", m.appCtx.Version())),
	)
	help := styles.HelpBar.Render(fmt.Sprintf("%s refresh  %s quit",
		styles.HelpKey.Render("r"),
		styles.HelpKey.Render("q"),
	))

	return header + "\n\n" + m.viewport.View() + "\n" + help
}
