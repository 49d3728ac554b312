// Package indicator renders the reconciled display state as a persistent
// terminal widget.
package indicator

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/kendaniels/now-playing/internal/artwork"
	"github.com/kendaniels/now-playing/internal/display"
	"github.com/kendaniels/now-playing/internal/domain"
)

type tickMsg struct{}

type refreshMsg domain.DisplayState

type iconMsg struct {
	url  string
	path string
}

// Model is the bubbletea model driving the indicator. It polls the
// reconciler on a ticker and re-renders the artwork icon whenever the
// artwork reference changes.
type Model struct {
	logger   *zap.Logger
	ctx      context.Context
	rec      *display.Reconciler
	pipeline *artwork.Pipeline

	titleTemplate string
	pollInterval  time.Duration

	state        domain.DisplayState
	iconPath     string
	iconURL      string
	fetchingIcon bool
	width        int
	height       int
}

// NewModel creates the indicator model. The context bounds every lookup and
// artwork fetch the model issues; cancelling it stops background work after
// the program exits.
func NewModel(ctx context.Context, logger *zap.Logger, rec *display.Reconciler, pipeline *artwork.Pipeline, titleTemplate string, pollInterval time.Duration) Model {
	return Model{
		logger:        logger,
		ctx:           ctx,
		rec:           rec,
		pipeline:      pipeline,
		titleTemplate: titleTemplate,
		pollInterval:  pollInterval,
		state:         rec.State(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refreshCmd(), m.tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		return m, tea.Batch(m.refreshCmd(), m.tick())
	case refreshMsg:
		m.state = domain.DisplayState(msg)
		if m.state.ArtworkURL != "" && m.state.ArtworkURL != m.iconURL && !m.fetchingIcon {
			m.fetchingIcon = true
			return m, m.iconCmd(m.state.ArtworkURL)
		}
	case iconMsg:
		m.fetchingIcon = false
		if msg.path != "" {
			m.iconPath = msg.path
			m.iconURL = msg.url
		}
	}
	return m, nil
}

// tick schedules the next poll.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// refreshCmd runs one reconciler cycle off the update loop.
func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg(m.rec.Refresh(m.ctx))
	}
}

// iconCmd renders the artwork icon for url in the background.
func (m Model) iconCmd(url string) tea.Cmd {
	return func() tea.Msg {
		path, err := m.pipeline.RenderIcon(m.ctx, url)
		if err != nil {
			m.logger.Debug("Artwork icon render failed", zap.Error(err))
			return iconMsg{url: url}
		}
		return iconMsg{url: url, path: path}
	}
}

func (m Model) View() string {
	accent := lipgloss.Color("5")

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)

	titleStyle := lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	labelStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	dimStyle := lipgloss.NewStyle().Faint(true)
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))

	var content strings.Builder

	switch m.state.Status {
	case domain.StatusOK:
		title := RenderTitle(m.titleTemplate, m.state)
		if title != "" {
			content.WriteString(title + "\n\n")
		}
		addLine := func(label, value string) {
			if value != "" {
				content.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(label), value))
			}
		}
		addLine("Track: ", m.state.Track)
		addLine("Artist:", m.state.Artist)
		addLine("Album: ", m.state.Album)
		if m.fetchingIcon {
			content.WriteString("\n" + dimStyle.Render("Rendering artwork..."))
		} else if m.iconPath != "" {
			content.WriteString("\n" + dimStyle.Render("Artwork: "+m.iconPath))
		}
	case domain.StatusNoTrack:
		content.WriteString(dimStyle.Render("Nothing playing"))
	case domain.StatusMissingProvider:
		content.WriteString(errorStyle.Render("media-control is not installed"))
	case domain.StatusUnsupportedPlatform:
		content.WriteString(errorStyle.Render("This platform has no media provider"))
	case domain.StatusError:
		content.WriteString(errorStyle.Render("Error: " + m.state.Err))
	}

	box := borderStyle.
		Width(60).
		Render(titleStyle.Render("Now Playing") + "\n\n" + content.String())

	help := dimStyle.Render("Quit: q")

	full := lipgloss.JoinVertical(lipgloss.Center, box, "\n"+help)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		full,
	)
}
