package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"materia/internal/domain"
	"materia/internal/service"
	"materia/internal/session"
)

// InputExample is shown above the input box.
const InputExample = "tipo=2, peso=1, resistencia=3, condutividade=4, reciclavel=1, biodegradavel=0, toxicidade=1, temperatura_max=200"

const sidebarWidth = 16

// MatchPort is the TUI-facing subset of the match service.
type MatchPort interface {
	Ask(store service.ConversationStore, id, text string) (string, error)
	Properties() []string
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	service  MatchPort
	store    *session.Store
	logger   *zap.Logger
	title    string
	input    textinput.Model
	viewport viewport.Model
	status   string
	ready    bool
	width    int
}

// New creates a new TUI model instance. Each model owns its conversation store.
func New(svc MatchPort, store *session.Store, title string, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Describe the material and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{service: svc, store: store, logger: logger, title: title, input: ti, viewport: vp,
		status: "ctrl+n new chat · ctrl+x remove chat · tab switch chat · ctrl+c quit"}
	m.refresh()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, hh := historyBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + lipgloss.Height(m.renderInfo()) + qh + 1 + 1 // header, info, input, status
		m.viewport.Width = max(20, msg.Width-sidebarWidth-4)
		m.viewport.Height = max(3, msg.Height-reserved-hh)
		m.input.Width = max(10, msg.Width-6)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				if _, err := m.service.Ask(m.store, m.store.Current(), q); err != nil {
					m.status = "Error: " + err.Error()
				} else {
					m.status = fmt.Sprintf("Results for %q", q)
				}
				m.input.Reset()
				m.refresh()
				return m, nil
			}
		case "ctrl+n":
			id := m.store.Create()
			m.logger.Info("conversation created", zap.String("conversation", id))
			m.status = "Started " + m.currentTitle()
			m.refresh()
			return m, nil
		case "ctrl+x":
			id := m.store.Current()
			title := m.currentTitle()
			if err := m.store.Remove(id); err != nil {
				if errors.Is(err, domain.ErrCannotRemoveLastConversation) {
					m.status = "Warning: at least one chat must remain open."
				} else {
					m.status = "Error: " + err.Error()
				}
				return m, nil
			}
			m.logger.Info("conversation removed", zap.String("conversation", id))
			m.status = "Removed " + title
			m.refresh()
			return m, nil
		case "tab":
			m.store.Step(1)
			m.refresh()
			return m, nil
		case "shift+tab":
			m.store.Step(-1)
			m.refresh()
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and current conversation.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render(m.title + " · " + m.currentTitle())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), historyBoxStyle.Render(m.viewport.View()))
	input := queryBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + body + "\n" + m.renderInfo() + "\n" + input + "\n" + status
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m Model) currentTitle() string {
	c, err := m.store.Get(m.store.Current())
	if err != nil {
		return ""
	}
	return c.Title
}

func (m Model) renderSidebar() string {
	current := m.store.Current()
	lines := []string{sidebarTitleStyle.Render("Chats")}
	for _, id := range m.store.List() {
		c, err := m.store.Get(id)
		if err != nil {
			continue
		}
		if id == current {
			lines = append(lines, activeChatStyle.Render("> "+c.Title))
		} else {
			lines = append(lines, "  "+c.Title)
		}
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) renderHistory() string {
	msgs, err := m.store.Messages(m.store.Current())
	if err != nil || len(msgs) == 0 {
		return "No messages yet. Describe a material below."
	}
	blocks := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		label := userStyle.Render("You")
		if msg.Role == domain.RoleAssistant {
			label = assistantStyle.Render("Materia")
		}
		blocks = append(blocks, label+"\n"+msg.Content)
	}
	return strings.Join(blocks, "\n\n")
}

func (m Model) renderInfo() string {
	props := strings.Join(m.service.Properties(), ", ")
	style := infoStyle
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render("Example: " + InputExample + "\nAvailable properties: " + props)
}

var (
	historyBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	sidebarStyle      = lipgloss.NewStyle().Width(sidebarWidth).PaddingRight(1)
	sidebarTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	activeChatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	userStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	infoStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
