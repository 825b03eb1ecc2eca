package chat

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/ethanolivertroy/nist-grc/internal/agent"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#04B575")
	subtleColor    = lipgloss.Color("#626262")
	errorColor     = lipgloss.Color("#FF5F56")
)

// MessageRole differentiates user vs agent messages
type MessageRole int

const (
	RoleUser MessageRole = iota
	RoleAgent
	RoleSystem
)

// ChatMessage represents a single message in the conversation
type ChatMessage struct {
	Role      MessageRole
	Content   string
	Timestamp time.Time
	IsError   bool
}

// AgentResponseMsg is sent when the agent responds
type AgentResponseMsg struct {
	Content string
	Err     error
}

// Model is the main model for the agent chat TUI
type Model struct {
	ctx             context.Context
	agent           *agent.GRCAgent
	textInput       textinput.Model
	viewport        viewport.Model
	spinner         spinner.Model
	messages        []ChatMessage
	thinking        bool
	width           int
	height          int
	ready           bool
	glamourRenderer *glamour.TermRenderer // Cached markdown renderer
}

// Chat styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	agentLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5A3FBA")).
				Padding(0, 1).
				MarginLeft(2)

	agentMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(secondaryColor).
				PaddingLeft(1).
				MarginLeft(2)

	systemMessageStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Italic(true).
				MarginLeft(2)

	errorMessageStyle = lipgloss.NewStyle().
				Foreground(errorColor).
				Italic(true).
				MarginLeft(2)

	footerStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	dividerStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

// NewModel creates a new chat model for interactive agent sessions
func NewModel(ctx context.Context, grcAgent *agent.GRCAgent) Model {
	// Text input setup
	ti := textinput.New()
	ti.Placeholder = "Ask about controls, baselines, or frameworks..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF"))

	// Spinner for "thinking" state
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(secondaryColor)

	// Welcome message
	welcomeMsg := ChatMessage{
		Role: RoleSystem,
		Content: `Hi! I'm your GRC analyst for NIST SP 800-53 and CSF 2.0.

Ask me things like:
  "Explain AC-2 and its enhancements"
  "What's missing from the moderate baseline if I have AC-2, IA-2, SI-4?"
  "Map my controls to SOC 2"
  "Am I ready for FedRAMP moderate?"

Commands: /help /clear /exit`,
		Timestamp: time.Now(),
	}

	// Default dimensions - will be updated on WindowSizeMsg
	defaultWidth := 80
	defaultHeight := 24
	headerHeight := 3
	footerHeight := 5
	viewportHeight := defaultHeight - headerHeight - footerHeight

	// Create viewport upfront so the TUI renders immediately
	vp := viewport.New(defaultWidth-4, viewportHeight)

	// Create glamour renderer for markdown (cached for performance)
	glamourRenderer, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dracula"),
		glamour.WithWordWrap(70),
	)

	m := Model{
		ctx:             ctx,
		agent:           grcAgent,
		textInput:       ti,
		viewport:        vp,
		spinner:         s,
		messages:        []ChatMessage{welcomeMsg},
		width:           defaultWidth,
		height:          defaultHeight,
		ready:           true,
		glamourRenderer: glamourRenderer,
	}

	// Initialize viewport content with welcome message
	m.updateViewportContent()

	return m
}

// Messages returns the conversation history for testing/inspection
func (m Model) Messages() []ChatMessage {
	return m.messages
}

// Init initializes the chat model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "enter":
			if m.thinking {
				return m, nil // Ignore input while thinking
			}

			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}

			// Clear input
			m.textInput.Reset()

			// Handle slash commands
			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			// Add user message to history
			m.messages = append(m.messages, ChatMessage{
				Role:      RoleUser,
				Content:   input,
				Timestamp: time.Now(),
			})

			m.thinking = true
			m.updateViewportContent()
			m.viewport.GotoBottom()

			return m, tea.Batch(m.spinner.Tick, m.queryAgent(input))

		case "esc":
			m.textInput.Reset()
			return m, nil

		case "pgup", "pgdown", "ctrl+u", "ctrl+d":
			// Scroll viewport
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Title
		footerHeight := 5 // Input + help + dividers
		viewportHeight := m.height - headerHeight - footerHeight

		m.viewport.Width = m.width - 4
		m.viewport.Height = viewportHeight
		m.textInput.Width = m.width - 6
		m.updateViewportContent()
		return m, nil

	case spinner.TickMsg:
		if m.thinking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.updateViewportContent() // Update spinner in viewport
			return m, cmd
		}

	case AgentResponseMsg:
		m.thinking = false

		if msg.Err != nil {
			m.messages = append(m.messages, ChatMessage{
				Role:      RoleSystem,
				Content:   "Error: " + msg.Err.Error(),
				Timestamp: time.Now(),
				IsError:   true,
			})
		} else {
			m.messages = append(m.messages, ChatMessage{
				Role:      RoleAgent,
				Content:   msg.Content,
				Timestamp: time.Now(),
			})
		}

		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil

	case tea.MouseMsg:
		// Forward mouse wheel events to viewport for scrolling
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Update text input
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// queryAgent returns a tea.Cmd that runs the agent turn and delivers the
// response as an AgentResponseMsg.
func (m Model) queryAgent(query string) tea.Cmd {
	return func() tea.Msg {
		response, err := m.agent.Chat(m.ctx, query)
		return AgentResponseMsg{Content: response, Err: err}
	}
}

// handleCommand processes slash commands
func (m Model) handleCommand(input string) (Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch {
	case cmd == "/exit" || cmd == "/quit" || cmd == "/q":
		return m, tea.Quit

	case cmd == "/clear":
		m.agent.ClearSession()
		m.messages = []ChatMessage{{
			Role:      RoleSystem,
			Content:   "Conversation cleared. Starting fresh.",
			Timestamp: time.Now(),
		}}
		m.updateViewportContent()
		return m, nil

	case cmd == "/help" || cmd == "/?":
		helpText := `Commands:
  /help, /?    Show this help message
  /clear       Clear conversation and start fresh
  /exit, /q    Exit the chat

Query Examples:
  "search for controls about encryption"
  "show the incident response family"
  "gap analysis against moderate with AC-2, IA-2, SI-4"
  "which controls map to PR.AA-01?"
  "assess CMMC level 2 with my controls"

Navigation:
  PgUp/PgDn    Scroll conversation history
  Ctrl+C       Quit`
		m.messages = append(m.messages, ChatMessage{
			Role:      RoleSystem,
			Content:   helpText,
			Timestamp: time.Now(),
		})
		m.updateViewportContent()
		m.viewport.GotoBottom()
		return m, nil

	default:
		m.messages = append(m.messages, ChatMessage{
			Role:      RoleSystem,
			Content:   "Unknown command: " + input + ". Type /help for available commands.",
			Timestamp: time.Now(),
			IsError:   true,
		})
		m.updateViewportContent()
		return m, nil
	}
}

// View renders the chat interface
func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	var b strings.Builder

	// Title
	title := titleStyle.Render("NIST GRC - Control Analyst")
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n\n")

	// Viewport with messages
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	// Divider
	divider := dividerStyle.Render(strings.Repeat("─", m.width-2))
	b.WriteString(divider)
	b.WriteString("\n")

	// Text input
	b.WriteString("  ")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	// Help footer
	if m.thinking {
		b.WriteString(footerStyle.Render("  " + m.spinner.View() + " Analyzing..."))
	} else {
		b.WriteString(footerStyle.Render("  PgUp/Dn scroll  |  /help /clear /exit"))
	}

	return b.String()
}

// updateViewportContent rebuilds the viewport content from messages
func (m *Model) updateViewportContent() {
	var content strings.Builder

	for _, msg := range m.messages {
		content.WriteString(m.renderMessage(msg))
		content.WriteString("\n\n")
	}

	if m.thinking {
		thinkingStyle := lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true).
			MarginLeft(2)
		content.WriteString(thinkingStyle.Render(m.spinner.View() + " Analyzing..."))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderMessage formats a single message
func (m Model) renderMessage(msg ChatMessage) string {
	var b strings.Builder

	switch msg.Role {
	case RoleUser:
		b.WriteString(userLabelStyle.Render("You:"))
		b.WriteString("\n")
		// Wrap long user messages
		wrapped := wrapText(msg.Content, m.width-8)
		b.WriteString(userMessageStyle.Render(wrapped))

	case RoleAgent:
		b.WriteString(agentLabelStyle.Render("Analyst:"))
		b.WriteString("\n")
		// Render agent messages with markdown styling
		rendered := m.renderMarkdown(msg.Content)
		b.WriteString(rendered)

	case RoleSystem:
		if msg.IsError {
			b.WriteString(errorMessageStyle.Render(msg.Content))
		} else {
			b.WriteString(systemMessageStyle.Render(msg.Content))
		}
	}

	return b.String()
}

// renderMarkdown renders markdown content using the cached glamour renderer
func (m Model) renderMarkdown(content string) string {
	width := m.width - 10
	if width < 40 {
		width = 40
	}

	// Use cached renderer if available, fallback to plain text
	if m.glamourRenderer == nil {
		return agentMessageStyle.Render(wrapText(content, width))
	}

	out, err := m.glamourRenderer.Render(content)
	if err != nil {
		return agentMessageStyle.Render(wrapText(content, width))
	}

	// Trim extra whitespace glamour adds
	out = strings.TrimSpace(out)

	// Add left margin for consistency with other messages
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// wrapText wraps text to the specified width
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lines := strings.Split(text, "\n")

	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}

		// Handle lines that are already short enough
		if len(line) <= width {
			result.WriteString(line)
			continue
		}

		// Wrap long lines
		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if currentLine == "" {
				currentLine = word
			} else if len(currentLine)+1+len(word) <= width {
				currentLine += " " + word
			} else {
				result.WriteString(currentLine)
				result.WriteString("\n")
				currentLine = word
			}
		}
		if currentLine != "" {
			result.WriteString(currentLine)
		}
	}

	return result.String()
}
