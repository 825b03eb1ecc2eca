package chat

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// createTestModel creates a minimal Model for testing
func createTestModel() Model {
	ti := textinput.New()
	s := spinner.New()
	vp := viewport.New(80, 20)

	return Model{
		textInput: ti,
		spinner:   s,
		viewport:  vp,
		messages:  []ChatMessage{},
		ready:     true,
		width:     80,
		height:    24,
	}
}

func TestViewRendersTitle(t *testing.T) {
	m := createTestModel()

	view := m.View()
	if view == "" {
		t.Fatal("View should render")
	}
	if !strings.Contains(view, "NIST GRC") {
		t.Error("View should contain the title")
	}
}

func TestAgentResponseAppendsMessage(t *testing.T) {
	m := createTestModel()
	m.thinking = true

	newModel, _ := m.Update(AgentResponseMsg{Content: "AC-2 governs account management."})
	chatModel := newModel.(Model)

	if chatModel.thinking {
		t.Error("thinking should be cleared after a response")
	}
	if len(chatModel.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(chatModel.messages))
	}
	msg := chatModel.messages[0]
	if msg.Role != RoleAgent {
		t.Errorf("expected RoleAgent, got %v", msg.Role)
	}
	if !strings.Contains(msg.Content, "AC-2") {
		t.Errorf("unexpected content: %s", msg.Content)
	}
}

func TestAgentResponseErrorBecomesSystemMessage(t *testing.T) {
	m := createTestModel()
	m.thinking = true

	newModel, _ := m.Update(AgentResponseMsg{Err: errors.New("model unavailable")})
	chatModel := newModel.(Model)

	if len(chatModel.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(chatModel.messages))
	}
	msg := chatModel.messages[0]
	if msg.Role != RoleSystem {
		t.Errorf("expected RoleSystem, got %v", msg.Role)
	}
	if !msg.IsError {
		t.Error("error responses should be flagged IsError")
	}
	if !strings.Contains(msg.Content, "model unavailable") {
		t.Errorf("unexpected content: %s", msg.Content)
	}
}

func TestHelpCommand(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.handleCommand("/help")

	last := newModel.messages[len(newModel.messages)-1]
	if last.Role != RoleSystem {
		t.Errorf("expected RoleSystem, got %v", last.Role)
	}
	if !strings.Contains(last.Content, "/clear") {
		t.Error("help text should list commands")
	}
}

func TestUnknownCommand(t *testing.T) {
	m := createTestModel()

	newModel, _ := m.handleCommand("/bogus")

	last := newModel.messages[len(newModel.messages)-1]
	if !last.IsError {
		t.Error("unknown commands should produce an error message")
	}
	if !strings.Contains(last.Content, "/bogus") {
		t.Error("error should echo the unknown command")
	}
}

func TestRenderMessageRoles(t *testing.T) {
	m := createTestModel()
	now := time.Now()

	tests := []struct {
		name string
		msg  ChatMessage
		want string
	}{
		{"user label", ChatMessage{Role: RoleUser, Content: "hi", Timestamp: now}, "You:"},
		{"agent label", ChatMessage{Role: RoleAgent, Content: "hello", Timestamp: now}, "Analyst:"},
		{"system body", ChatMessage{Role: RoleSystem, Content: "cleared", Timestamp: now}, "cleared"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.renderMessage(tt.msg)
			if !strings.Contains(out, tt.want) {
				t.Errorf("rendered message should contain %q, got: %s", tt.want, out)
			}
		})
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		width   int
		maxLine int
	}{
		{"short line untouched", "hello", 20, 20},
		{"long line wrapped", "one two three four five six seven eight", 15, 15},
		{"zero width passthrough", "anything goes here", 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := wrapText(tt.text, tt.width)
			for _, line := range strings.Split(out, "\n") {
				if len(line) > tt.maxLine {
					t.Errorf("line %q exceeds width %d", line, tt.maxLine)
				}
			}
			// No words lost
			for _, word := range strings.Fields(tt.text) {
				if !strings.Contains(out, word) {
					t.Errorf("wrapped output lost word %q", word)
				}
			}
		})
	}
}
