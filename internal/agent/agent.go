package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ethanolivertroy/nist-grc/internal/catalog"
	"github.com/ethanolivertroy/nist-grc/internal/llm"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	// SystemInstruction for the GRC analyst agent
	SystemInstruction = `You are a GRC (Governance, Risk, and Compliance) analyst for the NIST SP 800-53 rev 5 control catalog and NIST CSF 2.0.

CRITICAL BEHAVIOR - Be action-oriented:
- When a user mentions ANY control, family, framework, or keyword - IMMEDIATELY look it up
- Do NOT ask clarifying questions if you can make a reasonable assumption
- When in doubt, USE YOUR TOOLS FIRST, then explain the results
- If a lookup returns nothing, say so briefly and suggest alternatives

Examples of how to handle queries:
- "explain AC-2" → get_control(control_id="AC-2") immediately
- "anything about passwords?" → search_controls(query="password") immediately
- "show the access control family" → get_control_family(family="AC") immediately
- "what's in the moderate baseline?" → get_baseline_controls(baseline="moderate") immediately

Your catalog tools:
- list_controls: List controls, optionally by family
- get_control: Full statement and guidance for one control
- search_controls: Keyword search over titles and statements
- get_control_family: A family's description and member controls
- get_baseline_controls: Controls required by a low/moderate/high baseline

Your CSF and analysis tools:
- get_csf_framework: The CSF 2.0 function/category/subcategory hierarchy
- search_csf_subcategories: Keyword search over CSF subcategories
- get_control_mappings: Control → CSF subcategories
- csf_to_controls_mapping: CSF subcategory → controls
- control_relationships: Base control, enhancements, peers, CSF mappings
- gap_analysis: Implemented set vs a baseline, with prioritized remediation
- analyze_control_coverage: Per-family coverage of a control set
- risk_assessment_helper: Residual risk score and critical gaps

Your framework tools:
- compliance_mapping: SOC 2 / ISO 27001 requirement coverage
- cmmc_compliance_assessment: CMMC maturity level assessment
- fedramp_readiness_assessment: FedRAMP readiness at an impact level
- get_cmmc_framework: The CMMC levels and their per-domain control requirements

When presenting results:
- Lead with the data, keep explanations brief
- Give control ids in their canonical form (AC-2, AC-2(1))
- For gap and readiness results, surface the compliance percentage and the top priorities first
- Use markdown for clarity

Only redirect if the query is completely unrelated to security and compliance.`
)

// GRCAgent wraps the ADK agent with the control-analysis toolset.
type GRCAgent struct {
	agent          agent.Agent
	runner         *runner.Runner
	sessionService session.Service
	// Session tracking for multi-turn conversations
	userID     string
	sessionID  string
	hasSession bool
}

// New creates a new GRC agent over a loaded catalog store, using default
// LLM config from the environment.
func New(ctx context.Context, store *catalog.Store) (*GRCAgent, error) {
	cfg := llm.ConfigFromEnv()
	return NewWithConfig(ctx, store, cfg)
}

// NewWithConfig creates a new GRC agent with the specified LLM config.
func NewWithConfig(ctx context.Context, store *catalog.Store, cfg llm.Config) (*GRCAgent, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	model, err := llm.NewModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM model: %w", err)
	}

	tools, err := NewToolset(store).CreateTools()
	if err != nil {
		return nil, fmt.Errorf("failed to create tools: %w", err)
	}

	grcAgent, err := llmagent.New(llmagent.Config{
		Name:        "grc_agent",
		Description: "Compliance analyst assistant for NIST SP 800-53 controls, CSF 2.0 mappings, and framework assessments",
		Model:       model,
		Instruction: SystemInstruction,
		Tools:       tools,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	sessionSvc := session.InMemoryService()

	r, err := runner.New(runner.Config{
		AppName:        "nist-grc",
		Agent:          grcAgent,
		SessionService: sessionSvc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create runner: %w", err)
	}

	return &GRCAgent{
		agent:          grcAgent,
		runner:         r,
		sessionService: sessionSvc,
	}, nil
}

// Agent returns the underlying ADK agent for use with launchers.
func (a *GRCAgent) Agent() agent.Agent {
	return a.agent
}

// Query sends a one-shot query to the agent and returns the response.
func (a *GRCAgent) Query(ctx context.Context, query string) (string, error) {
	sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
		AppName:   "nist-grc",
		UserID:    "user",
		SessionID: "session",
	})
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	var response strings.Builder
	for event, err := range a.runner.Run(ctx, sessionResp.Session.UserID(), sessionResp.Session.ID(), userMsg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	return response.String(), nil
}

// Chat sends a query to the agent using a persistent session for multi-turn
// conversations. The first call creates a session, subsequent calls reuse it
// for conversation context.
func (a *GRCAgent) Chat(ctx context.Context, query string) (string, error) {
	if !a.hasSession {
		sessionResp, err := a.sessionService.Create(ctx, &session.CreateRequest{
			AppName:   "nist-grc",
			UserID:    "chat-user",
			SessionID: fmt.Sprintf("chat-%d", time.Now().UnixNano()),
		})
		if err != nil {
			return "", fmt.Errorf("failed to create session: %w", err)
		}
		a.userID = sessionResp.Session.UserID()
		a.sessionID = sessionResp.Session.ID()
		a.hasSession = true
	}

	userMsg := &genai.Content{
		Role: "user",
		Parts: []*genai.Part{
			genai.NewPartFromText(query),
		},
	}

	var response strings.Builder
	for event, err := range a.runner.Run(ctx, a.userID, a.sessionID, userMsg, agent.RunConfig{}) {
		if err != nil {
			return "", fmt.Errorf("agent error: %w", err)
		}
		if event.Content != nil {
			for _, part := range event.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
		}
	}

	return response.String(), nil
}

// ClearSession clears the current chat session, starting fresh on next
// Chat() call.
func (a *GRCAgent) ClearSession() {
	a.hasSession = false
	a.userID = ""
	a.sessionID = ""
}
