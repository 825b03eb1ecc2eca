package llm

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"sort"

	"github.com/ollama/ollama/api"
	"google.golang.org/adk/model"
	"google.golang.org/genai"
)

// OllamaModel implements the ADK model.LLM interface against a local
// Ollama server, for running the GRC agent without a cloud model.
type OllamaModel struct {
	client    *api.Client
	modelName string
}

// NewOllamaModel creates an Ollama-backed model from OLLAMA_URL and
// LLM_MODEL.
func NewOllamaModel(ctx context.Context, cfg Config) (model.LLM, error) {
	ollamaURL := cfg.OllamaURL
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434"
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = "llama3.2"
	}

	// Parse the URL
	u, err := url.Parse(ollamaURL)
	if err != nil {
		return nil, fmt.Errorf("invalid OLLAMA_URL: %w", err)
	}

	// Create client
	client := api.NewClient(u, http.DefaultClient)

	return &OllamaModel{
		client:    client,
		modelName: modelName,
	}, nil
}

// Name returns the model name
func (m *OllamaModel) Name() string {
	return m.modelName
}

// GenerateContent implements the ADK model.LLM interface
func (m *OllamaModel) GenerateContent(ctx context.Context, req *model.LLMRequest, stream bool) iter.Seq2[*model.LLMResponse, error] {
	return func(yield func(*model.LLMResponse, error) bool) {
		// Convert genai.Contents to Ollama messages
		messages := convertToOllamaMessages(req.Contents)

		// Build Ollama chat request
		chatReq := &api.ChatRequest{
			Model:    m.modelName,
			Messages: messages,
			Stream:   &stream,
		}

		// Add tools if available
		if len(req.Tools) > 0 {
			chatReq.Tools = convertToOllamaTools(req.Tools)
		}

		if stream {
			// Streaming mode
			var fullResponse string
			err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
				if resp.Message.Content != "" {
					fullResponse += resp.Message.Content

					llmResp := &model.LLMResponse{
						Content: &genai.Content{
							Role: "model",
							Parts: []*genai.Part{
								genai.NewPartFromText(resp.Message.Content),
							},
						},
						Partial:      !resp.Done,
						TurnComplete: resp.Done,
					}

					if !yield(llmResp, nil) {
						return fmt.Errorf("iteration stopped")
					}
				}

				// Handle tool calls
				if len(resp.Message.ToolCalls) > 0 {
					llmResp := convertToolCallsToResponse(resp.Message.ToolCalls)
					llmResp.TurnComplete = resp.Done
					if !yield(llmResp, nil) {
						return fmt.Errorf("iteration stopped")
					}
				}

				return nil
			})
			if err != nil {
				yield(nil, fmt.Errorf("Ollama chat error: %w", err))
				return
			}
		} else {
			// Non-streaming mode
			var finalResp api.ChatResponse
			err := m.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
				finalResp = resp
				return nil
			})
			if err != nil {
				yield(nil, fmt.Errorf("Ollama chat error: %w", err))
				return
			}

			// Convert response
			llmResp := &model.LLMResponse{
				Content: &genai.Content{
					Role: "model",
					Parts: []*genai.Part{
						genai.NewPartFromText(finalResp.Message.Content),
					},
				},
				TurnComplete: true,
			}

			// Handle tool calls
			if len(finalResp.Message.ToolCalls) > 0 {
				llmResp = convertToolCallsToResponse(finalResp.Message.ToolCalls)
				llmResp.TurnComplete = true
			}

			yield(llmResp, nil)
		}
	}
}

// convertToOllamaMessages converts genai.Content to Ollama messages
func convertToOllamaMessages(contents []*genai.Content) []api.Message {
	var messages []api.Message

	for _, content := range contents {
		role := content.Role
		// Map genai roles to Ollama roles
		switch role {
		case "user":
			role = "user"
		case "model":
			role = "assistant"
		}

		var text string
		var toolCalls []api.ToolCall

		for _, part := range content.Parts {
			if part.Text != "" {
				text += part.Text
			}
			if part.FunctionCall != nil {
				toolCalls = append(toolCalls, api.ToolCall{
					Function: api.ToolCallFunction{
						Name:      part.FunctionCall.Name,
						Arguments: convertArgs(part.FunctionCall.Args),
					},
				})
			}
		}

		msg := api.Message{
			Role:      role,
			Content:   text,
			ToolCalls: toolCalls,
		}

		messages = append(messages, msg)
	}

	return messages
}

// convertArgs converts function call args. Keys are inserted in sorted
// order so the ordered argument encoding is deterministic.
func convertArgs(args map[string]any) api.ToolCallFunctionArguments {
	result := api.NewToolCallFunctionArguments()
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		result.Set(k, args[k])
	}
	return result
}

// convertToOllamaTools converts ADK tools to Ollama tools
func convertToOllamaTools(tools map[string]any) []api.Tool {
	var ollamaTools []api.Tool

	for name, tool := range tools {
		// Try to extract tool description and parameters
		toolMap, ok := tool.(map[string]any)
		if !ok {
			continue
		}

		description, _ := toolMap["description"].(string)
		parameters, _ := toolMap["parameters"].(map[string]any)

		ollamaTools = append(ollamaTools, api.Tool{
			Type: "function",
			Function: api.ToolFunction{
				Name:        name,
				Description: description,
				Parameters: api.ToolFunctionParameters{
					Type:       "object",
					Properties: convertParameters(parameters),
				},
			},
		})
	}

	return ollamaTools
}

// convertParameters converts tool parameters to the Ollama property map.
func convertParameters(params map[string]any) *api.ToolPropertiesMap {
	result := api.NewToolPropertiesMap()

	props, ok := params["properties"].(map[string]any)
	if !ok {
		return result
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		propMap, ok := props[name].(map[string]any)
		if !ok {
			continue
		}

		p := api.ToolProperty{
			Type: api.PropertyType{"string"},
		}
		if t, ok := propMap["type"].(string); ok {
			p.Type = api.PropertyType{t}
		}
		if d, ok := propMap["description"].(string); ok {
			p.Description = d
		}

		result.Set(name, p)
	}

	return result
}

// convertToolCallsToResponse converts Ollama tool calls to ADK response
func convertToolCallsToResponse(toolCalls []api.ToolCall) *model.LLMResponse {
	var parts []*genai.Part

	for _, tc := range toolCalls {
		args := make(map[string]any, tc.Function.Arguments.Len())
		for k, v := range tc.Function.Arguments.All() {
			args[k] = v
		}

		parts = append(parts, &genai.Part{
			FunctionCall: &genai.FunctionCall{
				Name: tc.Function.Name,
				Args: args,
			},
		})
	}

	return &model.LLMResponse{
		Content: &genai.Content{
			Role:  "model",
			Parts: parts,
		},
	}
}
