package agent

import (
	"context"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"
)

// maxToolRounds bounds the function call exchanges of a single question.
const maxToolRounds = 8

// Expert is a Gemini chat holding one role of the peer comparison: the
// Analyst, the Charter, or the facilitator consulting them. An expert can
// itself be offered as a tool to another one.
type Expert struct {
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Model       string                       `json:"model"`
	Config      *genai.GenerateContentConfig `json:"config"`
	Library     Library
	chat        *genai.Chat
}

// Start opens the chat. Experts keep their context across questions.
func (e *Expert) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, e.Model, e.Config, nil)
	if err != nil {
		return fmt.Errorf("starting %s: %w", e.Name, err)
	}
	e.chat = chat
	return nil
}

// Started reports whether the chat with the expert is open.
func (e *Expert) Started() bool { return e.chat != nil }

// Ask sends parts to the expert and returns its final answer. Function calls
// in between are answered from the expert's Library, all calls of a turn at
// once.
func (e *Expert) Ask(ctx context.Context, parts ...*genai.Part) (*genai.Content, error) {
	if e.chat == nil {
		return nil, fmt.Errorf("expert %s is not started", e.Name)
	}
	for range maxToolRounds {
		resp, err := e.chat.Send(ctx, parts...)
		if err != nil {
			return nil, err
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("no response from expert %s", e.Name)
		}
		content := resp.Candidates[0].Content
		pending := functionCalls(content)
		if len(pending) == 0 {
			return content, nil
		}
		if e.Library == nil {
			return nil, fmt.Errorf("expert %s has no tools to call %s", e.Name, pending[0].Name)
		}
		parts = parts[:0]
		for _, call := range pending {
			parts = append(parts, &genai.Part{FunctionResponse: e.Library(ctx, call)})
		}
	}
	return nil, fmt.Errorf("expert %s still calls tools after %d rounds", e.Name, maxToolRounds)
}

// functionCalls returns the function calls of c, in order.
func functionCalls(c *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, p := range c.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, p.FunctionCall)
		}
	}
	return calls
}

// Text asks the expert and returns the text of its answer.
func (e *Expert) Text(ctx context.Context, question string) (string, error) {
	content, err := e.Ask(ctx, &genai.Part{Text: question})
	if err != nil {
		return "", err
	}
	return text(content), nil
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Declaration offers the expert as a tool taking a single question.
func (e *Expert) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        e.Name,
		Description: e.Description,
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"question": {
					Type:        genai.TypeString,
					Description: "The question, naming the companies, metrics or chart profile it is about.",
				},
			},
			Required: []string{"question"},
		},
		Response: &genai.Schema{
			Type:        genai.TypeString,
			Description: "The answer of the " + e.Name + ", in markdown.",
		},
	}
}

// Call asks the question of args to the expert.
func (e *Expert) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	question, ok := args["question"].(string)
	if !ok {
		return failure(id, e.Name, fmt.Errorf("question is %T, not a string", args["question"]))
	}
	answer, err := e.Text(ctx, question)
	if err != nil {
		return failure(id, e.Name, fmt.Errorf("asking the %s: %w", e.Name, err))
	}
	log.Printf("%s consulted: %q (%d characters of answer)", e.Name, question, len(answer))
	return output(id, e.Name, answer)
}
