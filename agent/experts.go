package agent

import (
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

func instruction(s string) *genai.Content {
	return &genai.Content{Parts: []*genai.Part{{Text: s}}}
}

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	return &Expert{
		Name:  "Facilitator",
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: instruction(`
			As a facilitator you are in charge of the conversation and solving the user's request.
			The user compares a subject company with its peers on business metrics:
			valuation, funding, headcount and ratios of them.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			Devise a plan of questions to ask to each experts and come up with the best reponse to the user's request.
			Answer in markdown.`),
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert writing commentary about peer comparisons.
func NewAnalyst(model string) *Expert {
	return &Expert{
		Name: "Analyst",
		Description: `This is a venture analyst, aware of startup valuations, funding rounds and
		headcount benchmarks. It knows recent news about companies thanks to Google Search.
		Ask the Analyst to interpret figures or to find information about a company.`,
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: instruction(`
			You are a venture analyst. You read peer comparison charts and explain where the
			subject company stands: which peers are larger or smaller, how efficient its
			capital is, what the spread of the peers suggests.
			Stick to the figures you are given, and use Google Search only to add context
			about named companies. Be concise, use short paragraphs or bullet lists.`),
		},
	}
}

// NewCharter returns the expert that runs peer selections on the workspace.
func NewCharter(model string, ws *Workspace) *Expert {
	lib := ws.Functions()
	return &Expert{
		Name: "Charter",
		Description: `This is the Charter. It has the peer table loaded and can list the chart
		profiles and select the peers of the subject company for any of them.
		Ask the Charter for figures about the subject or its peers.`,
		Model: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: instruction(`
			You are in charge of the peer table of the user.
			Use the available tools to list the chart profiles and to select peers with them.
			Report the figures as they are given by the tools, in markdown tables when useful.`),
		},
		Library: NewLibrary(lib),
	}
}
