package agent

import (
	"context"
	"fmt"

	"github.com/etnz/peers"
	"github.com/etnz/peers/docs"
	"github.com/etnz/peers/renderer"
	"google.golang.org/genai"
)

// Workspace is what the Charter works on: the peer table, the builder for
// the subject and the chart profiles.
type Workspace struct {
	Table    *peers.Table
	Builder  *peers.Builder
	Profiles []peers.Profile
}

// Functions returns the tools exposing the workspace.
func (ws *Workspace) Functions() []Function {
	return []Function{ws.profiles(), ws.peers(), ws.company()}
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func (ws *Workspace) profiles() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Profiles",
			Description: "Profiles lists the chart profiles: their name, chart kind, axes and the bands used to select peers.",
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the chart profiles.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return output(id, "Profiles", renderer.ProfilesMarkdown(ws.Profiles))
		},
	}
}

func (ws *Workspace) peers() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Peers",
			Description: `Peers selects the peers of the subject company for a chart profile, and
			returns them sorted with their metrics. Peers are selected as follows:

			` + must(docs.GetTopic("selection")),
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"profile": {
						Type:        genai.TypeString,
						Description: "The name of the chart profile, as listed by Profiles.",
					},
				},
				Required: []string{"profile"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of the peers, the subject in bold.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := ws.selectPeers(args)
			if err != nil {
				return failure(id, "Peers", err)
			}
			return output(id, "Peers", out)
		},
	}
}

func (ws *Workspace) selectPeers(args map[string]any) (string, error) {
	name, ok := args["profile"].(string)
	if !ok {
		return "", fmt.Errorf("argument 'profile' is not a string as expected but %T", args["profile"])
	}
	p, ok := peers.LookupProfile(ws.Profiles, name)
	if !ok {
		return "", fmt.Errorf("unknown profile %q, use Profiles to list them", name)
	}
	spec, set, err := ws.Builder.Build(ws.Table, p)
	if err != nil {
		return "", err
	}
	return renderer.PeersMarkdown(set, spec), nil
}

func (ws *Workspace) company() *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Company",
			Description: "Company returns every known metric of a company of the peer table, or of the subject.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name": {
						Type:        genai.TypeString,
						Description: "The exact company name.",
					},
				},
				Required: []string{"name"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The company metrics as a JSON object, absent metrics are omitted.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := ws.lookup(args)
			if err != nil {
				return failure(id, "Company", err)
			}
			return output(id, "Company", out)
		},
	}
}

func (ws *Workspace) lookup(args map[string]any) (string, error) {
	name, _ := args["name"].(string)
	r, ok := ws.Table.Lookup(name)
	if !ok && ws.Builder != nil && ws.Builder.Subject.Name == name {
		r, ok = ws.Builder.Subject, true
	}
	if !ok {
		return "", fmt.Errorf("no company named %q", name)
	}
	b, err := r.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
