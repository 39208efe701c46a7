// Package agent writes and discusses peer comparison charts with Gemini.
//
// A single Analyst can comment a chart in one shot. The interactive Session
// adds a facilitator that consults the Analyst and a Charter able to select
// peers and list profiles on the loaded table.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"google.golang.org/genai"
)

// Session is an interactive conversation about the peers of the subject.
// Questions go to a facilitator that consults the experts.
type Session struct {
	w           io.Writer
	r           *bufio.Reader
	queue       []string
	Facilitator *Expert
	Experts     []*Expert
	// Intro is displayed when the session starts.
	Intro string
	// Print displays an answer. Defaults to writing it as is.
	Print func(w io.Writer, markdown string)
}

// NewSession returns a session reading questions from r and writing answers
// to w.
func NewSession(w io.Writer, r io.Reader, model string, experts ...*Expert) *Session {
	return &Session{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(model, experts...),
		Intro:       "Ask about the subject and its peers, e.g. \"who are the closest peers by valuation?\". Type 'bye' to exit.",
		Print: func(w io.Writer, s string) {
			fmt.Fprintln(w, s)
		},
	}
}

// Start opens the chats of the experts and of the facilitator.
func (s *Session) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range append(slices.Clone(s.Experts), s.Facilitator) {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return nil
}

const prompt = "pcmp> "

var quitWords = []string{"bye", "exit", "quit"}

// Run answers questions until the user quits or the input ends. questions
// are asked first, as if typed by the user. A failed answer is reported and
// the session goes on.
func (s *Session) Run(ctx context.Context, client *genai.Client, questions ...string) error {
	if !s.Facilitator.Started() {
		if err := s.Start(ctx, client); err != nil {
			return err
		}
	}
	s.queue = append(s.queue, questions...)
	fmt.Fprintln(s.w, s.Intro)

	for {
		q, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		answer, err := s.Facilitator.Text(ctx, q)
		if err != nil {
			fmt.Fprintf(s.w, "No answer: %v\n", err)
			continue
		}
		s.Print(s.w, answer)
	}
}

// next prompts for the next question, taken from the queue first. It returns
// io.EOF when the user quits.
func (s *Session) next() (string, error) {
	for {
		fmt.Fprint(s.w, prompt)
		var q string
		if len(s.queue) > 0 {
			q, s.queue = strings.TrimSpace(s.queue[0]), s.queue[1:]
			fmt.Fprintln(s.w, q)
		} else {
			line, err := s.r.ReadString('\n')
			if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
				return "", err
			}
			q = strings.TrimSpace(line)
		}
		switch {
		case q == "":
			continue
		case slices.Contains(quitWords, strings.ToLower(q)):
			return "", io.EOF
		}
		return q, nil
	}
}
