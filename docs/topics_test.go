package docs

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/peers/config"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// commands are the pcmp subcommands examples may use.
var commands = []string{"chart", "peers", "profiles", "import", "comment", "topic", "help", "commands", "flags"}

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in docs/readme.md can be successfully loaded by the pcmp topic <topic_name> command.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from docs/readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		matches := topicRegex.FindStringSubmatch(scanner.Text())
		if len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	// Check 1: Every topic listed in docs/readme.md can be successfully loaded.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	// Check 2: Every .md file in the docs directory is listed in docs/readme.md.
	all, err := GetAllTopics()
	if err != nil {
		t.Fatal(err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title("selection"); got != "Peer selection" {
		t.Errorf("Title(selection) = %q", got)
	}
	if got := Title("nope"); got != "nope" {
		t.Errorf("Title(nope) = %q", got)
	}
}

func TestGetTopicStar(t *testing.T) {
	got, err := GetTopic("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"# Peer selection", "# Chart profiles", "# Charts"} {
		if !strings.Contains(got, want) {
			t.Errorf("GetTopic(*) has no %q", want)
		}
	}
}

// TestConfigExamples loads every yaml example as a configuration file.
func TestConfigExamples(t *testing.T) {
	for _, block := range allBlocks(t, "yaml") {
		t.Run(block.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "pcmp.yaml")
			if err := os.WriteFile(path, []byte(block.Content), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg, err := config.Load(path)
			if err != nil {
				t.Fatalf("%s: invalid configuration: %v", block, err)
			}
			if _, err := cfg.ChartProfiles(); err != nil {
				t.Errorf("%s: invalid profiles: %v", block, err)
			}
		})
	}
}

// TestCommandExamples checks that console examples use known subcommands.
func TestCommandExamples(t *testing.T) {
	for _, block := range allBlocks(t, "console") {
		for _, line := range strings.Split(block.Content, "\n") {
			cmd, ok := strings.CutPrefix(line, "$ ")
			if !ok {
				continue
			}
			fields := strings.Fields(cmd)
			if len(fields) < 2 || fields[0] != "pcmp" || !slices.Contains(commands, fields[1]) {
				t.Errorf("%s: unknown command %q", block, cmd)
			}
		}
	}
}

// HELPER

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

func (b *Block) String() string { return fmt.Sprintf("%s:%d", b.File, b.Line) }

// allBlocks returns the blocks of a given type in every topic.
func allBlocks(t *testing.T, lang string) []*Block {
	t.Helper()
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	var blocks []*Block
	for _, file := range files {
		for _, b := range parseMarkdown(t, file) {
			if b.Type == lang {
				blocks = append(blocks, b)
			}
		}
	}
	return blocks
}

// parseMarkdown parses a markdown file and returns a list of Blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	mdParser := goldmark.DefaultParser()
	root := mdParser.Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var blockContent strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			blockContent.WriteString(string(line.Value(content)))
		}
		blocks = append(blocks, &Block{
			Type:    string(fcb.Info.Segment.Value(content)),
			Content: blockContent.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber computes the lineNumber for a given offset AST offset.
// the markdown parser we use does not support that feature so we
// have to implement it.
func lineNumber(source []byte, offset int) (lineNumber int) {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
