// Package scanner implements the Transcript Scanner: deterministic
// post-processing that turns a run's tool-outcome text into the
// navigation graph (Page Nodes, Element Records, Edges).
package scanner

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/qaflow/orchestrator/internal/graph"
)

const (
	baseX     = 200
	strideX   = 300
	fixedY    = 100
	pageBlock = "📄 Page Metadata:"
	elemBlock = "🎯 Element Metadata"
)

// Result is the scanner's output: the ordered pages, the edges between
// them, and the screenshot filenames observed in the transcript.
type Result struct {
	Pages       []graph.Node
	Edges       []graph.Edge
	Screenshots []string
}

// Scan walks transcript in textual order and extracts the navigation
// graph. It never fabricates entities: a transcript with no metadata
// blocks yields no pages and no edges (screenshot outcomes are still
// collected).
func Scan(transcript string) Result {
	lines := strings.Split(transcript, "\n")

	s := &scanState{
		byURL: make(map[string]int),
	}

	for i := 0; i < len(lines); i++ {
		// The first outcome of a tool turn carries the transcript's
		// "user: " role prefix; later outcomes in the same turn do not.
		line := strings.TrimPrefix(strings.TrimSpace(lines[i]), "user: ")
		switch {
		case strings.HasPrefix(strings.TrimSpace(line), "✅ navigated to "):
			s.lastAction = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "✅ "))
		case strings.HasPrefix(strings.TrimSpace(line), "✅ clicked "):
			s.lastAction = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "✅ "))
		case strings.HasPrefix(strings.TrimSpace(line), "✅ captured screenshot: "):
			filename := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "✅ captured screenshot: "))
			s.screenshots = append(s.screenshots, filename)
		case strings.TrimSpace(line) == pageBlock:
			i = s.consumeBlock(lines, i)
		}
	}

	return Result{Pages: s.nodes, Edges: s.edges, Screenshots: s.screenshots}
}

type scanState struct {
	nodes      []graph.Node
	byURL      map[string]int // url -> index into nodes
	edges      []graph.Edge
	screenshots []string
	lastPageID string
	lastAction string
}

// consumeBlock parses one metadata block starting at lines[start] (the
// "📄 Page Metadata:" line) and returns the index of the last line it
// consumed.
func (s *scanState) consumeBlock(lines []string, start int) int {
	i := start + 1
	var pageURL, title string

	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if v, ok := cutPrefix(trimmed, "• URL:"); ok {
			pageURL = v
			continue
		}
		if v, ok := cutPrefix(trimmed, "• Title:"); ok {
			title = v
			continue
		}
		if trimmed == "" {
			i++
			break
		}
		if strings.HasPrefix(trimmed, elemBlock) {
			break
		}
	}

	if pageURL == "" {
		return i - 1
	}

	pageIdx, isNew := s.allocatePage(pageURL, title)

	if strings.HasPrefix(strings.TrimSpace(safeLine(lines, i)), elemBlock) {
		i = s.consumeElements(lines, i, pageIdx)
	}

	newID := s.nodes[pageIdx].ID
	if isNew && s.lastPageID != "" && s.lastPageID != newID {
		s.edges = append(s.edges, graph.Edge{
			Source: s.lastPageID,
			Target: newID,
			Label:  s.lastAction,
		})
	}
	s.lastPageID = newID

	return i - 1
}

func (s *scanState) allocatePage(pageURL, title string) (index int, isNew bool) {
	if idx, ok := s.byURL[pageURL]; ok {
		return idx, false
	}

	index = len(s.nodes)
	host := ""
	if u, err := url.Parse(pageURL); err == nil {
		host = u.Host
	}

	node := graph.Node{
		ID:    "page_" + strconv.Itoa(index+1),
		Label: title + " (" + host + ")",
		URL:   pageURL,
		Title: title,
		X:     baseX + strideX*index,
		Y:     fixedY,
	}
	s.nodes = append(s.nodes, node)
	s.byURL[pageURL] = index
	return index, true
}

// consumeElements parses the "Element N:" entries following an
// "🎯 Element Metadata" header, starting at lines[start] (the header
// itself), and merges each into the page at pageIdx.
func (s *scanState) consumeElements(lines []string, start int, pageIdx int) int {
	i := start + 1
	var current *graph.Element

	flush := func() {
		if current != nil {
			s.nodes[pageIdx].AddElement(*current)
			current = nil
		}
	}

	for ; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if trimmed == "" {
			flush()
			break
		}
		if strings.HasPrefix(trimmed, pageBlock) {
			flush()
			break
		}
		if strings.HasPrefix(trimmed, "Element ") && strings.HasSuffix(trimmed, ":") {
			flush()
			current = &graph.Element{}
			continue
		}
		if current == nil {
			continue
		}

		if v, ok := cutPrefix(trimmed, "• Selector:"); ok {
			current.Selector = v
		} else if v, ok := cutPrefix(trimmed, "• Tag:"); ok {
			tag := strings.Trim(v, "<>")
			current.Tag = tag
			current.Kind = graph.ElementKindForTag(tag)
		} else if v, ok := cutPrefix(trimmed, "• Text:"); ok {
			current.Text = graph.TruncateElementText(noneToEmpty(v))
		} else if v, ok := cutPrefix(trimmed, "• Href:"); ok {
			current.Href = noneToEmpty(v)
		} else if v, ok := cutPrefix(trimmed, "• ID:"); ok {
			current.DOMID = noneToEmpty(v)
		} else if v, ok := cutPrefix(trimmed, "• Name:"); ok {
			current.Name = noneToEmpty(v)
		} else if v, ok := cutPrefix(trimmed, "• Class:"); ok {
			current.Class = noneToEmpty(v)
		}
	}
	flush()

	return i
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimPrefix(s, prefix)), true
}

func noneToEmpty(s string) string {
	if s == "None" {
		return ""
	}
	return s
}

func safeLine(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}
