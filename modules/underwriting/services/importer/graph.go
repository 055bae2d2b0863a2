package importer

import (
	"context"
	"sort"
	"strings"
)

// graphWarnings runs after the stages commit and audits the question flow as
// a whole: every disease entry point must resolve to a question, and the
// next-question edges must not loop. Findings are advisory. The rows behind
// them were already accepted or rejected individually, so a broken flow is
// reported for the operator to fix with a corrected re-import rather than
// retroactively failing rows.
func (s *session) graphWarnings(ctx context.Context) []string {
	for _, d := range s.diseases {
		_, found, err := s.resolveQuestion(ctx, d.FirstQuestionCode)
		if err != nil {
			s.warn("disease %s: could not verify first question %q: %v", d.Code, d.FirstQuestionCode, err)
			continue
		}
		if !found {
			s.warn("disease %s: first question %q does not exist", d.Code, d.FirstQuestionCode)
		}
	}

	for _, cycle := range detectCycles(s.edges) {
		s.warn("question flow contains a cycle: %s", strings.Join(cycle, " -> "))
	}

	return s.warnings
}

// detectCycles finds cycles in the next-question graph by depth-first search
// with three-color marking. The walk keeps an explicit stack so a long chain
// of follow-up questions stays off the call stack. One representative path is
// reported per back edge.
func detectCycles(edges map[string][]string) [][]string {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int, len(edges))

	nodes := make([]string, 0, len(edges))
	for node := range edges {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	type frame struct {
		node string
		next int
	}

	var cycles [][]string
	var path []string
	onPath := make(map[string]int)

	for _, start := range nodes {
		if color[start] != white {
			continue
		}
		color[start] = gray
		onPath[start] = 0
		path = append(path, start)
		stack := []frame{{node: start}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			children := edges[top.node]
			if top.next == len(children) {
				path = path[:len(path)-1]
				delete(onPath, top.node)
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := children[top.next]
			top.next++
			switch color[child] {
			case gray:
				from := onPath[child]
				cycle := append([]string{}, path[from:]...)
				cycle = append(cycle, child)
				cycles = append(cycles, cycle)
			case white:
				color[child] = gray
				onPath[child] = len(path)
				path = append(path, child)
				stack = append(stack, frame{node: child})
			}
		}
	}
	return cycles
}
