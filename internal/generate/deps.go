// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Zodgen Authors

package generate

import (
	"github.com/zodgen/cli/internal/descriptor"
)

// Resolution is the emission plan for one file's messages.
type Resolution struct {
	// Order lists every message exactly once. References to non-recursive
	// messages always precede their referrer.
	Order []*descriptor.Message

	// Recursive holds the names of messages reachable from themselves
	// through same-file message references. They are bound lazily at the
	// point of reference, so they never block scheduling.
	Recursive map[string]bool
}

// Resolve builds the same-file reference graph over messages and computes
// an emission order plus the set of recursive types. It never fails: cycle
// members are simply classified as recursive and excluded from the
// "safe to schedule" test, and anything left over is appended in
// declaration order.
func Resolve(messages []*descriptor.Message, filePath string) Resolution {
	byName := make(map[string]*descriptor.Message, len(messages))
	for _, m := range messages {
		byName[m.Name] = m
	}

	deps := make(map[string]map[string]bool, len(messages))
	recursive := make(map[string]bool)

	for _, m := range messages {
		deps[m.Name] = make(map[string]bool)
		for _, f := range m.Fields {
			// Only direct and repeated message fields form edges.
			if f.Kind != descriptor.KindMessage {
				continue
			}
			if f.Ref.File != filePath {
				continue
			}
			if _, ok := byName[f.Ref.Name]; !ok {
				continue
			}
			if f.Ref.Name == m.Name {
				recursive[m.Name] = true
			}
			deps[m.Name][f.Ref.Name] = true
		}
	}

	// Multi-step cycles: a message on any cycle reaches itself.
	for _, m := range messages {
		if recursive[m.Name] {
			continue
		}
		if reaches(deps, m.Name, m.Name, make(map[string]bool)) {
			recursive[m.Name] = true
		}
	}

	scheduled := make(map[string]bool, len(messages))
	order := make([]*descriptor.Message, 0, len(messages))

	for len(order) < len(messages) {
		progressed := false
		for _, m := range messages {
			if scheduled[m.Name] {
				continue
			}
			if !schedulable(m.Name, deps[m.Name], recursive, scheduled) {
				continue
			}
			scheduled[m.Name] = true
			order = append(order, m)
			progressed = true
		}
		if !progressed {
			break
		}
	}

	// Pure-cycle members not otherwise reachable, in declaration order.
	for _, m := range messages {
		if !scheduled[m.Name] {
			order = append(order, m)
		}
	}

	return Resolution{Order: order, Recursive: recursive}
}

// schedulable reports whether every non-recursive, non-self dependency has
// already been scheduled.
func schedulable(name string, deps map[string]bool, recursive, scheduled map[string]bool) bool {
	for dep := range deps {
		if dep == name || recursive[dep] {
			continue
		}
		if !scheduled[dep] {
			return false
		}
	}
	return true
}

// reaches walks the graph depth-first looking for a path back to target.
func reaches(deps map[string]map[string]bool, from, target string, visited map[string]bool) bool {
	for dep := range deps[from] {
		if dep == target {
			return true
		}
		if visited[dep] {
			continue
		}
		visited[dep] = true
		if reaches(deps, dep, target, visited) {
			return true
		}
	}
	return false
}
