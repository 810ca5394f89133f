package schedule

import (
	"strings"

	"bistro-attendant/internal/models"
)

// matchNames returns the index of the first name list matching the term,
// or -1. Two passes over the whole list: a synonym containing the whole
// normalized term first, then a synonym containing any term token. The
// containment runs synonym-over-term, so "vegetariana" finds "opções
// vegetarianas" and "reservar" finds "reservar mesa". Declaration order
// breaks ties inside a pass, so curated entries can shadow broader ones
// simply by coming first.
func matchNames(nameLists [][]string, term string) int {
	nterm := Normalize(term)
	if nterm == "" {
		return -1
	}

	for i, names := range nameLists {
		for _, name := range names {
			if strings.Contains(Normalize(name), nterm) {
				return i
			}
		}
	}

	tokens := Tokens(term)
	for i, names := range nameLists {
		for _, name := range names {
			nname := Normalize(name)
			for _, tok := range tokens {
				if strings.Contains(nname, tok) {
					return i
				}
			}
		}
	}
	return -1
}

// FindProgram matches a topic against the catalog's programs.
func FindProgram(programs []models.Program, term string) (models.Program, bool) {
	lists := make([][]string, len(programs))
	for i, p := range programs {
		lists[i] = p.Names
	}
	if idx := matchNames(lists, term); idx >= 0 {
		return programs[idx], true
	}
	return models.Program{}, false
}

// FindInfoFact matches a topic against the catalog's informational facts.
func FindInfoFact(facts []models.InfoFact, term string) (models.InfoFact, bool) {
	lists := make([][]string, len(facts))
	for i, f := range facts {
		lists[i] = f.Names
	}
	if idx := matchNames(lists, term); idx >= 0 {
		return facts[idx], true
	}
	return models.InfoFact{}, false
}
