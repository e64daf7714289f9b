package identity

import (
	"strings"

	"github.com/huangsam/matchgrade/core/extract"
)

// Strategy is one step of player resolution. Find returns every roster
// player the step considers a match, or nothing to fall through.
type Strategy struct {
	Name string
	Find func(r *Resolver, q Query) []indexedPlayer
}

// DefaultStrategies returns the resolution order, most specific first.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{Name: "alias", Find: findAlias},
		{Name: "sibling", Find: findSibling},
		{Name: "exact", Find: findExact},
		{Name: "initial_surname", Find: findInitialSurname},
		{Name: "surname", Find: findSurname},
	}
}

func (r *Resolver) filter(keep func(p indexedPlayer) bool) []indexedPlayer {
	var out []indexedPlayer
	for _, p := range r.players {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// findAlias rewrites a known transliteration or OCR artifact, then matches
// the canonical name exactly.
func findAlias(r *Resolver, q Query) []indexedPlayer {
	canonical, ok := r.aliases.Players[extract.FoldName(q.Name)]
	if !ok {
		return nil
	}
	target := extract.FoldName(canonical)
	return r.filter(func(p indexedPlayer) bool {
		return p.folded == target || p.abbr == target || p.PlayerID == canonical
	})
}

// findSibling applies the configured sibling rules: shirt number first, then
// the name hint.
func findSibling(r *Resolver, q Query) []indexedPlayer {
	surname := extract.Surname(q.Name)
	folded := extract.FoldName(q.Name)
	for _, rule := range r.aliases.Siblings {
		if extract.FoldName(rule.Surname) != surname {
			continue
		}
		pick := ""
		for _, m := range rule.Members {
			if q.Number > 0 && m.Number == q.Number {
				pick = m.PlayerID
				break
			}
		}
		if pick == "" {
			for _, m := range rule.Members {
				if m.Hint != "" && strings.Contains(folded, extract.FoldName(m.Hint)) {
					pick = m.PlayerID
					break
				}
			}
		}
		if pick == "" {
			return nil
		}
		return r.filter(func(p indexedPlayer) bool { return p.PlayerID == pick })
	}
	return nil
}

// findExact matches the folded name against the roster name or abbreviation.
func findExact(r *Resolver, q Query) []indexedPlayer {
	folded := extract.FoldName(q.Name)
	return r.filter(func(p indexedPlayer) bool {
		return p.folded == folded || p.abbr == folded
	})
}

// findInitialSurname matches "J. Surname" style names structurally.
func findInitialSurname(r *Resolver, q Query) []indexedPlayer {
	abbrev := extract.AbbrevKey(q.Name)
	if !strings.Contains(abbrev, " ") {
		return nil
	}
	return r.filter(func(p indexedPlayer) bool { return p.abbrev == abbrev })
}

// findSurname is the loosest step: the roster name ends with the parsed surname.
func findSurname(r *Resolver, q Query) []indexedPlayer {
	surname := extract.Surname(q.Name)
	if len([]rune(surname)) < 3 {
		return nil
	}
	return r.filter(func(p indexedPlayer) bool {
		return p.surname == surname || strings.HasSuffix(p.folded, " "+surname)
	})
}
