package resolvers

import (
	"maps"
	"strings"

	schema "github.com/hanpama/gqlkit/internal/schema"
)

// inheritFromInterfaces returns rm where every object and interface entry is
// completed with the field resolvers of the interfaces its type implements.
// Only fields the type declares are inherited, its own entries win, and among
// interfaces the first one listed wins. rm is not modified.
func inheritFromInterfaces(s *schema.Schema, rm ResolverMap) ResolverMap {
	out := maps.Clone(rm)
	if out == nil {
		out = make(ResolverMap)
	}
	for _, name := range sortedKeys(s.Types) {
		t := s.Types[name]
		if (t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface) || len(t.Interfaces) == 0 {
			continue
		}
		own, ok := asEntry(rm[name])
		if !ok && rm[name] != nil {
			// Left for validation to report.
			continue
		}

		var merged map[string]any
		for _, iface := range t.Interfaces {
			ifaceEntry, ok := asEntry(rm[iface])
			if !ok {
				continue
			}
			for _, key := range sortedKeys(ifaceEntry) {
				if strings.HasPrefix(key, "__") || t.Field(key) == nil {
					continue
				}
				if _, set := own[key]; set {
					continue
				}
				if _, set := merged[key]; set {
					continue
				}
				if merged == nil {
					merged = make(map[string]any, len(own)+1)
					maps.Copy(merged, own)
				}
				merged[key] = ifaceEntry[key]
			}
		}
		if merged != nil {
			out[name] = merged
		}
	}
	return out
}
