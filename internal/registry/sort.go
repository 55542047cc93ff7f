package registry

import (
	"sort"

	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/provider"
	"github.com/vk/provreg/internal/tenant"
)

// Map iteration order is randomized, but dumps and match results must be
// stable so an identity token printed once can be found again next to the
// same neighbors. All enumeration therefore goes through sorted key slices.

func sortTenants(ids []tenant.ID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func sortedComponentKeys(m map[compid.ID]*provider.Record) []compid.ID {
	keys := make([]compid.ID, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Package == keys[j].Package {
			return keys[i].Class < keys[j].Class
		}
		return keys[i].Package < keys[j].Package
	})
	return keys
}

func sortedAuthorityKeys(m map[string]*provider.Record) []string {
	keys := make([]string, 0, len(m))
	for name := range m {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}
