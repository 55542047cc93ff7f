package manifest

import (
	"strings"

	"github.com/vk/provreg/internal/provider"
	"github.com/vk/provreg/internal/registry"
)

// Seed files records into reg under both key flavors. The authority field
// may carry several ';'-separated segments; each segment is filed as its
// own authority key, all pointing at the same record.
func Seed(reg *registry.Registry, records []*provider.Record) {
	for _, rec := range records {
		reg.PutByComponent(rec.Component, rec)
		if rec.Authority == "" {
			continue
		}
		for _, name := range strings.Split(rec.Authority, ";") {
			if name != "" {
				reg.PutByAuthority(name, rec)
			}
		}
	}
}
