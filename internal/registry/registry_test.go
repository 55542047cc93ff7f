package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/provreg/internal/compid"
	"github.com/vk/provreg/internal/tenant"
	"github.com/vk/provreg/internal/testutil"
)

func TestSingletonIsVisibleToEveryTenant(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("contacts", "com.example.contacts/.ContactsProvider", true, 1000)

	r.PutByAuthority("contacts", rec)
	r.PutByComponent(rec.Component, rec)

	assert.Same(t, rec, r.ByAuthority("contacts", 0))
	// A tenant the registry has never seen before gets the same answer.
	assert.Same(t, rec, r.ByAuthority("contacts", 7))
	assert.Same(t, rec, r.ByComponent(rec.Component, 7))
}

func TestTenantRecordIsIsolated(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	require.Equal(t, tenant.ID(3), rec.Tenant())

	r.PutByAuthority("media", rec)
	r.PutByComponent(rec.Component, rec)

	assert.Same(t, rec, r.ByAuthority("media", 3))
	assert.Same(t, rec, r.ByComponent(rec.Component, 3))
	assert.Nil(t, r.ByAuthority("media", 5))
	assert.Nil(t, r.ByComponent(rec.Component, 5))
}

func TestPutSelectsScopeFromTheRecord(t *testing.T) {
	r := New(nil)
	global := testutil.NewRecord("settings", "com.example.settings/.SettingsProvider", true, 1000)
	scoped := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)

	r.PutByAuthority("settings", global)
	r.PutByAuthority("media", scoped)

	assert.Contains(t, r.singletonByAuthority, "settings")
	assert.NotContains(t, r.singletonByAuthority, "media")
	require.Contains(t, r.byAuthorityPerTenant, tenant.ID(3))
	assert.Same(t, scoped, r.byAuthorityPerTenant[tenant.ID(3)]["media"])
}

func TestPutKeyIsIndependentOfRecordKey(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("media;media.documents", "com.example.media/.MediaProvider", false, 310007)

	// Callers index multi-segment authorities one segment at a time.
	r.PutByAuthority("media", rec)
	r.PutByAuthority("media.documents", rec)

	assert.Same(t, rec, r.ByAuthority("media", 3))
	assert.Same(t, rec, r.ByAuthority("media.documents", 3))
}

func TestPutOverwritesSameKeyInScope(t *testing.T) {
	r := New(nil)
	old := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	updated := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)

	r.PutByAuthority("media", old)
	r.PutByAuthority("media", updated)

	assert.Same(t, updated, r.ByAuthority("media", 3))
}

func TestRemoveIsIdempotent(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	r.PutByAuthority("media", rec)
	r.PutByComponent(rec.Component, rec)

	r.RemoveByAuthority("media", 3)
	assert.Nil(t, r.ByAuthority("media", 3))

	// A second removal, and removals of keys never filed, are silent no-ops.
	assert.NotPanics(t, func() {
		r.RemoveByAuthority("media", 3)
		r.RemoveByComponent(rec.Component, 3)
		r.RemoveByComponent(rec.Component, 3)
		r.RemoveByAuthority("never-filed", 0)
	})
}

// TestGlobalPrecedenceOnCollision simulates a caller violating the filing
// invariant by injecting a global and a tenant record under the same key.
// The global entry must win lookups, and removal must clear the global
// entry first, exposing the tenant entry afterwards.
func TestGlobalPrecedenceOnCollision(t *testing.T) {
	r := New(nil)
	global := testutil.NewRecord("media", "com.example.media/.MediaProvider", true, 1000)
	scoped := testutil.NewRecord("media", "com.other.media/.MediaProvider", false, 310007)

	r.singletonByAuthority["media"] = global
	r.authorityScope(3)["media"] = scoped

	assert.Same(t, global, r.ByAuthority("media", 3))

	r.RemoveByAuthority("media", 3)
	assert.Same(t, scoped, r.ByAuthority("media", 3), "tenant entry must survive the global removal")

	r.RemoveByAuthority("media", 3)
	assert.Nil(t, r.ByAuthority("media", 3))
}

func TestUnsetTenantResolvesExternally(t *testing.T) {
	acting := tenant.ID(4)
	r := New(func() tenant.ID { return acting })
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 400001)
	require.Equal(t, acting, rec.Tenant())

	r.PutByAuthority("media", rec)

	assert.Same(t, rec, r.ByAuthority("media", tenant.Unset))

	r.RemoveByAuthority("media", tenant.Unset)
	assert.Nil(t, r.ByAuthority("media", acting))
}

func TestLazyScopeMaterializationPersists(t *testing.T) {
	r := New(nil)

	assert.Empty(t, r.byAuthorityPerTenant, "no scope before first access")

	// A miss is enough to materialize the scope.
	assert.Nil(t, r.ByAuthority("anything", 9))
	require.Contains(t, r.byAuthorityPerTenant, tenant.ID(9))
	assert.Empty(t, r.byAuthorityPerTenant[tenant.ID(9)])

	// The scope persists and is reused by later writes.
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 900001)
	r.PutByAuthority("media", rec)
	assert.Len(t, r.byAuthorityPerTenant, 1)
	assert.Same(t, rec, r.byAuthorityPerTenant[tenant.ID(9)]["media"])

	// A tenant never referenced stays absent from enumeration.
	assert.NotContains(t, r.byAuthorityPerTenant, tenant.ID(2))
}

func TestComponentsForSingleTenant(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	other := testutil.NewRecord("mail", "com.example.mail/.MailProvider", false, 500001)
	r.PutByComponent(rec.Component, rec)
	r.PutByComponent(other.Component, other)

	got := r.ComponentsFor(3)
	require.Len(t, got, 1)
	assert.Same(t, rec, got[rec.Component])
}

func TestComponentsForAllAggregatesEveryScope(t *testing.T) {
	r := New(nil)
	global := testutil.NewRecord("settings", "com.example.settings/.SettingsProvider", true, 1000)
	t3 := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	t5 := testutil.NewRecord("mail", "com.example.mail/.MailProvider", false, 500001)
	r.PutByComponent(global.Component, global)
	r.PutByComponent(t3.Component, t3)
	r.PutByComponent(t5.Component, t5)

	got := r.ComponentsFor(tenant.All)
	require.Len(t, got, 3)
	assert.Same(t, global, got[global.Component])
	assert.Same(t, t3, got[t3.Component])
	assert.Same(t, t5, got[t5.Component])
}

func TestComponentsForReturnsDetachedSnapshot(t *testing.T) {
	r := New(nil)
	rec := testutil.NewRecord("media", "com.example.media/.MediaProvider", false, 310007)
	r.PutByComponent(rec.Component, rec)

	got := r.ComponentsFor(3)
	delete(got, rec.Component)

	assert.Same(t, rec, r.ByComponent(rec.Component, 3), "mutating the snapshot must not touch the index")
}

// TestConcurrentAccess verifies that lookups, filings, and removals from
// many goroutines do not race the lazy scope creation or each other.
func TestConcurrentAccess(t *testing.T) {
	r := New(nil)
	const numGoroutines = 100
	var wg sync.WaitGroup

	// Phase 1: concurrent filings, one tenant per goroutine.
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			authority := fmt.Sprintf("authority-%d", i)
			component := fmt.Sprintf("com.example.t%d/.Provider", i)
			rec := testutil.NewRecord(authority, component, false, i*100000+1)
			r.PutByAuthority(authority, rec)
			r.PutByComponent(rec.Component, rec)
		}(i)
	}
	wg.Wait()

	// Phase 2: concurrent reads and enumeration.
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(i int) {
			defer wg.Done()
			authority := fmt.Sprintf("authority-%d", i)
			rec := r.ByAuthority(authority, tenant.ID(i))
			if rec == nil {
				t.Errorf("missing record for tenant %d", i)
				return
			}
			if got := r.ByComponent(rec.Component, tenant.ID(i)); got != rec {
				t.Errorf("component lookup mismatch for tenant %d", i)
			}
			if got := len(r.ComponentsFor(tenant.ID(i))); got != 1 {
				t.Errorf("tenant %d scope size = %d, want 1", i, got)
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, r.ComponentsFor(tenant.All), numGoroutines)
}

func TestComponentShorthand(t *testing.T) {
	// Guard the assumption the other tests lean on: the shorthand and the
	// expanded class form address the same slot.
	r := New(nil)
	rec := testutil.NewRecord("media", "com.example.media/com.example.media.MediaProvider", false, 310007)
	r.PutByComponent(rec.Component, rec)

	assert.Same(t, rec, r.ByComponent(compid.MustParse("com.example.media/.MediaProvider"), 3))
}
