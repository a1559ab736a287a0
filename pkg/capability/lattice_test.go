package capability_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aretw0/mycelium/pkg/capability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLattice_Implies(t *testing.T) {
	l := capability.DefaultLattice()

	res := "/files/report.txt"
	admin := capability.Admin(res)
	write := capability.Write(res)
	read := capability.Read(res)
	del := capability.Delete(res)

	assert.True(t, l.Implies(admin, read))
	assert.True(t, l.Implies(admin, write))
	assert.True(t, l.Implies(admin, del))
	assert.True(t, l.Implies(write, read))

	assert.False(t, l.Implies(read, admin))
	assert.False(t, l.Implies(read, write))
	assert.False(t, l.Implies(del, read))

	// Reflexive for any capability.
	for _, c := range []capability.Capability{admin, write, read, del} {
		assert.True(t, l.Implies(c, c), "expected %s to imply itself", c)
	}

	// Never across resources.
	assert.False(t, l.Implies(capability.Admin("/a"), capability.Read("/b")))
}

func TestLattice_ImpliedBy(t *testing.T) {
	l := capability.DefaultLattice()

	implied := l.ImpliedBy(capability.Admin("/data"))
	require.Len(t, implied, 3)
	assert.Equal(t, []capability.Capability{
		capability.Delete("/data"),
		capability.Read("/data"),
		capability.Write("/data"),
	}, implied)
}

func TestLattice_ValidateAll_Existential(t *testing.T) {
	l := capability.DefaultLattice()

	required := []capability.Capability{capability.Read("/f"), capability.Write("/f")}
	available := []capability.Capability{capability.Admin("/f")}

	assert.True(t, l.ValidateAll(required, available))
	assert.False(t, l.ValidateAll(required, []capability.Capability{capability.Read("/f")}))
	assert.True(t, l.ValidateAll(nil, nil), "empty requirements always hold")
}

func TestLattice_CustomAction(t *testing.T) {
	l := capability.DefaultLattice()
	l.AddImplication("audit", capability.ActionRead)

	assert.True(t, l.Implies(capability.New("audit", "/log"), capability.Read("/log")))
	assert.False(t, l.Implies(capability.New("audit", "/log"), capability.Write("/log")))
}

func TestCompose_CollapsesDuplicates(t *testing.T) {
	set := capability.Compose(
		capability.Read("/f"),
		capability.Write("/f"),
		capability.Read("/f"),
	)
	assert.Len(t, set, 2)
	assert.True(t, set.Contains(capability.Read("/f")))
	assert.True(t, set.Contains(capability.Write("/f")))
}

func TestMergeSets(t *testing.T) {
	a := capability.NewSet(capability.Read("/x"))
	b := capability.NewSet(capability.Read("/x"), capability.Write("/y"))

	merged := capability.MergeSets(a, b)
	assert.Len(t, merged, 2)
}

func TestFilter(t *testing.T) {
	caps := []capability.Capability{
		capability.Read("/a"),
		capability.Write("/a"),
		capability.Read("/b"),
	}
	reads := capability.Filter(caps, func(c capability.Capability) bool {
		return c.Action == capability.ActionRead
	})
	assert.Equal(t, []capability.Capability{capability.Read("/a"), capability.Read("/b")}, reads)
}

func TestTemporal_ValidAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	until := from.Add(24 * time.Hour)
	tc := capability.NewTemporal(capability.Read("/f"), from, until)

	assert.True(t, tc.ValidAt(from), "window start is inclusive")
	assert.True(t, tc.ValidAt(from.Add(time.Hour)))
	assert.False(t, tc.ValidAt(until), "window end is exclusive")
	assert.False(t, tc.ValidAt(from.Add(-time.Second)))
}

func TestDelegation(t *testing.T) {
	l := capability.DefaultLattice()
	c := capability.Write("/doc")

	d := capability.Delegate(c, "alice", "bob")
	assert.Equal(t, "alice", d.Grantor)
	assert.Equal(t, "bob", d.Grantee)

	assert.True(t, l.ValidateDelegation(d, []capability.Capability{capability.Admin("/doc")}))
	assert.False(t, l.ValidateDelegation(d, []capability.Capability{capability.Read("/doc")}))

	batch := capability.DelegateAll([]capability.Capability{c, capability.Read("/doc")}, "alice", "bob")
	assert.Len(t, batch, 2)

	revs := capability.RevokeAll([]capability.Capability{c}, "bob")
	require.Len(t, revs, 1)
	assert.Equal(t, "bob", revs[0].Holder)
}

func TestValidateInContext(t *testing.T) {
	policy := capability.BusinessHoursPolicy(9, 17, capability.ActionDelete)

	noon := map[string]any{"now": time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)}
	midnight := map[string]any{"now": time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}

	assert.True(t, capability.ValidateInContext(capability.Delete("/f"), noon, policy))
	assert.False(t, capability.ValidateInContext(capability.Delete("/f"), midnight, policy))
	// Ungated actions pass regardless of hour.
	assert.True(t, capability.ValidateInContext(capability.Read("/f"), midnight, policy))
	// Nil policy permits everything.
	assert.True(t, capability.ValidateInContext(capability.Delete("/f"), midnight, nil))
}

func TestLoadLattice(t *testing.T) {
	cfg := `
actions:
  - action: owner
    implies: [admin]
  - action: admin
    implies: [write, delete]
  - action: write
    implies: [read]
`
	l, err := capability.LoadLattice(strings.NewReader(cfg))
	require.NoError(t, err)

	// Transitive: owner -> admin -> write -> read.
	assert.True(t, l.Implies(capability.New("owner", "/r"), capability.Read("/r")))
	assert.Len(t, l.ImpliedBy(capability.New("owner", "/r")), 4)

	_, err = capability.LoadLattice(strings.NewReader("actions:\n  - implies: [read]\n"))
	assert.Error(t, err)
}
