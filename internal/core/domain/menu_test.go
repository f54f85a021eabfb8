package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func section(id int64, label string) MenuItem {
	return MenuItem{ID: id, Kind: KindSection, Label: label, Status: StatusActive}
}

func leaf(id, parent int64, label, target string) MenuItem {
	return MenuItem{ID: id, ParentID: ptr(parent), Kind: KindLeaf, Label: label, LinkTarget: ptr(target), Status: StatusActive}
}

func entry(itemID int64, state AccessState) AccessEntry {
	return AccessEntry{RoleID: 1, MenuItemID: itemID, State: state}
}

func labels(m VisibleMenu) map[string][]string {
	out := make(map[string][]string, len(m))
	for _, s := range m {
		for _, l := range s.Leaves {
			out[s.Label] = append(out[s.Label], l.Label)
		}
	}
	return out
}

func TestResolveMenu_EnabledSectionAndLeaf(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled)}

	got := ResolveMenu(catalog, access)

	require.Len(t, got, 1)
	assert.Equal(t, "OPS", got[0].Label)
	require.Len(t, got[0].Leaves, 1)
	assert.Equal(t, "Reports", got[0].Leaves[0].Label)
	assert.Equal(t, "reports", got[0].Leaves[0].LinkTarget)
}

func TestResolveMenu_DisabledLeafDropsSection(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateDisabled)}

	got := ResolveMenu(catalog, access)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestResolveMenu_OrphanLeafDropped(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports"), leaf(3, 99, "Orphan", "orphan")}

	for _, state := range []AccessState{StateEnabled, StateDisabled} {
		access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled), entry(3, state), entry(99, StateEnabled)}
		got := ResolveMenu(catalog, access)
		assert.Equal(t, map[string][]string{"OPS": {"Reports"}}, labels(got))
	}
}

func TestResolveMenu_DisabledSectionHidesEnabledLeaves(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports")}
	access := []AccessEntry{entry(1, StateDisabled), entry(2, StateEnabled)}

	assert.Empty(t, ResolveMenu(catalog, access))
}

func TestResolveMenu_MissingAccessEntryIsDisabled(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports"), leaf(3, 1, "Audit", "audit")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled)}

	assert.Equal(t, map[string][]string{"OPS": {"Reports"}}, labels(ResolveMenu(catalog, access)))
}

func TestResolveMenu_UnknownKindAndStateExcluded(t *testing.T) {
	catalog := []MenuItem{
		section(1, "OPS"),
		{ID: 2, ParentID: ptr(int64(1)), Kind: MenuKind("widget"), Label: "Widget"},
		leaf(3, 1, "Reports", "reports"),
		leaf(4, 1, "Audit", "audit"),
	}
	access := []AccessEntry{
		entry(1, StateEnabled),
		entry(2, StateEnabled),
		entry(3, StateEnabled),
		entry(4, AccessState("maybe")),
	}

	assert.Equal(t, map[string][]string{"OPS": {"Reports"}}, labels(ResolveMenu(catalog, access)))
}

func TestResolveMenu_MalformedRecordsSkipped(t *testing.T) {
	catalog := []MenuItem{
		section(1, "OPS"),
		{ID: 0, ParentID: ptr(int64(1)), Kind: KindLeaf, Label: "No id"},
		{ID: 5, ParentID: ptr(int64(1)), Kind: KindLeaf, Label: "  "},
		{ID: 6, Kind: KindLeaf, Label: "No parent"},
		leaf(7, 1, "Reports", "reports"),
	}
	access := []AccessEntry{
		entry(1, StateEnabled),
		entry(0, StateEnabled),
		entry(5, StateEnabled),
		entry(6, StateEnabled),
		entry(7, StateEnabled),
	}

	assert.Equal(t, map[string][]string{"OPS": {"Reports"}}, labels(ResolveMenu(catalog, access)))
}

func TestResolveMenu_NestedSectionNotSupported(t *testing.T) {
	nested := section(2, "Nested")
	nested.ParentID = ptr(int64(1))
	catalog := []MenuItem{section(1, "OPS"), nested, leaf(3, 2, "Deep", "deep")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled), entry(3, StateEnabled)}

	assert.Empty(t, ResolveMenu(catalog, access))
}

func TestResolveMenu_DuplicateEntriesResolveToDisabled(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled), entry(2, StateDisabled)}

	assert.Empty(t, ResolveMenu(catalog, access))
}

func TestResolveMenu_PreservesCatalogOrder(t *testing.T) {
	catalog := []MenuItem{
		section(10, "CONFIGURACION"),
		leaf(3, 20, "Sector", "loadSectorView"),
		leaf(1, 10, "Usuarios", "loadUsuariosView"),
		section(20, "PARAMETRICAS"),
		leaf(2, 10, "Roles", "loadRolesView"),
		leaf(4, 20, "Entidad", "loadEntidadView"),
	}
	var access []AccessEntry
	for _, it := range catalog {
		access = append(access, entry(it.ID, StateEnabled))
	}

	got := ResolveMenu(catalog, access)

	require.Len(t, got, 2)
	assert.Equal(t, "CONFIGURACION", got[0].Label)
	assert.Equal(t, "PARAMETRICAS", got[1].Label)
	assert.Equal(t, map[string][]string{
		"CONFIGURACION": {"Usuarios", "Roles"},
		"PARAMETRICAS":  {"Sector", "Entidad"},
	}, labels(got))
	assert.Equal(t, ViewUsers, got[0].Leaves[0].View)
	assert.Equal(t, ViewSectors, got[1].Leaves[0].View)
}

func TestResolveMenu_Idempotent(t *testing.T) {
	catalog := []MenuItem{section(1, "OPS"), leaf(2, 1, "Reports", "reports")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled)}

	assert.Equal(t, ResolveMenu(catalog, access), ResolveMenu(catalog, access))
}

func TestVisibleMenu_Allows(t *testing.T) {
	catalog := []MenuItem{section(1, "CONFIGURACION"), leaf(2, 1, "Roles", "loadRolesView"), leaf(3, 1, "Raro", "somethingElse")}
	access := []AccessEntry{entry(1, StateEnabled), entry(2, StateEnabled), entry(3, StateEnabled)}
	menu := ResolveMenu(catalog, access)

	assert.True(t, menu.Allows(ViewRoles))
	assert.False(t, menu.Allows(ViewUsers))
	assert.False(t, menu.Allows(ViewUnknown))
	assert.Equal(t, 2, menu.LeafCount())
}

// randomInputs builds a catalog of sections, leaves (some orphaned) and junk
// nodes, plus an access list covering a random subset of it.
func randomInputs(r *rand.Rand) ([]MenuItem, []AccessEntry) {
	var catalog []MenuItem
	var sectionIDs []int64
	n := 1 + r.IntN(40)
	for id := int64(1); id <= int64(n); id++ {
		switch r.IntN(5) {
		case 0:
			catalog = append(catalog, section(id, "S"))
			sectionIDs = append(sectionIDs, id)
		case 1:
			catalog = append(catalog, MenuItem{ID: id, Kind: MenuKind("junk"), Label: "J"})
		default:
			parent := int64(1000 + r.IntN(5))
			if len(sectionIDs) > 0 && r.IntN(4) != 0 {
				parent = sectionIDs[r.IntN(len(sectionIDs))]
			}
			catalog = append(catalog, leaf(id, parent, "L", "t"))
		}
	}
	var access []AccessEntry
	for id := int64(1); id <= int64(n)+3; id++ {
		switch r.IntN(3) {
		case 0:
			access = append(access, entry(id, StateEnabled))
		case 1:
			access = append(access, entry(id, StateDisabled))
		}
	}
	return catalog, access
}

func TestResolveMenu_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(42, 7))

	for iter := 0; iter < 500; iter++ {
		catalog, access := randomInputs(r)
		got := ResolveMenu(catalog, access)

		states := make(map[int64]AccessState)
		for _, e := range access {
			states[e.MenuItemID] = e.State
		}
		position := make(map[int64]int)
		byID := make(map[int64]MenuItem)
		for i, it := range catalog {
			position[it.ID] = i
			byID[it.ID] = it
		}

		for _, s := range got {
			// P2: no empty sections.
			require.NotEmpty(t, s.Leaves)
			// Enclosing section enabled.
			require.Equal(t, StateEnabled, states[s.ID])
			require.Equal(t, KindSection, byID[s.ID].Kind)

			last := -1
			for _, l := range s.Leaves {
				// Leaf enabled.
				require.Equal(t, StateEnabled, states[l.ID])
				// P4: parent is a real section, the one it is listed under.
				item := byID[l.ID]
				require.NotNil(t, item.ParentID)
				require.Equal(t, s.ID, *item.ParentID)
				// P3: catalog order preserved.
				require.Greater(t, position[l.ID], last)
				last = position[l.ID]
			}
		}

		// Empty access list, empty menu.
		require.Empty(t, ResolveMenu(catalog, nil))
		require.Empty(t, ResolveMenu(catalog, []AccessEntry{}))
	}
}

func TestParseMenuKindAndState(t *testing.T) {
	assert.Equal(t, KindSection, ParseMenuKind("separador"))
	assert.Equal(t, KindSection, ParseMenuKind("Section"))
	assert.Equal(t, KindLeaf, ParseMenuKind("opcion"))
	assert.Equal(t, KindUnknown, ParseMenuKind("folder"))

	assert.Equal(t, StateEnabled, ParseAccessState("ACTIVO"))
	assert.Equal(t, StateDisabled, ParseAccessState("disabled"))
	assert.Equal(t, StateUnknown, ParseAccessState(""))
}
