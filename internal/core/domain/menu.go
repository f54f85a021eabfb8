package domain

import "strings"

// MenuKind discriminates navigation nodes. Only two levels exist: a section
// groups leaves, a leaf activates a view.
type MenuKind string

const (
	KindUnknown MenuKind = ""
	KindSection MenuKind = "section"
	KindLeaf    MenuKind = "leaf"
)

// ParseMenuKind accepts both the current and the legacy ("separador",
// "opcion") spellings. Anything else is KindUnknown.
func ParseMenuKind(s string) MenuKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "section", "separador":
		return KindSection
	case "leaf", "opcion":
		return KindLeaf
	}
	return KindUnknown
}

// AccessState is the per-role enablement flag of a menu item.
type AccessState string

const (
	StateUnknown  AccessState = ""
	StateEnabled  AccessState = "enabled"
	StateDisabled AccessState = "disabled"
)

// ParseAccessState accepts "enabled"/"disabled" and the legacy
// "ACTIVO"/"INACTIVO" values.
func ParseAccessState(s string) AccessState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enabled", "activo":
		return StateEnabled
	case "disabled", "inactivo":
		return StateDisabled
	}
	return StateUnknown
}

// MenuItem is a node of the navigation catalog.
type MenuItem struct {
	ID         int64    `json:"id"                    bson:"_id"`
	ParentID   *int64   `json:"parent_id,omitempty"   bson:"parent_id,omitempty"`
	Kind       MenuKind `json:"kind"                  bson:"kind"`
	Label      string   `json:"label"                 bson:"label"`
	Icon       string   `json:"icon,omitempty"        bson:"icon,omitempty"`
	LinkTarget *string  `json:"link_target,omitempty" bson:"link_target,omitempty"`
	Status     Status   `json:"status"                bson:"status"`
}

// AccessEntry enables or disables one menu item for one role. There is at
// most one entry per (RoleID, MenuItemID).
type AccessEntry struct {
	ID         int64       `json:"id"              bson:"_id"`
	RoleID     int64       `json:"role_id"         bson:"role_id"`
	MenuItemID int64       `json:"menu_item_id"    bson:"menu_item_id"`
	State      AccessState `json:"state"           bson:"state"`
	Label      string      `json:"label,omitempty" bson:"-"`
}

// VisibleLeaf is a clickable entry of a resolved menu.
type VisibleLeaf struct {
	ID         int64  `json:"id"`
	Label      string `json:"label"`
	Icon       string `json:"icon,omitempty"`
	LinkTarget string `json:"link_target,omitempty"`
	View       View   `json:"view"`
}

// Section is a resolved section header together with its visible leaves.
type Section struct {
	ID     int64         `json:"id"`
	Label  string        `json:"label"`
	Icon   string        `json:"icon,omitempty"`
	Leaves []VisibleLeaf `json:"leaves"`
}

// VisibleMenu is the ordered list of sections a role may see.
type VisibleMenu []Section

// LeafCount returns the number of leaves across all sections.
func (m VisibleMenu) LeafCount() int {
	n := 0
	for _, s := range m {
		n += len(s.Leaves)
	}
	return n
}

// Allows reports whether some visible leaf links to the given view.
func (m VisibleMenu) Allows(v View) bool {
	if v == ViewUnknown {
		return false
	}
	for _, s := range m {
		for _, l := range s.Leaves {
			if l.View == v {
				return true
			}
		}
	}
	return false
}

// ResolveMenu derives the menu visible to a role from the full catalog and the
// role's access entries.
//
// A leaf is kept only when both the leaf and its parent section are enabled.
// Sections without leaves are omitted, leaves whose parent is not a known
// section are dropped, and catalog order is preserved at both levels. Records
// with an unknown kind, a missing id or label, or an unknown state are
// skipped. An empty access list yields an empty menu.
func ResolveMenu(catalog []MenuItem, access []AccessEntry) VisibleMenu {
	out := VisibleMenu{}
	if len(access) == 0 {
		return out
	}

	// Duplicate entries for the same item resolve to disabled.
	enabled := make(map[int64]bool, len(access))
	for _, e := range access {
		if e.MenuItemID <= 0 {
			continue
		}
		switch e.State {
		case StateEnabled:
			if _, seen := enabled[e.MenuItemID]; !seen {
				enabled[e.MenuItemID] = true
			}
		case StateDisabled:
			enabled[e.MenuItemID] = false
		}
	}

	index := make(map[int64]int)
	var sections []Section
	for _, item := range catalog {
		if item.Kind != KindSection || !item.wellFormed() || item.ParentID != nil {
			continue
		}
		if _, dup := index[item.ID]; dup {
			continue
		}
		index[item.ID] = len(sections)
		sections = append(sections, Section{ID: item.ID, Label: item.Label, Icon: item.Icon})
	}

	placed := make(map[int64]struct{})
	for _, item := range catalog {
		if item.Kind != KindLeaf || !item.wellFormed() || item.ParentID == nil {
			continue
		}
		pos, ok := index[*item.ParentID]
		if !ok || !enabled[*item.ParentID] || !enabled[item.ID] {
			continue
		}
		if _, dup := placed[item.ID]; dup {
			continue
		}
		placed[item.ID] = struct{}{}
		sections[pos].Leaves = append(sections[pos].Leaves, toVisibleLeaf(item))
	}

	for _, s := range sections {
		if len(s.Leaves) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// ActiveItems drops catalog items marked inactive.
func ActiveItems(items []MenuItem) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, it := range items {
		if it.Status == StatusInactive {
			continue
		}
		out = append(out, it)
	}
	return out
}

func (m MenuItem) wellFormed() bool {
	return m.ID > 0 && strings.TrimSpace(m.Label) != ""
}

func toVisibleLeaf(item MenuItem) VisibleLeaf {
	leaf := VisibleLeaf{ID: item.ID, Label: item.Label, Icon: item.Icon, View: ViewUnknown}
	if item.LinkTarget != nil {
		leaf.LinkTarget = *item.LinkTarget
		leaf.View = ParseView(*item.LinkTarget)
	}
	return leaf
}
