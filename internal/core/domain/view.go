package domain

// View names a screen a leaf can activate. Link targets stored in the catalog
// are free text; ParseView maps them onto this closed set.
type View string

const (
	ViewUnknown    View = "unknown"
	ViewHome       View = "home"
	ViewSectors    View = "sectors"
	ViewEntities   View = "entities"
	ViewPillars    View = "pillars"
	ViewAxes       View = "axes"
	ViewGoals      View = "goals"
	ViewResults    View = "results"
	ViewActions    View = "actions"
	ViewIndicators View = "indicators"
	ViewAccounting View = "accounting"
	ViewTracking   View = "tracking"
	ViewUsers      View = "users"
	ViewRoles      View = "roles"
	ViewMenu       View = "menu"
	ViewDashboard  View = "dashboard"
)

var linkTargets = map[string]View{
	"home":                ViewHome,
	"loadSectorView":      ViewSectors,
	"loadEntidadView":     ViewEntities,
	"loadPilarView":       ViewPillars,
	"loadEjeView":         ViewAxes,
	"loadMetaView":        ViewGoals,
	"loadResultadoView":   ViewResults,
	"loadAccionView":      ViewActions,
	"loadIndicadorView":   ViewIndicators,
	"loadRendicionView":   ViewAccounting,
	"loadSeguimientoView": ViewTracking,
	"loadUsuariosView":    ViewUsers,
	"loadRolesView":       ViewRoles,
	"loadMenuView":        ViewMenu,
	"loadDashboardView":   ViewDashboard,
}

// ParseView maps a catalog link target to a View. Both the legacy
// "load…View" targets and the View names themselves are accepted.
func ParseView(target string) View {
	if v, ok := linkTargets[target]; ok {
		return v
	}
	for _, v := range linkTargets {
		if string(v) == target {
			return v
		}
	}
	return ViewUnknown
}
