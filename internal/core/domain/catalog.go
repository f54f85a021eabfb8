package domain

// CatalogKind identifies one of the reference tables administered through the
// generic CRUD screens.
type CatalogKind string

const (
	CatalogSectors  CatalogKind = "sectores"
	CatalogEntities CatalogKind = "entidades"
	CatalogPillars  CatalogKind = "pilares"
	CatalogAxes     CatalogKind = "ejes"
	CatalogGoals    CatalogKind = "metas"
	CatalogResults  CatalogKind = "resultados"
	CatalogActions  CatalogKind = "acciones"
)

var catalogKinds = map[CatalogKind]bool{
	CatalogSectors:  false,
	CatalogEntities: false,
	CatalogPillars:  false,
	CatalogAxes:     false,
	CatalogGoals:    true,
	CatalogResults:  true,
	CatalogActions:  true,
}

// ParseCatalogKind returns the kind named by s, or ErrUnknownCatalog.
func ParseCatalogKind(s string) (CatalogKind, error) {
	k := CatalogKind(s)
	if _, ok := catalogKinds[k]; !ok {
		return "", ErrUnknownCatalog
	}
	return k, nil
}

// Coded reports whether records of this kind carry a code besides the name.
func (k CatalogKind) Coded() bool { return catalogKinds[k] }

// View is the administration screen of the kind.
func (k CatalogKind) View() View {
	switch k {
	case CatalogSectors:
		return ViewSectors
	case CatalogEntities:
		return ViewEntities
	case CatalogPillars:
		return ViewPillars
	case CatalogAxes:
		return ViewAxes
	case CatalogGoals:
		return ViewGoals
	case CatalogResults:
		return ViewResults
	case CatalogActions:
		return ViewActions
	}
	return ViewUnknown
}

// CatalogEntry is a row of a reference table.
type CatalogEntry struct {
	ID     int64       `json:"id"               bson:"_id"`
	Kind   CatalogKind `json:"-"                bson:"kind"`
	Code   string      `json:"codigo,omitempty" bson:"code,omitempty"`
	Name   string      `json:"nombre"           bson:"name"`
	Status Status      `json:"estado"           bson:"status"`
}

// Area is an organisational unit inside an entity.
type Area struct {
	ID       int64  `json:"id"         bson:"_id"`
	EntityID int64  `json:"id_entidad" bson:"entity_id"`
	Name     string `json:"nombre"     bson:"name"`
	Status   Status `json:"estado"     bson:"status"`
}

// UserContext describes where a user sits in the organisation.
type UserContext struct {
	Area   string `json:"area"`
	Entity string `json:"entidad"`
	Sector string `json:"sector"`
}
