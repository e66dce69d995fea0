/*
Package gazetteer provides a static lookup of Pará municipality coordinates.

PURPOSE:
  Maps free-text city names (as typed into the schedule spreadsheet) to fixed
  geographic coordinates for map rendering. This is a gazetteer, not a geocoder:
  the table is defined once at startup and never mutated, so no locking is
  needed and lookups are safe from any goroutine.

LOOKUP SEMANTICS:
  Names are matched case- and whitespace-insensitively. "  belém ", "BELÉM" and
  "Belém" all resolve to the same entry. Unknown names resolve to nothing -
  spreadsheets regularly contain localities outside the table and that is not
  an error condition.

EXTENDING:
  Adding a location only requires a new entry in the paraPlaces table.

SEE ALSO:
  - schedule/normalize.go: annotates records with resolved coordinates
  - api/handlers.go: exposes the table to map renderers
*/
package gazetteer

import (
	"sort"
	"strings"
)

// Coordinates is an immutable (latitude, longitude) pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a named location with its canonical spelling.
type Place struct {
	Name   string      `json:"name"`
	Coords Coordinates `json:"coords"`
}

// =============================================================================
// STATIC TABLE - main cities and operational localities of Pará
// =============================================================================

var paraPlaces = []Place{
	{"Belém", Coordinates{-1.4558, -48.4902}},
	{"Ananindeua", Coordinates{-1.3656, -48.3739}},
	{"Santarém", Coordinates{-2.4426, -54.7085}},
	{"Marabá", Coordinates{-5.3686, -49.1178}},
	{"Parauapebas", Coordinates{-6.0675, -49.9024}},
	{"Castanhal", Coordinates{-1.2939, -47.9261}},
	{"Abaetetuba", Coordinates{-1.7218, -48.8788}},
	{"Canaã dos Carajás", Coordinates{-6.4969, -49.8771}},
	{"Marituba", Coordinates{-1.3473, -48.3439}},
	{"Barcarena", Coordinates{-1.6155, -48.6289}},
	{"Altamira", Coordinates{-3.2039, -52.2094}},
	{"Paragominas", Coordinates{-2.9977, -47.3548}},
	{"Tucuruí", Coordinates{-3.7661, -49.6725}},
	{"Bragança", Coordinates{-1.0534, -46.7655}},
	{"Itaituba", Coordinates{-4.2761, -55.9836}},
	{"Oriximiná", Coordinates{-1.7653, -55.8661}},
	{"Redenção", Coordinates{-8.0273, -50.0305}},
	{"Capanema", Coordinates{-1.1944, -47.1808}},
	{"Conceição do Araguaia", Coordinates{-8.2578, -49.2644}},
	{"Tailândia", Coordinates{-2.9496, -48.3458}},
	{"Juruti", Coordinates{-2.1440, -56.0891}},
	{"Vila Gorete", Coordinates{-2.4256, -55.2365}},
	{"Mojui dos Campos", Coordinates{-2.6824, -54.6418}},
	{"Menbeca", Coordinates{-2.2196, -54.9899}},
	{"Barreiras", Coordinates{-4.0902, -55.6892}},
	{"Almeirim", Coordinates{-1.5276090427351592, -52.577482130144006}},
	{"Rurópolis", Coordinates{-4.094116299218916, -54.91062274171425}},
}

// =============================================================================
// GAZETTEER
// =============================================================================

// Gazetteer resolves place names to coordinates. Read-only after construction.
type Gazetteer struct {
	byKey map[string]Place
}

// Para returns the shared gazetteer of Pará locations.
func Para() *Gazetteer { return para }

var para = build(paraPlaces)

func build(places []Place) *Gazetteer {
	g := &Gazetteer{byKey: make(map[string]Place, len(places))}
	for _, p := range places {
		g.byKey[normalizeName(p.Name)] = p
	}
	return g
}

// Resolve looks up a free-text place name. Empty or unknown names return
// ok=false; callers must treat missing coordinates as normal.
func (g *Gazetteer) Resolve(name string) (Coordinates, bool) {
	key := normalizeName(name)
	if key == "" {
		return Coordinates{}, false
	}
	p, ok := g.byKey[key]
	return p.Coords, ok
}

// Places returns all entries sorted by canonical name.
func (g *Gazetteer) Places() []Place {
	out := make([]Place, 0, len(g.byKey))
	for _, p := range g.byKey {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of known locations.
func (g *Gazetteer) Len() int { return len(g.byKey) }

// normalizeName collapses whitespace and folds case so lookups tolerate the
// casing variance typical of hand-filled spreadsheets.
func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
