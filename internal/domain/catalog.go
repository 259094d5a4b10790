package domain

import "time"

// WholeTerritory is the reserved municipality value meaning "the entire
// department". It always exists implicitly and can never be added to or
// removed from the municipality catalog.
const WholeTerritory = "Todo el departamento"

// CatalogEntry is one row of a flat reference catalog: a municipality,
// a responsible party, or a unit of measure. Entries are never renamed
// in place; remove and re-add is the only rename path.
type CatalogEntry struct {
	ID        string
	Kind      CatalogKind
	Name      string
	CreatedAt time.Time
}
