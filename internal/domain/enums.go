package domain

type NodeLevel string

const (
	LevelLine       NodeLevel = "line"
	LevelComponent  NodeLevel = "component"
	LevelBet        NodeLevel = "bet"
	LevelInitiative NodeLevel = "initiative"
)

// ValidNodeLevels is the canonical set of accepted hierarchy level strings.
var ValidNodeLevels = map[string]bool{
	"line": true, "component": true, "bet": true, "initiative": true,
}

// ChildLevel returns the level directly below l, or false for initiatives,
// which own goals rather than child nodes.
func ChildLevel(l NodeLevel) (NodeLevel, bool) {
	switch l {
	case LevelLine:
		return LevelComponent, true
	case LevelComponent:
		return LevelBet, true
	case LevelBet:
		return LevelInitiative, true
	default:
		return "", false
	}
}

type Quarter string

const (
	QuarterT1 Quarter = "T1"
	QuarterT2 Quarter = "T2"
	QuarterT3 Quarter = "T3"
	QuarterT4 Quarter = "T4"
)

// ValidQuarters is the canonical set of accepted reporting quarters.
var ValidQuarters = map[string]bool{
	"T1": true, "T2": true, "T3": true, "T4": true,
}

type CatalogKind string

const (
	CatalogMunicipality CatalogKind = "municipality"
	CatalogResponsible  CatalogKind = "responsible"
	CatalogUnit         CatalogKind = "unit"
)

// ValidCatalogKinds is the canonical set of accepted catalog kind strings.
var ValidCatalogKinds = map[string]bool{
	"municipality": true, "responsible": true, "unit": true,
}

type ProgressState string

const (
	StateNotStarted ProgressState = "not_started"
	StateInProgress ProgressState = "in_progress"
	StateCompleted  ProgressState = "completed"
)

type NotificationLevel string

const (
	NoteSuccess       NotificationLevel = "success"
	NoteDestructive   NotificationLevel = "destructive"
	NoteInformational NotificationLevel = "informational"
)
