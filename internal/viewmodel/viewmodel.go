package viewmodel

// HomePage holds data for the landing page.
type HomePage struct {
	Title         string
	Targets       []int
	DefaultTarget int
}

// MatchPage holds data for the main match page template.
type MatchPage struct {
	Title       string
	MatchID     string
	InviteURL   string
	Status      string
	Slapper     string
	Target      int
	PlayerTaken int
	CPUTaken    int
	Power       float64
	WinnerLabel string
	ShowStart   bool
}

// ArenaFragment holds data for the arena (fighters + turn indicator).
type ArenaFragment struct {
	MatchID     string
	Status      string
	Slapper     string
	PlayerTaken int
	CPUTaken    int
	Target      int
	StateKey    string
}

// ScoresFragment holds data for the damage panel.
type ScoresFragment struct {
	MatchID     string
	PlayerTaken int
	CPUTaken    int
	Target      int
}

// OverlayFragment holds data for the start / game-over overlay.
type OverlayFragment struct {
	MatchID     string
	Status      string
	WinnerLabel string
	ShowStart   bool
}
