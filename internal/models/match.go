package models

// FormationLine is one horizontal line of a formation template, e.g.
// {Line: "DEF", Positions: ["DEF1", "DEF2", "DEF3", "DEF4"]}.
type FormationLine struct {
	Line      string   `json:"line"`
	Positions []string `json:"positions"`
}

type Formation struct {
	Name      string          `json:"name"`
	Structure []FormationLine `json:"structure"`
}

// SlotCount is the number of positions across all lines.
func (f *Formation) SlotCount() int {
	total := 0
	for _, line := range f.Structure {
		total += len(line.Positions)
	}
	return total
}

// Match references a formation template and the per-line player ids of
// the starting eleven to reconstruct.
type Match struct {
	ID        int              `json:"id"`
	Opponent  string           `json:"opponent"`
	Date      string           `json:"date"`
	Score     string           `json:"score"`
	Formation string           `json:"formation"`
	Lineup    map[string][]int `json:"lineup"`
}

// LineupIDs returns every player id of the target lineup, all lines
// flattened.
func (m *Match) LineupIDs() map[int]struct{} {
	ids := make(map[int]struct{})
	for _, line := range m.Lineup {
		for _, id := range line {
			ids[id] = struct{}{}
		}
	}
	return ids
}
