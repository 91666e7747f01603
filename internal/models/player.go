package models

// Player is one roster entry from the read-only dataset. Never mutated
// after load.
type Player struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Nationality   string `json:"nationality"`
	Age           int    `json:"age"`
	Position      string `json:"position"`
	Number        int    `json:"number"`
	Height        int    `json:"height"`
	TrainedAtClub bool   `json:"trainedAtClub"`
	Matches       int    `json:"matches"`
	TransferFee   string `json:"transferFee"`
	ClubPeriod    string `json:"clubPeriod"`
	CareerPath    string `json:"careerPath"`
	Photo         string `json:"photo,omitempty"`
}

// PlayerSummary is the autocomplete-facing projection of a Player.
type PlayerSummary struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Photo       string `json:"photo,omitempty"`
}

func (p *Player) Summary() PlayerSummary {
	return PlayerSummary{
		ID:          p.ID,
		Name:        p.Name,
		Position:    p.Position,
		Nationality: p.Nationality,
		Photo:       p.Photo,
	}
}
