// Package dataset owns the read-only roster and match data supplied at
// startup. All gameplay is gated until Load succeeds; a failed load
// leaves the service up but permanently unplayable for this process.
package dataset

import (
	"errors"
	"fmt"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"psgdle/internal/models"
	"psgdle/internal/providers"
	"psgdle/internal/structures"
)

var ErrUnavailable = errors.New("dataset unavailable")

// lineAliases maps equivalent formation-line labels to their canonical
// form. Some match records label the midfield line differently from the
// formation templates; both spellings resolve to the same structural
// line here, once, at the load boundary.
var lineAliases = map[string]string{
	"MIL": "MID",
}

type playersFile struct {
	Players []models.Player `json:"players"`
}

type matchesFile struct {
	Formations map[string]models.Formation `json:"formations"`
	Matches    []models.Match              `json:"matches"`
}

type Dataset struct {
	players    []models.Player
	photoPool  []models.Player
	matches    []models.Match
	formations map[string]models.Formation
	byID       map[int]*models.Player
}

// NewDatasetProvider loads the dataset for dependency injection. Load
// failure is logged and yields an empty dataset instead of aborting the
// process: the HTTP surface stays up and reports itself unplayable.
func NewDatasetProvider(conf *structures.Config, logger providers.Logger) *Dataset {
	ds, err := Load(conf.Dataset.PlayersPath, conf.Dataset.MatchesPath)
	if err != nil {
		logger.Errorf(providers.TypeApp, "Dataset load failed, gameplay disabled: %s", err)
		return &Dataset{byID: make(map[int]*models.Player)}
	}
	logger.Infof(providers.TypeApp, "Dataset loaded: %d players (%d with photo), %d matches",
		len(ds.players), len(ds.photoPool), len(ds.matches))
	return ds
}

func Load(playersPath, matchesPath string) (*Dataset, error) {
	raw, err := os.ReadFile(playersPath)
	if err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	var pf playersFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, fmt.Errorf("parse players: %w", err)
	}
	if len(pf.Players) == 0 {
		return nil, fmt.Errorf("players file %s holds no players", playersPath)
	}

	raw, err = os.ReadFile(matchesPath)
	if err != nil {
		return nil, fmt.Errorf("read matches: %w", err)
	}
	var mf matchesFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, fmt.Errorf("parse matches: %w", err)
	}

	ds := &Dataset{
		players:    pf.Players,
		matches:    mf.Matches,
		formations: make(map[string]models.Formation, len(mf.Formations)),
		byID:       make(map[int]*models.Player, len(pf.Players)),
	}

	for i := range ds.players {
		p := &ds.players[i]
		ds.byID[p.ID] = p
		if strings.TrimSpace(p.Photo) != "" {
			ds.photoPool = append(ds.photoPool, *p)
		}
	}

	for name, formation := range mf.Formations {
		for i := range formation.Structure {
			formation.Structure[i].Line = canonicalLine(formation.Structure[i].Line)
		}
		ds.formations[name] = formation
	}
	for i := range ds.matches {
		ds.matches[i].Lineup = normalizeLineup(ds.matches[i].Lineup)
	}

	if err := ds.validateMatches(); err != nil {
		return nil, err
	}

	return ds, nil
}

func canonicalLine(label string) string {
	if canonical, ok := lineAliases[label]; ok {
		return canonical
	}
	return label
}

func normalizeLineup(lineup map[string][]int) map[string][]int {
	normalized := make(map[string][]int, len(lineup))
	for label, ids := range lineup {
		canonical := canonicalLine(label)
		normalized[canonical] = append(normalized[canonical], ids...)
	}
	return normalized
}

// validateMatches rejects matches whose lineup references a line absent
// from their formation template or leaves formation slots uncovered, so
// evaluation never has to re-check.
func (ds *Dataset) validateMatches() error {
	for _, match := range ds.matches {
		formation, ok := ds.formations[match.Formation]
		if !ok {
			return fmt.Errorf("match %d references unknown formation %q", match.ID, match.Formation)
		}
		total := 0
		for label, ids := range match.Lineup {
			line := formationLine(&formation, label)
			if line == nil {
				return fmt.Errorf("match %d lineup line %q missing from formation %q", match.ID, label, match.Formation)
			}
			if len(ids) != len(line.Positions) {
				return fmt.Errorf("match %d line %q holds %d players for %d positions", match.ID, label, len(ids), len(line.Positions))
			}
			total += len(ids)
		}
		if total != formation.SlotCount() {
			return fmt.Errorf("match %d lineup covers %d of %d formation slots", match.ID, total, formation.SlotCount())
		}
	}
	return nil
}

func formationLine(f *models.Formation, label string) *models.FormationLine {
	for i := range f.Structure {
		if f.Structure[i].Line == label {
			return &f.Structure[i]
		}
	}
	return nil
}

// Ready reports whether gameplay data resolved at startup.
func (ds *Dataset) Ready() bool {
	return len(ds.players) > 0
}

func (ds *Dataset) Players() []models.Player {
	return ds.players
}

// PhotoPool is the subset of players carrying a photo, the only valid
// targets for the photo variant.
func (ds *Dataset) PhotoPool() []models.Player {
	return ds.photoPool
}

func (ds *Dataset) Matches() []models.Match {
	return ds.matches
}

func (ds *Dataset) PlayerByID(id int) (*models.Player, bool) {
	p, ok := ds.byID[id]
	return p, ok
}

func (ds *Dataset) FormationFor(match *models.Match) (*models.Formation, bool) {
	f, ok := ds.formations[match.Formation]
	if !ok {
		return nil, false
	}
	return &f, true
}
