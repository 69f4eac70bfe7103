package aggregator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pable/go-mc-reports/internal/model"
)

// catalog holds the canonical player records of one report. It is built
// once and only read afterwards.
type catalog struct {
	players map[uuid.UUID]model.Player
	// withoutTeam counts players listed in no team.
	withoutTeam int
}

// newCatalog assigns every team member the team color and name. Players in
// no team get defaultColor. A player listed twice keeps its last record, and
// a player listed in several teams keeps the last team.
func newCatalog(players []model.RawPlayer, teams []model.RawTeam, defaultColor model.TeamColor) *catalog {
	type membership struct {
		team  string
		color model.TeamColor
	}
	members := make(map[uuid.UUID]membership)
	for _, t := range teams {
		for _, id := range t.Players {
			members[id] = membership{team: t.Name, color: teamColor(t)}
		}
	}

	c := &catalog{players: make(map[uuid.UUID]model.Player, len(players))}
	for _, rp := range players {
		p := model.Player{
			SimplePlayer: model.SimplePlayer{
				UUID:  rp.UUID,
				Name:  rp.Name,
				Color: defaultColor,
			},
			TagLine:          rp.TagLine,
			TagLineSecondary: rp.TagLineSecondary,
			TagLineDetails:   rp.TagLineDetails,
			Statistics:       rp.Statistics,
		}
		if m, ok := members[rp.UUID]; ok {
			p.Color = m.color
			p.Team = m.team
		}
		c.players[rp.UUID] = p
	}
	for id := range c.players {
		if _, ok := members[id]; !ok {
			c.withoutTeam++
		}
	}
	return c
}

func teamColor(t model.RawTeam) model.TeamColor {
	if t.Color == "" {
		return model.ColorNone
	}
	return t.Color
}

// resolve returns the projection of id, or a *MissingPlayerReferenceError.
func (c *catalog) resolve(id uuid.UUID) (model.SimplePlayer, error) {
	p, ok := c.players[id]
	if !ok {
		return model.SimplePlayer{}, &MissingPlayerReferenceError{UUID: id}
	}
	return p.SimplePlayer, nil
}

// resolvePtr resolves an optional reference; nil stays nil.
func (c *catalog) resolvePtr(id *uuid.UUID) (*model.SimplePlayer, error) {
	if id == nil {
		return nil, nil
	}
	sp, err := c.resolve(*id)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// sortedPlayers returns every catalog player ordered by name, then UUID.
func (c *catalog) sortedPlayers() []model.Player {
	out := make([]model.Player, 0, len(c.players))
	for _, p := range c.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return lessByName(out[i].SimplePlayer, out[j].SimplePlayer)
	})
	return out
}

// resolveTeams resolves every team member. Any dangling member fails.
func (c *catalog) resolveTeams(teams []model.RawTeam) ([]model.Team, error) {
	out := make([]model.Team, 0, len(teams))
	for _, t := range teams {
		team := model.Team{
			Name:    t.Name,
			Color:   teamColor(t),
			Players: make([]model.SimplePlayer, 0, len(t.Players)),
		}
		for _, id := range t.Players {
			sp, err := c.resolve(id)
			if err != nil {
				return nil, fmt.Errorf("team %q: %w", t.Name, err)
			}
			team.Players = append(team.Players, sp)
		}
		out = append(out, team)
	}
	return out, nil
}

func lessByName(a, b model.SimplePlayer) bool {
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.UUID.String() < b.UUID.String()
}
