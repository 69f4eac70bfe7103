package aggregator

import (
	"fmt"

	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/statistics"
)

// Option configures Process.
type Option func(*options)

type options struct {
	defaultColor model.TeamColor
}

// WithDefaultColor sets the color of players listed in no team.
func WithDefaultColor(c model.TeamColor) Option {
	return func(o *options) {
		if c != "" {
			o.defaultColor = c
		}
	}
}

// Process turns a raw report into a processed one. Any dangling player
// reference aborts processing with a *MissingPlayerReferenceError; no
// partial report is returned.
func Process(raw *model.RawReport, opts ...Option) (*model.Report, error) {
	if raw == nil {
		return nil, fmt.Errorf("nil raw report: %w", ErrUnknown)
	}
	o := options{defaultColor: model.ColorNone}
	for _, opt := range opts {
		opt(&o)
	}

	settings := raw.EffectiveSettings()
	begin := raw.Date

	// ---- Pass 1: player catalog and teams. ----

	c := newCatalog(raw.Players, raw.Teams, o.defaultColor)
	teams, err := c.resolveTeams(raw.Teams)
	if err != nil {
		return nil, fmt.Errorf("resolve teams: %w", err)
	}

	// ---- Pass 2: damages, heals and timeline. ----

	damages, err := normalizeDamages(raw.Damages, c, begin)
	if err != nil {
		return nil, fmt.Errorf("resolve damages: %w", err)
	}
	heals, err := normalizeHeals(raw.Heals, c, begin)
	if err != nil {
		return nil, fmt.Errorf("resolve heals: %w", err)
	}
	events := normalizeEvents(raw.Events, c, begin)

	// ---- Pass 3: winners and ranks. ----

	won, err := winners(raw.Winners, c, damages)
	if err != nil {
		return nil, err
	}
	rank := ranks(c, damages)

	// ---- Pass 4: statistics. ----

	players := c.sortedPlayers()
	rawStats := make([]*model.PlayerStatistics, 0, len(players))
	for i := range players {
		rawStats = append(rawStats, players[i].Statistics)
		players[i].DisplayedStatistics = statistics.DisplayPlayer(players[i].Statistics, settings.Players)
	}
	global := statistics.Global(rawStats)
	var displayedGlobal model.DisplayedPlayerStatistics
	if d := statistics.DisplayPlayer(&global, settings.Players); d != nil {
		displayedGlobal = *d
	}

	// ---- Pass 5: assembly. ----

	return &model.Report{
		MatchUUID: raw.MatchUUID,
		Title:     raw.Title,
		Date:      raw.Date,
		Minecraft: raw.Minecraft,
		Settings:  settings,
		Players:   players,
		Teams:     teams,
		Winners:   won,
		Damages:   damages,
		Heals:     heals,
		Events:    events,
		Aggregates: model.Aggregate{
			GlobalStatistics:          global,
			DisplayedGlobalStatistics: displayedGlobal,
			PlayersAlterations:        playerAlterations(c, damages, heals, rank),
			EnvironmentalDamages:      environmentalDamages(damages),
		},
		HasPlayersWithoutTeam: c.withoutTeam > 0,
	}, nil
}
