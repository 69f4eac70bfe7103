package model

import (
	"encoding/json"
	"errors"
)

// Settings controls what the rendered report shows. Absent booleans keep
// their defaults: everything on except the "used" statistics.
type Settings struct {
	Date         bool               `json:"date"`
	PlayersCount bool               `json:"players_count"`
	Winners      bool               `json:"winners"`
	Summary      SummarySettings    `json:"summary"`
	Damages      DamagesSettings    `json:"damages"`
	Players      PlayersSettings    `json:"players"`
	Generator    *GeneratorSettings `json:"generator,omitempty"`
}

type SummarySettings struct {
	Enabled bool `json:"enabled"`
	History bool `json:"history"`
	Players bool `json:"players"`
	Teams   bool `json:"teams"`
}

type DamagesSettings struct {
	Enabled           bool `json:"enabled"`
	DamagesPerPlayers bool `json:"damages_per_players"`
	DamagesPerTeam    bool `json:"damages_per_team"`
	DamagesFromMobs   bool `json:"damages_from_mobs"`
}

type PlayersSettings struct {
	Enabled  bool `json:"enabled"`
	PlayTime bool `json:"play_time"`

	StatisticsWhitelist []string `json:"statistics_whitelist"`
	StatisticsHighlight []string `json:"statistics_highlight"`

	Used          bool     `json:"used"`
	UsedWhitelist []string `json:"used_whitelist"`
	UsedHighlight []string `json:"used_highlight"`

	Mined          bool     `json:"mined"`
	MinedWhitelist []string `json:"mined_whitelist"`
	MinedHighlight []string `json:"mined_highlight"`

	PickedUp          bool     `json:"picked_up"`
	PickedUpWhitelist []string `json:"picked_up_whitelist"`
	PickedUpHighlight []string `json:"picked_up_highlight"`
}

// GeneratorSettings names the plugin that produced the report.
type GeneratorSettings struct {
	Name string `json:"name"`
	Link string `json:"link,omitempty"`
}

var errGeneratorName = errors.New("generator settings require a name")

func (g *GeneratorSettings) UnmarshalJSON(data []byte) error {
	type plain GeneratorSettings
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	if p.Name == "" {
		return errGeneratorName
	}
	*g = GeneratorSettings(p)
	return nil
}

// DefaultSettings is used when a report carries no settings at all.
func DefaultSettings() Settings {
	return Settings{
		Date:         true,
		PlayersCount: true,
		Winners:      true,
		Summary:      SummarySettings{Enabled: true, History: true, Players: true, Teams: true},
		Damages: DamagesSettings{
			Enabled:           true,
			DamagesPerPlayers: true,
			DamagesPerTeam:    true,
			DamagesFromMobs:   true,
		},
		Players: PlayersSettings{
			Enabled:  true,
			PlayTime: true,
			Used:     false,
			Mined:    true,
			PickedUp: true,
		},
	}
}

func (s *Settings) UnmarshalJSON(data []byte) error {
	type plain Settings
	p := plain(DefaultSettings())
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Settings(p)
	return nil
}
