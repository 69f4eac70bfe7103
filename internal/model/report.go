package model

import (
	"time"

	"github.com/google/uuid"
)

// ---- Processed report ----

// SimplePlayer is the immutable projection of a player embedded wherever
// the processed report references one.
type SimplePlayer struct {
	UUID  uuid.UUID `json:"uuid"`
	Name  string    `json:"name"`
	Color TeamColor `json:"color"`
	Team  string    `json:"team,omitempty"`
}

type Player struct {
	SimplePlayer
	TagLine             string                     `json:"tag_line,omitempty"`
	TagLineSecondary    string                     `json:"tag_line_secondary,omitempty"`
	TagLineDetails      string                     `json:"tag_line_details,omitempty"`
	Statistics          *PlayerStatistics          `json:"statistics,omitempty"`
	DisplayedStatistics *DisplayedPlayerStatistics `json:"displayed_statistics,omitempty"`
}

type Team struct {
	Name    string         `json:"name"`
	Color   TeamColor      `json:"color"`
	Players []SimplePlayer `json:"players"`
}

type Damage struct {
	Date           time.Time     `json:"date"`
	SinceBeginning Duration      `json:"since_beginning"`
	Cause          DamageCause   `json:"cause"`
	Damager        *SimplePlayer `json:"damager,omitempty"`
	Damagee        SimplePlayer  `json:"damagee"`
	Damage         uint32        `json:"damage"`
	Lethal         bool          `json:"lethal"`
}

type Heal struct {
	Date           time.Time    `json:"date"`
	SinceBeginning Duration     `json:"since_beginning"`
	Cause          HealCause    `json:"cause"`
	Healed         SimplePlayer `json:"healed"`
	Heal           uint32       `json:"heal"`
}

type Event struct {
	Date           time.Time `json:"date"`
	SinceBeginning Duration  `json:"since_beginning"`
	Type           EventType `json:"type"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Icon           EventIcon `json:"icon"`
}

// EventIcon is the icon of a timeline event. A player icon always carries
// the raw UUID; Player is set only when that UUID is a known player.
type EventIcon struct {
	Type       IconType      `json:"type"`
	PlayerUUID *uuid.UUID    `json:"uuid,omitempty"`
	Player     *SimplePlayer `json:"player,omitempty"`
	IconID     string        `json:"icon_id,omitempty"`
	URL        string        `json:"url,omitempty"`
}

// KillerType tags a PlayerKiller.
type KillerType string

const (
	KilledByPlayer KillerType = "player"
	KilledByOther  KillerType = "other"
)

// PlayerKiller is what dealt a player's last lethal damage.
type PlayerKiller struct {
	Type   KillerType    `json:"type"`
	Player *SimplePlayer `json:"player,omitempty"`
	Cause  *DamageCause  `json:"cause,omitempty"`
}

// PlayerAlterationsAggregate summarizes what happened to one player.
type PlayerAlterationsAggregate struct {
	DamagesTaken       []Damage       `json:"damages_taken"`
	DamagesTakenTotal  uint32         `json:"damages_taken_total"`
	DamagesCaused      []Damage       `json:"damages_caused"`
	DamagesCausedTotal uint32         `json:"damages_caused_total"`
	Heals              []Heal         `json:"heals"`
	HealsTotal         uint32         `json:"heals_total"`
	Kills              []SimplePlayer `json:"kills"`
	KilledBy           *PlayerKiller  `json:"killed_by,omitempty"`
	GameDuration       Duration       `json:"game_duration"`
	Rank               int            `json:"rank"`
}

// EnvironmentalDamages sums non-player damages, by entity name and by cause tag.
type EnvironmentalDamages struct {
	Entities map[string]uint32 `json:"entities"`
	Causes   map[string]uint32 `json:"causes"`
}

type Aggregate struct {
	GlobalStatistics          PlayerStatistics                          `json:"global_statistics"`
	DisplayedGlobalStatistics DisplayedPlayerStatistics                 `json:"displayed_global_statistics"`
	PlayersAlterations        map[uuid.UUID]*PlayerAlterationsAggregate `json:"players_alterations"`
	EnvironmentalDamages      EnvironmentalDamages                      `json:"environmental_damages"`
}

type Report struct {
	MatchUUID             uuid.UUID      `json:"match_uuid"`
	Title                 string         `json:"title"`
	Date                  time.Time      `json:"date"`
	Minecraft             string         `json:"minecraft,omitempty"`
	Settings              Settings       `json:"settings"`
	Players               []Player       `json:"players"`
	Teams                 []Team         `json:"teams"`
	Winners               []SimplePlayer `json:"winners"`
	Damages               []Damage       `json:"damages"`
	Heals                 []Heal         `json:"heals"`
	Events                []Event        `json:"events"`
	Aggregates            Aggregate      `json:"aggregates"`
	HasPlayersWithoutTeam bool           `json:"has_players_without_team"`
}

// ---- Displayed statistics ----

// StatisticKind classifies a statistic for display.
type StatisticKind string

const (
	StatDuration StatisticKind = "DURATION"
	StatDistance StatisticKind = "DISTANCE"
	StatHearts   StatisticKind = "HEARTS"
	StatTimes    StatisticKind = "TIMES"
	StatNumber   StatisticKind = "NUMBER"
)

// StatisticValue is a (key, count) pair with a human-scaled value: seconds
// for durations, meters or kilometers for distances, hearts for damages.
type StatisticValue struct {
	Kind  StatisticKind `json:"type"`
	Key   string        `json:"key"`
	Count uint32        `json:"count"`
	Value float64       `json:"value"`
	Unit  string        `json:"unit,omitempty"`
}

type DisplayedStatistics struct {
	Visible []StatisticValue `json:"visible"`
	Hidden  []StatisticValue `json:"hidden"`
}

// DisplayedPlayerStatistics is nil per group when the group is disabled.
type DisplayedPlayerStatistics struct {
	Generic  *DisplayedStatistics `json:"generic,omitempty"`
	Used     *DisplayedStatistics `json:"used,omitempty"`
	Mined    *DisplayedStatistics `json:"mined,omitempty"`
	PickedUp *DisplayedStatistics `json:"picked_up,omitempty"`
}
