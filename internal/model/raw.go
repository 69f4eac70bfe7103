package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ---- Raw report as produced by the game server plugin ----

type RawReport struct {
	MatchUUID uuid.UUID   `json:"match_uuid"`
	Title     string      `json:"title"`
	Date      time.Time   `json:"date"`
	Minecraft string      `json:"minecraft,omitempty"`
	Settings  *Settings   `json:"settings,omitempty"`
	Players   []RawPlayer `json:"players"`
	Teams     []RawTeam   `json:"teams"`
	Winners   []uuid.UUID `json:"winners,omitempty"`
	Damages   []RawDamage `json:"damages"`
	Heals     []RawHeal   `json:"heals"`
	Events    []RawEvent  `json:"events"`
}

// EffectiveSettings returns the report settings, or the defaults when absent.
func (r *RawReport) EffectiveSettings() Settings {
	if r.Settings == nil {
		return DefaultSettings()
	}
	return *r.Settings
}

type RawPlayer struct {
	UUID             uuid.UUID         `json:"uuid"`
	Name             string            `json:"name"`
	TagLine          string            `json:"tag_line,omitempty"`
	TagLineSecondary string            `json:"tag_line_secondary,omitempty"`
	TagLineDetails   string            `json:"tag_line_details,omitempty"`
	Statistics       *PlayerStatistics `json:"statistics,omitempty"`
}

// PlayerStatistics holds the four Minecraft statistic groups, keyed by
// statistic name (with or without the "minecraft:" namespace).
type PlayerStatistics struct {
	Generic  map[string]uint32 `json:"generic,omitempty"`
	Used     map[string]uint32 `json:"used,omitempty"`
	Mined    map[string]uint32 `json:"mined,omitempty"`
	PickedUp map[string]uint32 `json:"picked_up,omitempty"`
}

type RawTeam struct {
	Name    string      `json:"name"`
	Color   TeamColor   `json:"color,omitempty"`
	Players []uuid.UUID `json:"players"`
}

type RawDamage struct {
	Date    time.Time      `json:"date"`
	Cause   RawDamageCause `json:"cause"`
	Damager *uuid.UUID     `json:"damager,omitempty"`
	Damagee uuid.UUID      `json:"damagee"`
	Damage  uint16         `json:"damage"`
	Lethal  bool           `json:"lethal,omitempty"`
}

type RawHeal struct {
	Date   time.Time `json:"date"`
	Cause  HealCause `json:"cause"`
	Healed uuid.UUID `json:"healed"`
	Heal   uint16    `json:"heal"`
}

type RawEvent struct {
	Date        time.Time    `json:"date"`
	Type        EventType    `json:"type,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Icon        RawEventIcon `json:"icon"`
}

// IconType tags an event icon.
type IconType string

const (
	IconPlayer IconType = "player"
	IconNamed  IconType = "icon"
	IconURL    IconType = "url"
)

type RawEventIcon struct {
	Type   IconType   `json:"type"`
	Player *uuid.UUID `json:"uuid,omitempty"`
	IconID string     `json:"icon_id,omitempty"`
	URL    string     `json:"url,omitempty"`
}

func (i *RawEventIcon) UnmarshalJSON(data []byte) error {
	type plain RawEventIcon
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	switch p.Type {
	case IconPlayer:
		if p.Player == nil {
			return fmt.Errorf("player icon without player")
		}
	case IconNamed, IconURL:
	default:
		return fmt.Errorf("unknown icon type %q", p.Type)
	}
	*i = RawEventIcon(p)
	return nil
}
