package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TeamColor is the chat color a team (and its players) is rendered with.
type TeamColor string

const (
	ColorAqua        TeamColor = "AQUA"
	ColorBlack       TeamColor = "BLACK"
	ColorBlue        TeamColor = "BLUE"
	ColorDarkAqua    TeamColor = "DARK_AQUA"
	ColorDarkBlue    TeamColor = "DARK_BLUE"
	ColorDarkGray    TeamColor = "DARK_GRAY"
	ColorDarkGreen   TeamColor = "DARK_GREEN"
	ColorDarkPurple  TeamColor = "DARK_PURPLE"
	ColorDarkRed     TeamColor = "DARK_RED"
	ColorGold        TeamColor = "GOLD"
	ColorGray        TeamColor = "GRAY"
	ColorGreen       TeamColor = "GREEN"
	ColorLightPurple TeamColor = "LIGHT_PURPLE"
	ColorRed         TeamColor = "RED"
	ColorWhite       TeamColor = "WHITE"
	ColorYellow      TeamColor = "YELLOW"
	ColorNone        TeamColor = "NONE"
)

var teamColorHex = map[TeamColor]string{
	ColorAqua:        "#55FFFF",
	ColorBlack:       "#000000",
	ColorBlue:        "#5555FF",
	ColorDarkAqua:    "#00AAAA",
	ColorDarkBlue:    "#0000AA",
	ColorDarkGray:    "#555555",
	ColorDarkGreen:   "#00AA00",
	ColorDarkPurple:  "#AA00AA",
	ColorDarkRed:     "#AA0000",
	ColorGold:        "#FFAA00",
	ColorGray:        "#AAAAAA",
	ColorGreen:       "#55FF55",
	ColorLightPurple: "#FF55FF",
	ColorRed:         "#FF5555",
	ColorWhite:       "#FFFFFF",
	ColorYellow:      "#FFFF55",
	ColorNone:        "",
}

// ParseTeamColor accepts any casing and dash/space separators ("dark-red", "Dark Red").
func ParseTeamColor(s string) (TeamColor, error) {
	c := TeamColor(normalizeTag(s))
	if _, ok := teamColorHex[c]; !ok {
		return "", fmt.Errorf("unknown team color %q", s)
	}
	return c, nil
}

// Hex returns the CSS color of c, empty for NONE.
func (c TeamColor) Hex() string { return teamColorHex[c] }

func (c *TeamColor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTeamColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// EventType is the color class of a timeline event.
type EventType string

const (
	EventBlue  EventType = "BLUE"
	EventGold  EventType = "GOLD"
	EventGreen EventType = "GREEN"
	EventRed   EventType = "RED"
)

func (t *EventType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch v := EventType(normalizeTag(s)); v {
	case EventBlue, EventGold, EventGreen, EventRed:
		*t = v
	default:
		return fmt.Errorf("unknown event type %q", s)
	}
	return nil
}

// HealCause is what regenerated a player's health.
type HealCause string

const (
	HealNatural       HealCause = "NATURAL"
	HealGoldenApple   HealCause = "GOLDEN_APPLE"
	HealNotchApple    HealCause = "NOTCH_APPLE"
	HealHealingPotion HealCause = "HEALING_POTION"
	HealCommand       HealCause = "COMMAND"
	HealUnknown       HealCause = "UNKNOWN"
)

// Unknown heal causes are folded into HealUnknown.
func (h *HealCause) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch v := HealCause(normalizeTag(s)); v {
	case HealNatural, HealGoldenApple, HealNotchApple, HealHealingPotion, HealCommand:
		*h = v
	default:
		*h = HealUnknown
	}
	return nil
}

// normalizeTag turns "fire-tick", "Fire Tick" and "fire_tick" into "FIRE_TICK".
func normalizeTag(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return strings.ToUpper(s)
}
