package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// CauseType is the tag of a damage cause.
type CauseType string

const (
	CausePlayer         CauseType = "PLAYER"
	CauseEntity         CauseType = "ENTITY"
	CauseBlockExplosion CauseType = "BLOCK_EXPLOSION"
	CauseContact        CauseType = "CONTACT"
	CauseCramming       CauseType = "CRAMMING"
	CauseDragonBreath   CauseType = "DRAGON_BREATH"
	CauseDrowning       CauseType = "DROWNING"
	CauseDryout         CauseType = "DRYOUT"
	CauseFall           CauseType = "FALL"
	CauseFallingBlock   CauseType = "FALLING_BLOCK"
	CauseFire           CauseType = "FIRE"
	CauseFlyIntoWall    CauseType = "FLY_INTO_WALL"
	CauseHotFloor       CauseType = "HOT_FLOOR"
	CauseLava           CauseType = "LAVA"
	CauseLightning      CauseType = "LIGHTNING"
	CauseMagic          CauseType = "MAGIC"
	CauseMelting        CauseType = "MELTING"
	CausePoison         CauseType = "POISON"
	CauseProjectile     CauseType = "PROJECTILE"
	CauseStarvation     CauseType = "STARVATION"
	CauseSuffocation    CauseType = "SUFFOCATION"
	CauseSuicide        CauseType = "SUICIDE"
	CauseThorns         CauseType = "THORNS"
	CauseVoid           CauseType = "VOID"
	CauseWither         CauseType = "WITHER"
	CauseCommand        CauseType = "COMMAND"
	CauseUnknown        CauseType = "UNKNOWN"
)

var knownCauses = map[CauseType]struct{}{
	CausePlayer: {}, CauseEntity: {}, CauseBlockExplosion: {}, CauseContact: {},
	CauseCramming: {}, CauseDragonBreath: {}, CauseDrowning: {}, CauseDryout: {},
	CauseFall: {}, CauseFallingBlock: {}, CauseFire: {}, CauseFlyIntoWall: {},
	CauseHotFloor: {}, CauseLava: {}, CauseLightning: {}, CauseMagic: {},
	CauseMelting: {}, CausePoison: {}, CauseProjectile: {}, CauseStarvation: {},
	CauseSuffocation: {}, CauseSuicide: {}, CauseThorns: {}, CauseVoid: {},
	CauseWither: {}, CauseCommand: {}, CauseUnknown: {},
}

// ParseCauseType normalizes a raw tag. FIRE_TICK is reported as FIRE and
// unrecognized tags become UNKNOWN.
func ParseCauseType(s string) CauseType {
	t := CauseType(normalizeTag(s))
	if t == "FIRE_TICK" {
		return CauseFire
	}
	if _, ok := knownCauses[t]; !ok {
		return CauseUnknown
	}
	return t
}

// RawDamageCause is a cause as sent by the game server: either a bare tag
// ("FALL") or an object carrying a player or entity payload.
type RawDamageCause struct {
	Type   CauseType  `json:"type"`
	Player *uuid.UUID `json:"player,omitempty"`
	Entity string     `json:"entity,omitempty"`
	Weapon *Item      `json:"weapon,omitempty"`
}

func (c *RawDamageCause) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return err
		}
		*c = RawDamageCause{Type: ParseCauseType(tag)}
		return nil
	}

	var obj struct {
		Type   string     `json:"type"`
		Player *uuid.UUID `json:"player"`
		Entity string     `json:"entity"`
		Weapon *Item      `json:"weapon"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	t := ParseCauseType(obj.Type)
	switch t {
	case CausePlayer:
		if obj.Player == nil {
			return fmt.Errorf("player damage cause without player")
		}
	case CauseEntity:
		if obj.Entity == "" {
			return fmt.Errorf("entity damage cause without entity")
		}
	}
	*c = RawDamageCause{Type: t, Player: obj.Player, Entity: obj.Entity, Weapon: obj.Weapon}
	return nil
}

// DamageCause is a resolved cause. Player is set only for CausePlayer and
// Entity only for CauseEntity.
type DamageCause struct {
	Type   CauseType     `json:"type"`
	Player *SimplePlayer `json:"player,omitempty"`
	Entity string        `json:"entity,omitempty"`
	Weapon *Item         `json:"weapon,omitempty"`
}

// Equal reports structural equality, used as the damage merge key.
func (c DamageCause) Equal(o DamageCause) bool {
	if c.Type != o.Type || c.Entity != o.Entity {
		return false
	}
	if (c.Player == nil) != (o.Player == nil) {
		return false
	}
	if c.Player != nil && *c.Player != *o.Player {
		return false
	}
	return reflect.DeepEqual(c.Weapon, o.Weapon)
}

// IsPlayer reports whether the cause carries a player.
func (c DamageCause) IsPlayer() bool { return c.Type == CausePlayer && c.Player != nil }

// Key is the bucket name used for environmental damage breakdowns.
func (c DamageCause) Key() string {
	if c.Type == CauseEntity {
		return c.Entity
	}
	return string(c.Type)
}
