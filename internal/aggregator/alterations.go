package aggregator

import (
	"github.com/google/uuid"

	"github.com/pable/go-mc-reports/internal/model"
)

// playerAlterations builds the per-player aggregate of every catalog player.
// damages and heals must already be sorted by date.
func playerAlterations(c *catalog, damages []model.Damage, heals []model.Heal, rank map[uuid.UUID]int) map[uuid.UUID]*model.PlayerAlterationsAggregate {
	out := make(map[uuid.UUID]*model.PlayerAlterationsAggregate, len(c.players))
	for id := range c.players {
		out[id] = &model.PlayerAlterationsAggregate{
			DamagesTaken:  []model.Damage{},
			DamagesCaused: []model.Damage{},
			Heals:         []model.Heal{},
			Kills:         []model.SimplePlayer{},
			Rank:          rank[id],
		}
	}

	// ---- Pass 1: split damages by damagee and by causing player. ----

	var lastDamage *model.Damage
	lastLethal := make(map[uuid.UUID]model.Damage)
	for i := range damages {
		d := damages[i]
		lastDamage = &damages[i]

		if a, ok := out[d.Damagee.UUID]; ok {
			a.DamagesTaken = append(a.DamagesTaken, d)
			a.DamagesTakenTotal += d.Damage
		}
		if d.Lethal {
			lastLethal[d.Damagee.UUID] = d
		}
		if !d.Cause.IsPlayer() {
			continue
		}
		if a, ok := out[d.Cause.Player.UUID]; ok {
			a.DamagesCaused = append(a.DamagesCaused, d)
			a.DamagesCausedTotal += d.Damage
			if d.Lethal {
				a.Kills = append(a.Kills, d.Damagee)
			}
		}
	}

	// ---- Pass 2: heals. ----

	for _, h := range heals {
		if a, ok := out[h.Healed.UUID]; ok {
			a.Heals = append(a.Heals, h)
			a.HealsTotal += h.Heal
		}
	}

	// ---- Pass 3: killer and time alive. ----

	for id, a := range out {
		death, dead := lastLethal[id]
		switch {
		case dead:
			a.KilledBy = killerOf(death)
			a.GameDuration = death.SinceBeginning
		case lastDamage != nil:
			a.GameDuration = lastDamage.SinceBeginning
		}
	}
	return out
}

func killerOf(d model.Damage) *model.PlayerKiller {
	if d.Cause.IsPlayer() {
		p := *d.Cause.Player
		return &model.PlayerKiller{Type: model.KilledByPlayer, Player: &p}
	}
	cause := d.Cause
	return &model.PlayerKiller{Type: model.KilledByOther, Cause: &cause}
}

// environmentalDamages sums every damage not caused by a player, entities
// by entity name and everything else by cause tag.
func environmentalDamages(damages []model.Damage) model.EnvironmentalDamages {
	env := model.EnvironmentalDamages{
		Entities: make(map[string]uint32),
		Causes:   make(map[string]uint32),
	}
	for _, d := range damages {
		switch {
		case d.Cause.IsPlayer():
		case d.Cause.Type == model.CauseEntity:
			env.Entities[d.Cause.Key()] += d.Damage
		default:
			env.Causes[d.Cause.Key()] += d.Damage
		}
	}
	return env
}
