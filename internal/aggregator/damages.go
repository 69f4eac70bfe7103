package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-mc-reports/internal/model"
)

// resolveDamage resolves the damagee, the damager and the cause player.
func (c *catalog) resolveDamage(rd model.RawDamage, begin time.Time) (model.Damage, error) {
	damagee, err := c.resolve(rd.Damagee)
	if err != nil {
		return model.Damage{}, fmt.Errorf("damagee: %w", err)
	}
	damager, err := c.resolvePtr(rd.Damager)
	if err != nil {
		return model.Damage{}, fmt.Errorf("damager: %w", err)
	}
	cause := model.DamageCause{
		Type:   rd.Cause.Type,
		Entity: rd.Cause.Entity,
		Weapon: rd.Cause.Weapon,
	}
	if rd.Cause.Type == model.CausePlayer {
		if cause.Player, err = c.resolvePtr(rd.Cause.Player); err != nil {
			return model.Damage{}, fmt.Errorf("damage cause: %w", err)
		}
	}
	return model.Damage{
		Date:           rd.Date,
		SinceBeginning: model.Since(begin, rd.Date),
		Cause:          cause,
		Damager:        damager,
		Damagee:        damagee,
		Damage:         uint32(rd.Damage),
		Lethal:         rd.Lethal,
	}, nil
}

// normalizeDamages resolves raw damages and merges consecutive hits on the
// same damagee that share a cause. A lethal hit closes the run: the next hit
// on that damagee starts a new entry. The result is sorted by date.
func normalizeDamages(raw []model.RawDamage, c *catalog, begin time.Time) ([]model.Damage, error) {
	sorted := make([]model.RawDamage, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	out := make([]model.Damage, 0, len(sorted))
	pending := make(map[uuid.UUID]*model.Damage)
	var order []uuid.UUID // damagees in order of first pending entry

	for _, rd := range sorted {
		d, err := c.resolveDamage(rd, begin)
		if err != nil {
			return nil, err
		}
		id := d.Damagee.UUID

		if p, ok := pending[id]; ok {
			if !p.Lethal && p.Cause.Equal(d.Cause) {
				p.Damage += d.Damage
				p.Lethal = d.Lethal
				continue
			}
			out = append(out, *p)
		} else {
			order = append(order, id)
		}
		pending[id] = &d
	}

	for _, id := range order {
		out = append(out, *pending[id])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
