package aggregator

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/pable/go-mc-reports/internal/model"
)

// survivors returns the catalog players never hit by a lethal damage,
// ordered by name.
func survivors(c *catalog, damages []model.Damage) []model.SimplePlayer {
	dead := make(map[uuid.UUID]bool)
	for _, d := range damages {
		if d.Lethal {
			dead[d.Damagee.UUID] = true
		}
	}
	var out []model.SimplePlayer
	for _, p := range c.sortedPlayers() {
		if !dead[p.UUID] {
			out = append(out, p.SimplePlayer)
		}
	}
	return out
}

// winners resolves the explicit winners list when one is given, otherwise
// falls back to the survivors. Both are ordered by name.
func winners(explicit []uuid.UUID, c *catalog, damages []model.Damage) ([]model.SimplePlayer, error) {
	if len(explicit) == 0 {
		out := survivors(c, damages)
		if out == nil {
			out = []model.SimplePlayer{}
		}
		return out, nil
	}

	out := make([]model.SimplePlayer, 0, len(explicit))
	for _, id := range explicit {
		sp, err := c.resolve(id)
		if err != nil {
			return nil, fmt.Errorf("winners: %w", err)
		}
		out = append(out, sp)
	}
	sort.Slice(out, func(i, j int) bool { return lessByName(out[i], out[j]) })
	return out, nil
}

// ranks numbers survivors first, then the dead from the most recent death to
// the earliest. A player killed more than once keeps the rank of its
// earliest death. Players absent from both lists are not in the map.
func ranks(c *catalog, damages []model.Damage) map[uuid.UUID]int {
	var order []uuid.UUID
	for _, s := range survivors(c, damages) {
		order = append(order, s.UUID)
	}
	for i := len(damages) - 1; i >= 0; i-- {
		if damages[i].Lethal {
			order = append(order, damages[i].Damagee.UUID)
		}
	}

	out := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		out[id] = i + 1
	}
	return out
}
