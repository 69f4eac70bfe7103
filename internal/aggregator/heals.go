package aggregator

import (
	"fmt"
	"sort"
	"time"

	"github.com/pable/go-mc-reports/internal/model"
)

func normalizeHeals(raw []model.RawHeal, c *catalog, begin time.Time) ([]model.Heal, error) {
	out := make([]model.Heal, 0, len(raw))
	for _, rh := range raw {
		healed, err := c.resolve(rh.Healed)
		if err != nil {
			return nil, fmt.Errorf("healed: %w", err)
		}
		cause := rh.Cause
		if cause == "" {
			cause = model.HealUnknown
		}
		out = append(out, model.Heal{
			Date:           rh.Date,
			SinceBeginning: model.Since(begin, rh.Date),
			Cause:          cause,
			Healed:         healed,
			Heal:           uint32(rh.Heal),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}
