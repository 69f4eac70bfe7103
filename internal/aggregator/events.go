package aggregator

import (
	"sort"
	"time"

	"github.com/pable/go-mc-reports/internal/model"
)

// normalizeEvents stamps timeline events and resolves player icons. An icon
// naming an unknown player keeps its raw UUID and never fails the report.
func normalizeEvents(raw []model.RawEvent, c *catalog, begin time.Time) []model.Event {
	out := make([]model.Event, 0, len(raw))
	for _, re := range raw {
		icon := model.EventIcon{
			Type:   re.Icon.Type,
			IconID: re.Icon.IconID,
			URL:    re.Icon.URL,
		}
		if re.Icon.Type == model.IconPlayer && re.Icon.Player != nil {
			id := *re.Icon.Player
			icon.PlayerUUID = &id
			if p, ok := c.players[id]; ok {
				sp := p.SimplePlayer
				icon.Player = &sp
			}
		}
		typ := re.Type
		if typ == "" {
			typ = model.EventBlue
		}
		out = append(out, model.Event{
			Date:           re.Date,
			SinceBeginning: model.Since(begin, re.Date),
			Type:           typ,
			Title:          re.Title,
			Description:    re.Description,
			Icon:           icon,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
