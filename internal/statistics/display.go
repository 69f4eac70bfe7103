package statistics

import (
	"sort"

	"github.com/pable/go-mc-reports/internal/model"
)

var kindOrder = map[model.StatisticKind]int{
	model.StatDuration: 0,
	model.StatDistance: 1,
	model.StatHearts:   2,
	model.StatTimes:    3,
	model.StatNumber:   4,
}

// Display filters values by whitelist, splits them into visible and hidden
// by highlight, and sorts both. An empty whitelist keeps every key; an empty
// highlight makes every key visible. Zero counts are dropped.
func Display(values map[string]uint32, whitelist, highlight []string) *model.DisplayedStatistics {
	allowed := keySet(whitelist)
	highlighted := keySet(highlight)

	out := &model.DisplayedStatistics{
		Visible: []model.StatisticValue{},
		Hidden:  []model.StatisticValue{},
	}
	for key, count := range values {
		if count == 0 {
			continue
		}
		name := Normalize(key)
		if len(allowed) > 0 && !has(allowed, name) {
			continue
		}
		v := Classify(key, count)
		if len(highlighted) == 0 || has(highlighted, name) {
			out.Visible = append(out.Visible, v)
		} else {
			out.Hidden = append(out.Hidden, v)
		}
	}
	Sort(out.Visible)
	Sort(out.Hidden)
	return out
}

// Sort orders values by kind (duration, distance, hearts, times, number).
// Durations and hearts are sorted by key, the others by count descending.
func Sort(values []model.StatisticValue) {
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if a.Kind != b.Kind {
			return kindOrder[a.Kind] < kindOrder[b.Kind]
		}
		if a.Kind != model.StatDuration && a.Kind != model.StatHearts && a.Count != b.Count {
			return a.Count > b.Count
		}
		ka, kb := Normalize(a.Key), Normalize(b.Key)
		if ka != kb {
			return ka < kb
		}
		return a.Key < b.Key
	})
}

// DisplayPlayer shapes every group enabled by the players settings. It
// returns nil when the players section is disabled or stats is nil.
func DisplayPlayer(stats *model.PlayerStatistics, s model.PlayersSettings) *model.DisplayedPlayerStatistics {
	if stats == nil || !s.Enabled {
		return nil
	}
	out := &model.DisplayedPlayerStatistics{
		Generic: Display(stats.Generic, s.StatisticsWhitelist, s.StatisticsHighlight),
	}
	if s.Used {
		out.Used = Display(stats.Used, s.UsedWhitelist, s.UsedHighlight)
	}
	if s.Mined {
		out.Mined = Display(stats.Mined, s.MinedWhitelist, s.MinedHighlight)
	}
	if s.PickedUp {
		out.PickedUp = Display(stats.PickedUp, s.PickedUpWhitelist, s.PickedUpHighlight)
	}
	return out
}

func keySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[Normalize(k)] = struct{}{}
	}
	return set
}
