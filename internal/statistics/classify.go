package statistics

import (
	"strings"

	"github.com/pable/go-mc-reports/internal/model"
)

const (
	ticksPerSecond = 20.0
	cmPerMeter     = 100.0
	metersPerKm    = 1000.0
	// Damage statistics count tenths of a health point, two points per heart.
	pointsPerHeart = 20.0

	distanceSuffix = "_one_cm"
)

var durationKeys = map[string]struct{}{
	"play_time":        {},
	"play_one_minute":  {},
	"sneak_time":       {},
	"time_since_death": {},
	"time_since_rest":  {},
}

var heartsKeys = map[string]struct{}{
	"damage_dealt":             {},
	"damage_dealt_absorbed":    {},
	"damage_dealt_resisted":    {},
	"damage_taken":             {},
	"damage_blocked_by_shield": {},
	"damage_absorbed":          {},
	"damage_resisted":          {},
}

var timesKeys = map[string]struct{}{
	"open_chest":                      {},
	"open_enderchest":                 {},
	"open_shulker_box":                {},
	"open_barrel":                     {},
	"inspect_dispenser":               {},
	"inspect_dropper":                 {},
	"inspect_hopper":                  {},
	"trigger_trapped_chest":           {},
	"interact_with_anvil":             {},
	"interact_with_beacon":            {},
	"interact_with_blast_furnace":     {},
	"interact_with_brewingstand":      {},
	"interact_with_campfire":          {},
	"interact_with_cartography_table": {},
	"interact_with_crafting_table":    {},
	"interact_with_furnace":           {},
	"interact_with_grindstone":        {},
	"interact_with_lectern":           {},
	"interact_with_loom":              {},
	"interact_with_smithing_table":    {},
	"interact_with_smoker":            {},
	"interact_with_stonecutter":       {},
	"talked_to_villager":              {},
	"traded_with_villager":            {},
	"enchant_item":                    {},
	"fill_cauldron":                   {},
	"use_cauldron":                    {},
	"clean_armor":                     {},
	"clean_banner":                    {},
	"clean_shulker_box":               {},
	"play_noteblock":                  {},
	"tune_noteblock":                  {},
	"play_record":                     {},
	"pot_flower":                      {},
	"sleep_in_bed":                    {},
	"bell_ring":                       {},
	"eat_cake_slice":                  {},
}

// Classify turns a raw statistic into a typed, human-scaled value.
func Classify(key string, count uint32) model.StatisticValue {
	name := Normalize(key)
	v := model.StatisticValue{Key: key, Count: count, Value: float64(count)}

	switch {
	case has(durationKeys, name):
		v.Kind = model.StatDuration
		v.Value = float64(count) / ticksPerSecond
		v.Unit = "s"
	case strings.HasSuffix(name, distanceSuffix):
		v.Kind = model.StatDistance
		v.Value = float64(count) / cmPerMeter
		v.Unit = "m"
		if v.Value >= metersPerKm {
			v.Value /= metersPerKm
			v.Unit = "km"
		}
	case has(heartsKeys, name):
		v.Kind = model.StatHearts
		v.Value = float64(count) / pointsPerHeart
	case has(timesKeys, name):
		v.Kind = model.StatTimes
	default:
		v.Kind = model.StatNumber
	}
	return v
}

func has(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
