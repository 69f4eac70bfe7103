// Package statistics sums Minecraft player statistics and shapes them for
// display.
package statistics

import (
	"strings"

	"github.com/pable/go-mc-reports/internal/model"
)

const namespace = "minecraft:"

// Normalize lowercases key and strips the "minecraft:" namespace.
func Normalize(key string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(key)), namespace)
}

// Aggregate sums counts across groups under their normalized key, so
// "minecraft:jump" and "jump" add up, and drops keys whose total is zero.
// The result is never nil.
func Aggregate(groups ...map[string]uint32) map[string]uint32 {
	out := make(map[string]uint32)
	for _, g := range groups {
		for k, v := range g {
			out[Normalize(k)] += v
		}
	}
	for k, v := range out {
		if v == 0 {
			delete(out, k)
		}
	}
	return out
}

// Global sums the statistics of every player, group by group. Players
// without statistics are skipped.
func Global(players []*model.PlayerStatistics) model.PlayerStatistics {
	var generic, used, mined, pickedUp []map[string]uint32
	for _, p := range players {
		if p == nil {
			continue
		}
		generic = append(generic, p.Generic)
		used = append(used, p.Used)
		mined = append(mined, p.Mined)
		pickedUp = append(pickedUp, p.PickedUp)
	}
	return model.PlayerStatistics{
		Generic:  Aggregate(generic...),
		Used:     Aggregate(used...),
		Mined:    Aggregate(mined...),
		PickedUp: Aggregate(pickedUp...),
	}
}
