package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// ---- Stored rows ----

// ReportSummary is the metadata row stored for each processed report.
type ReportSummary struct {
	MatchUUID        uuid.UUID
	Slug             string
	RawHash          string
	Title            string // with Minecraft formatting codes
	TitlePlain       string
	MatchDate        time.Time
	MinecraftVersion string
	GeneratorName    string
	GeneratorLink    string
	PlayersCount     int
	ProcessedAt      time.Time
}

// ReportPlayerRow is the per-player row stored alongside a report.
type ReportPlayerRow struct {
	MatchUUID     uuid.UUID
	PlayerUUID    uuid.UUID
	Name          string
	Team          string
	Color         TeamColor
	Rank          int
	Kills         int
	Deaths        int
	DamagesTaken  uint32
	DamagesCaused uint32
	Heals         uint32
	GameDuration  time.Duration
	Winner        bool
}

// PlayerRows flattens a processed report into one row per player, ordered
// by rank with unranked players last.
func PlayerRows(r *Report) []ReportPlayerRow {
	winners := make(map[uuid.UUID]bool, len(r.Winners))
	for _, w := range r.Winners {
		winners[w.UUID] = true
	}

	rows := make([]ReportPlayerRow, 0, len(r.Players))
	for _, p := range r.Players {
		row := ReportPlayerRow{
			MatchUUID:  r.MatchUUID,
			PlayerUUID: p.UUID,
			Name:       p.Name,
			Team:       p.Team,
			Color:      p.Color,
			Winner:     winners[p.UUID],
		}
		if a, ok := r.Aggregates.PlayersAlterations[p.UUID]; ok {
			row.Rank = a.Rank
			row.Kills = len(a.Kills)
			if a.KilledBy != nil {
				row.Deaths = 1
			}
			row.DamagesTaken = a.DamagesTakenTotal
			row.DamagesCaused = a.DamagesCausedTotal
			row.Heals = a.HealsTotal
			row.GameDuration = a.GameDuration.Std()
		}
		rows = append(rows, row)
	}
	SortPlayerRows(rows)
	return rows
}

// SortPlayerRows orders rows by rank, rank 0 last, then by name.
func SortPlayerRows(rows []ReportPlayerRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].Rank, rows[j].Rank
		if (ri == 0) != (rj == 0) {
			return rj == 0
		}
		if ri != rj {
			return ri < rj
		}
		return rows[i].Name < rows[j].Name
	})
}

// PlayerCareer sums a player's rows across stored reports.
type PlayerCareer struct {
	PlayerUUID    uuid.UUID
	Name          string
	Reports       int
	Wins          int
	BestRank      int
	rankSum       int
	rankedReports int
	Kills         int
	Deaths        int
	DamagesTaken  uint32
	DamagesCaused uint32
	Heals         uint32
	TimeAlive     time.Duration
}

// Add folds one report row into the career. The most recent name wins
// when rows are added oldest first.
func (c *PlayerCareer) Add(row ReportPlayerRow) {
	c.PlayerUUID = row.PlayerUUID
	c.Name = row.Name
	c.Reports++
	if row.Winner {
		c.Wins++
	}
	if row.Rank > 0 {
		if c.BestRank == 0 || row.Rank < c.BestRank {
			c.BestRank = row.Rank
		}
		c.rankSum += row.Rank
		c.rankedReports++
	}
	c.Kills += row.Kills
	c.Deaths += row.Deaths
	c.DamagesTaken += row.DamagesTaken
	c.DamagesCaused += row.DamagesCaused
	c.Heals += row.Heals
	c.TimeAlive += row.GameDuration
}

// WinRate is the percentage of reports won.
func (c PlayerCareer) WinRate() float64 {
	if c.Reports == 0 {
		return 0
	}
	return float64(c.Wins) / float64(c.Reports) * 100
}

// AverageRank ignores reports where the player was not ranked.
func (c PlayerCareer) AverageRank() float64 {
	if c.rankedReports == 0 {
		return 0
	}
	return float64(c.rankSum) / float64(c.rankedReports)
}

// KDRatio returns kills per death, or raw kills when the player never died.
func (c PlayerCareer) KDRatio() float64 {
	if c.Deaths == 0 {
		return float64(c.Kills)
	}
	return float64(c.Kills) / float64(c.Deaths)
}

// PlayerTrendEntry is one report in a player's history.
type PlayerTrendEntry struct {
	Report ReportSummary
	Row    ReportPlayerRow
}
