package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// Overview is a high-level summary of the whole store.
type Overview struct {
	TotalReports  int
	EarliestMatch time.Time
	LatestMatch   time.Time
	UniquePlayers int
	TotalKills    int
	TotalTime     time.Duration
}

// GeneratorCount is the number of reports played on one generator.
type GeneratorCount struct {
	Name    string
	Reports int
}

// ActivePlayer is a player ranked by number of stored reports.
type ActivePlayer struct {
	PlayerUUID string
	Name       string
	Reports    int
	Wins       int
	Kills      int
	AvgRank    float64
}

// GetOverview returns totals across all stored reports. Dates are zero when
// the store is empty.
func (db *DB) GetOverview() (Overview, error) {
	var (
		ov                 Overview
		earliest, latest   sql.NullString
		kills, durationsMs sql.NullInt64
	)
	err := db.conn.QueryRow(`SELECT COUNT(1), MIN(match_date), MAX(match_date) FROM reports`).
		Scan(&ov.TotalReports, &earliest, &latest)
	if err != nil {
		return ov, err
	}
	err = db.conn.QueryRow(`
		SELECT COUNT(DISTINCT player_uuid), SUM(kills), SUM(game_duration_ms)
		FROM report_players`).Scan(&ov.UniquePlayers, &kills, &durationsMs)
	if err != nil {
		return ov, err
	}
	ov.TotalKills = int(kills.Int64)
	ov.TotalTime = time.Duration(durationsMs.Int64) * time.Millisecond

	if earliest.Valid {
		if ov.EarliestMatch, err = time.Parse(time.RFC3339, earliest.String); err != nil {
			return ov, fmt.Errorf("stored match date %q: %w", earliest.String, err)
		}
	}
	if latest.Valid {
		if ov.LatestMatch, err = time.Parse(time.RFC3339, latest.String); err != nil {
			return ov, fmt.Errorf("stored match date %q: %w", latest.String, err)
		}
	}
	return ov, nil
}

// GetGeneratorCounts returns how many reports each generator produced,
// most used first. Reports without a generator are grouped under "".
func (db *DB) GetGeneratorCounts() ([]GeneratorCount, error) {
	rows, err := db.conn.Query(`
		SELECT generator_name, COUNT(1) AS n FROM reports
		GROUP BY generator_name ORDER BY n DESC, generator_name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []GeneratorCount
	for rows.Next() {
		var g GeneratorCount
		if err := rows.Scan(&g.Name, &g.Reports); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// GetTopPlayersByReports returns the players who appear in the most reports.
// The most recent name of each player is returned.
func (db *DB) GetTopPlayersByReports(limit int) ([]ActivePlayer, error) {
	rows, err := db.conn.Query(`
		SELECT rp.player_uuid,
		       (SELECT rp2.name FROM report_players rp2
		          JOIN reports r2 ON r2.match_uuid = rp2.match_uuid
		         WHERE rp2.player_uuid = rp.player_uuid
		         ORDER BY r2.match_date DESC LIMIT 1),
		       COUNT(1) AS n,
		       SUM(rp.winner),
		       SUM(rp.kills),
		       COALESCE(AVG(NULLIF(rp.rank, 0)), 0)
		FROM report_players rp
		GROUP BY rp.player_uuid
		ORDER BY n DESC, SUM(rp.winner) DESC, rp.player_uuid ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActivePlayer
	for rows.Next() {
		var p ActivePlayer
		if err := rows.Scan(&p.PlayerUUID, &p.Name, &p.Reports, &p.Wins, &p.Kills, &p.AvgRank); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
