package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/pable/go-mc-reports/internal/model"
)

// StoredRaw is a raw report as it was submitted.
type StoredRaw struct {
	MatchUUID uuid.UUID
	Slug      string
	JSON      []byte
}

const summaryColumns = `match_uuid, slug, raw_hash, title, title_plain, match_date,
	minecraft_version, generator_name, generator_link, players_count, processed_at`

// ReportExists returns true if a report with the given raw hash is already stored.
func (db *DB) ReportExists(hash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM reports WHERE raw_hash = ?", hash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// InsertReport stores a processed report and its player rows in a
// transaction, replacing any previous version of the same match. A report
// keeps its slug across replacements; new reports get a fresh ULID.
func (db *DB) InsertReport(summary model.ReportSummary, players []model.ReportPlayerRow, rawJSON, processedJSON []byte) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	matchID := summary.MatchUUID.String()
	var slug string
	err = tx.QueryRow("SELECT slug FROM reports WHERE match_uuid = ?", matchID).Scan(&slug)
	switch {
	case err == sql.ErrNoRows:
		slug = ulid.Make().String()
	case err != nil:
		return "", fmt.Errorf("lookup slug: %w", err)
	}

	processedAt := summary.ProcessedAt
	if processedAt.IsZero() {
		processedAt = time.Now()
	}

	_, err = tx.Exec(`
		INSERT INTO reports(`+summaryColumns+`, raw_json, processed_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(match_uuid) DO UPDATE SET
			raw_hash = excluded.raw_hash,
			title = excluded.title,
			title_plain = excluded.title_plain,
			match_date = excluded.match_date,
			minecraft_version = excluded.minecraft_version,
			generator_name = excluded.generator_name,
			generator_link = excluded.generator_link,
			players_count = excluded.players_count,
			processed_at = excluded.processed_at,
			raw_json = excluded.raw_json,
			processed_json = excluded.processed_json`,
		matchID, slug, summary.RawHash, summary.Title, summary.TitlePlain,
		summary.MatchDate.UTC().Format(time.RFC3339), summary.MinecraftVersion,
		summary.GeneratorName, summary.GeneratorLink, summary.PlayersCount,
		processedAt.UTC().Format(time.RFC3339),
		string(rawJSON), string(processedJSON),
	)
	if err != nil {
		return "", fmt.Errorf("upsert report: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM report_players WHERE match_uuid = ?", matchID); err != nil {
		return "", fmt.Errorf("clear report players: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO report_players(
			match_uuid, player_uuid, name, team, color,
			rank, kills, deaths, damages_taken, damages_caused, heals,
			game_duration_ms, winner
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, p := range players {
		_, err = stmt.Exec(
			matchID, p.PlayerUUID.String(), p.Name, p.Team, string(p.Color),
			p.Rank, p.Kills, p.Deaths, p.DamagesTaken, p.DamagesCaused, p.Heals,
			p.GameDuration.Milliseconds(), boolInt(p.Winner),
		)
		if err != nil {
			return "", fmt.Errorf("insert report player %s: %w", p.PlayerUUID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return slug, nil
}

// ListReports returns all stored report summaries ordered by match_date desc.
func (db *DB) ListReports() ([]model.ReportSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + summaryColumns + ` FROM reports ORDER BY match_date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ReportSummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetReportByPrefix finds the first report whose slug or match UUID starts
// with the given prefix (case-insensitive).
func (db *DB) GetReportByPrefix(prefix string) (*model.ReportSummary, error) {
	row := db.conn.QueryRow(`SELECT `+summaryColumns+` FROM reports
		WHERE slug LIKE ? OR match_uuid LIKE ?
		ORDER BY match_date DESC LIMIT 1`, prefix+"%", prefix+"%")
	s, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetProcessedReport returns the processed JSON of a stored report.
func (db *DB) GetProcessedReport(matchUUID uuid.UUID) ([]byte, error) {
	var data string
	err := db.conn.QueryRow("SELECT processed_json FROM reports WHERE match_uuid = ?", matchUUID.String()).Scan(&data)
	if err != nil {
		return nil, err
	}
	return []byte(data), nil
}

// GetRawReports returns every stored raw report, oldest first.
func (db *DB) GetRawReports() ([]StoredRaw, error) {
	rows, err := db.conn.Query("SELECT match_uuid, slug, raw_json FROM reports ORDER BY match_date ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredRaw
	for rows.Next() {
		var id, slug, data string
		if err := rows.Scan(&id, &slug, &data); err != nil {
			return nil, err
		}
		u, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("stored match uuid %q: %w", id, err)
		}
		out = append(out, StoredRaw{MatchUUID: u, Slug: slug, JSON: []byte(data)})
	}
	return out, rows.Err()
}

// GetReportPlayers returns the player rows of a report ordered by rank.
func (db *DB) GetReportPlayers(matchUUID uuid.UUID) ([]model.ReportPlayerRow, error) {
	rows, err := db.conn.Query(`SELECT `+playerColumns+`
		FROM report_players WHERE match_uuid = ?`, matchUUID.String())
	if err != nil {
		return nil, err
	}
	out, err := scanPlayerRows(rows)
	if err != nil {
		return nil, err
	}
	model.SortPlayerRows(out)
	return out, nil
}

// GetPlayerHistory returns every row of the players whose UUID starts with
// the given prefix or whose name matches it exactly (case-insensitive),
// oldest report first.
func (db *DB) GetPlayerHistory(player string) ([]model.ReportPlayerRow, error) {
	rows, err := db.conn.Query(`
		SELECT `+prefixed("rp.", playerColumns)+`
		FROM report_players rp
		JOIN reports r ON r.match_uuid = rp.match_uuid
		WHERE rp.player_uuid LIKE ? OR LOWER(rp.name) = LOWER(?)
		ORDER BY r.match_date ASC`, strings.ToLower(player)+"%", player)
	if err != nil {
		return nil, err
	}
	return scanPlayerRows(rows)
}

const playerColumns = `match_uuid, player_uuid, name, team, color, rank, kills, deaths,
	damages_taken, damages_caused, heals, game_duration_ms, winner`

func prefixed(prefix, columns string) string {
	parts := strings.Split(columns, ",")
	for i, c := range parts {
		parts[i] = prefix + strings.TrimSpace(c)
	}
	return strings.Join(parts, ", ")
}

func scanPlayerRows(rows *sql.Rows) ([]model.ReportPlayerRow, error) {
	defer rows.Close()

	var out []model.ReportPlayerRow
	for rows.Next() {
		var (
			p                 model.ReportPlayerRow
			matchID, playerID string
			color             string
			durationMs        int64
			winner            int
		)
		if err := rows.Scan(&matchID, &playerID, &p.Name, &p.Team, &color, &p.Rank, &p.Kills, &p.Deaths,
			&p.DamagesTaken, &p.DamagesCaused, &p.Heals, &durationMs, &winner); err != nil {
			return nil, err
		}
		var err error
		if p.MatchUUID, err = uuid.Parse(matchID); err != nil {
			return nil, fmt.Errorf("stored match uuid %q: %w", matchID, err)
		}
		if p.PlayerUUID, err = uuid.Parse(playerID); err != nil {
			return nil, fmt.Errorf("stored player uuid %q: %w", playerID, err)
		}
		p.Color = model.TeamColor(color)
		p.GameDuration = time.Duration(durationMs) * time.Millisecond
		p.Winner = winner != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteReport removes a report and its player rows. It reports whether a
// report was deleted.
func (db *DB) DeleteReport(matchUUID uuid.UUID) (bool, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM report_players WHERE match_uuid = ?", matchUUID.String()); err != nil {
		return false, err
	}
	res, err := tx.Exec("DELETE FROM reports WHERE match_uuid = ?", matchUUID.String())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, tx.Commit()
}

// QueryRaw runs an arbitrary query and returns column names and rows as strings.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}
	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				row[i] = "NULL"
			case []byte:
				row[i] = string(x)
			default:
				row[i] = fmt.Sprint(x)
			}
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner) (model.ReportSummary, error) {
	var (
		s                       model.ReportSummary
		id, matchDate, procDate string
	)
	err := row.Scan(&id, &s.Slug, &s.RawHash, &s.Title, &s.TitlePlain, &matchDate,
		&s.MinecraftVersion, &s.GeneratorName, &s.GeneratorLink, &s.PlayersCount, &procDate)
	if err != nil {
		return s, err
	}
	if s.MatchUUID, err = uuid.Parse(id); err != nil {
		return s, fmt.Errorf("stored match uuid %q: %w", id, err)
	}
	if s.MatchDate, err = time.Parse(time.RFC3339, matchDate); err != nil {
		return s, fmt.Errorf("stored match date %q: %w", matchDate, err)
	}
	if s.ProcessedAt, err = time.Parse(time.RFC3339, procDate); err != nil {
		return s, fmt.Errorf("stored processed date %q: %w", procDate, err)
	}
	return s, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
