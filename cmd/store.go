package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pable/go-mc-reports/internal/minecraft"
	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/storage"
)

// openStore opens the database, creating its directory on first use.
func openStore() (*storage.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// summarize builds the stored metadata row of a processed report.
func summarize(hash string, r *model.Report) model.ReportSummary {
	s := model.ReportSummary{
		MatchUUID:        r.MatchUUID,
		RawHash:          hash,
		Title:            r.Title,
		TitlePlain:       minecraft.StripColorCodes(r.Title),
		MatchDate:        r.Date,
		MinecraftVersion: r.Minecraft,
		PlayersCount:     len(r.Players),
		ProcessedAt:      time.Now(),
	}
	if g := r.Settings.Generator; g != nil {
		s.GeneratorName = g.Name
		s.GeneratorLink = g.Link
	}
	return s
}

// storeReport saves the raw JSON and the processed report with its player
// rows, returning the report slug.
func storeReport(db *storage.DB, hash string, rawJSON []byte, r *model.Report) (string, error) {
	processed, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("encode processed report: %w", err)
	}
	slug, err := db.InsertReport(summarize(hash, r), model.PlayerRows(r), rawJSON, processed)
	if err != nil {
		return "", fmt.Errorf("store report %s: %w", r.MatchUUID, err)
	}
	return slug, nil
}
