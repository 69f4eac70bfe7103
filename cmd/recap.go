package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/minecraft"
	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/report"
)

const recapSystemPrompt = `You are the commentator of a Minecraft PvP event (UHC, survival games and
similar). You are given the processed report of one match as JSON and write a
short recap for the players.

Rules:
- Use ONLY the data provided. Never invent kills, deaths or times.
- Mention the winners first, then the key fights in time order.
- Health is in hearts: "damage" fields are half-hearts, divide by 2.
- Times are given as mm:ss since the start of the match.
- Keep it under 250 words, lively but factual.`

var (
	recapModel    string
	recapAPIKey   string
	recapQuestion string
	recapDryRun   bool
)

var recapCmd = &cobra.Command{
	Use:   "recap <slug-or-uuid-prefix>",
	Short: "Write an AI match recap from a stored report (requires ANTHROPIC_API_KEY)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecap,
}

func init() {
	recapCmd.Flags().StringVar(&recapModel, "model", "", "Anthropic model to use (default from config)")
	recapCmd.Flags().StringVar(&recapAPIKey, "api-key", "", "Anthropic API key (falls back to $ANTHROPIC_API_KEY)")
	recapCmd.Flags().StringVar(&recapQuestion, "ask", "", "ask a question about the match instead of a recap")
	recapCmd.Flags().BoolVar(&recapDryRun, "dry-run", false, "print the context sent to the model and exit")
}

func runRecap(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	_, rep, err := loadReport(db, args[0])
	if err != nil {
		return err
	}
	if rep == nil {
		return fmt.Errorf("no report found with prefix %q", args[0])
	}

	contextJSON, err := buildRecapContext(rep)
	if err != nil {
		return fmt.Errorf("build context: %w", err)
	}
	if recapDryRun {
		fmt.Fprintln(os.Stdout, contextJSON)
		return nil
	}

	modelID := cfg.AnthropicModel
	if recapModel != "" {
		modelID = recapModel
	}
	question := recapQuestion
	if question == "" {
		question = "Write the match recap."
	}
	return callAnthropic(cmd.Context(), os.Stdout, recapAPIKey, modelID, contextJSON, question)
}

type recapPlayer struct {
	Name          string `json:"name"`
	Team          string `json:"team,omitempty"`
	Rank          int    `json:"rank,omitempty"`
	Winner        bool   `json:"winner,omitempty"`
	Kills         int    `json:"kills"`
	KilledBy      string `json:"killed_by,omitempty"`
	DamagesTaken  uint32 `json:"damages_taken"`
	DamagesCaused uint32 `json:"damages_caused"`
	Heals         uint32 `json:"heals"`
	TimeAlive     string `json:"time_alive"`
}

type recapMoment struct {
	At   string `json:"at"`
	What string `json:"what"`
}

type recapContext struct {
	Title        string            `json:"title"`
	Date         string            `json:"date"`
	Generator    string            `json:"generator,omitempty"`
	Winners      []string          `json:"winners"`
	Players      []recapPlayer     `json:"players"`
	Deaths       []recapMoment     `json:"deaths"`
	Events       []recapMoment     `json:"events,omitempty"`
	Environment  map[string]uint32 `json:"environment_damages,omitempty"`
	PlayersCount int               `json:"players_count"`
}

// buildRecapContext keeps what a commentator needs and drops raw statistics
// and the full damage log.
func buildRecapContext(r *model.Report) (string, error) {
	c := recapContext{
		Title:        minecraft.StripColorCodes(r.Title),
		Date:         r.Date.Format("2006-01-02 15:04 MST"),
		PlayersCount: len(r.Players),
		Winners:      make([]string, 0, len(r.Winners)),
	}
	if g := r.Settings.Generator; g != nil {
		c.Generator = g.Name
	}
	for _, w := range r.Winners {
		c.Winners = append(c.Winners, w.Name)
	}

	for _, row := range model.PlayerRows(r) {
		p := recapPlayer{
			Name:          row.Name,
			Team:          row.Team,
			Rank:          row.Rank,
			Winner:        row.Winner,
			Kills:         row.Kills,
			DamagesTaken:  row.DamagesTaken,
			DamagesCaused: row.DamagesCaused,
			Heals:         row.Heals,
			TimeAlive:     report.FormatDuration(row.GameDuration),
		}
		if a := r.Aggregates.PlayersAlterations[row.PlayerUUID]; a != nil && a.KilledBy != nil {
			p.KilledBy = plainKiller(a.KilledBy)
		}
		c.Players = append(c.Players, p)
	}

	for _, d := range r.Damages {
		if !d.Lethal {
			continue
		}
		c.Deaths = append(c.Deaths, recapMoment{
			At:   report.FormatDuration(d.SinceBeginning.Std()),
			What: fmt.Sprintf("%s killed by %s", d.Damagee.Name, plainCause(d.Cause)),
		})
	}
	for _, e := range r.Events {
		what := minecraft.StripColorCodes(e.Title)
		if e.Description != "" {
			what += ": " + minecraft.StripColorCodes(e.Description)
		}
		c.Events = append(c.Events, recapMoment{At: report.FormatDuration(e.SinceBeginning.Std()), What: what})
	}

	env := r.Aggregates.EnvironmentalDamages
	if len(env.Entities)+len(env.Causes) > 0 {
		c.Environment = make(map[string]uint32, len(env.Entities)+len(env.Causes))
		for k, v := range env.Entities {
			c.Environment[strings.ToLower(k)] += v
		}
		for k, v := range env.Causes {
			c.Environment[strings.ToLower(k)] += v
		}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func plainKiller(k *model.PlayerKiller) string {
	if k.Player != nil {
		return k.Player.Name
	}
	if k.Cause != nil {
		return plainCause(*k.Cause)
	}
	return "unknown"
}

func plainCause(c model.DamageCause) string {
	switch {
	case c.IsPlayer():
		return c.Player.Name
	case c.Type == model.CauseEntity:
		return strings.ToLower(c.Entity)
	default:
		return strings.ToLower(string(c.Type))
	}
}

// callAnthropic streams a response from the Anthropic API to w.
func callAnthropic(ctx context.Context, w io.Writer, apiKey, modelID, dataJSON, question string) error {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("no API key: set ANTHROPIC_API_KEY or use --api-key")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	userMsg := fmt.Sprintf("MATCH:\n%s\n\nREQUEST: %s", dataJSON, question)

	fmt.Fprintln(w, "\n─── Match recap ─────────────────────────────────────")

	stream := client.Messages.NewStreaming(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(modelID),
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: recapSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userMsg)),
		},
	})

	for stream.Next() {
		evt := stream.Current()
		if evt.Type == "content_block_delta" {
			delta := evt.AsContentBlockDelta()
			if delta.Delta.Type == "text_delta" {
				fmt.Fprint(w, delta.Delta.AsTextDelta().Text)
			}
		}
	}
	fmt.Fprintln(w, "\n─────────────────────────────────────────────────────")

	if err := stream.Err(); err != nil {
		errStr := err.Error()
		if strings.Contains(errStr, "401") || strings.Contains(errStr, "authentication") {
			return fmt.Errorf("API authentication failed, check your API key")
		}
		return fmt.Errorf("streaming error: %w", err)
	}
	return nil
}
