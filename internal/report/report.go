package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-mc-reports/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintReportSummary prints a short header block for a processed report.
func PrintReportSummary(w io.Writer, r *model.Report, slug string) {
	fmt.Fprintf(w, "\n%s\n", cHeader.Sprint(RenderFormatted(r.Title)))
	fmt.Fprintf(w, "Date: %s  |  Players: %d  |  Teams: %d",
		r.Date.Local().Format("2006-01-02 15:04"), len(r.Players), len(r.Teams))
	if r.Minecraft != "" {
		fmt.Fprintf(w, "  |  Minecraft %s", r.Minecraft)
	}
	if g := r.Settings.Generator; g != nil {
		fmt.Fprintf(w, "  |  Generator: %s", g.Name)
	}
	fmt.Fprintln(w)
	if slug != "" {
		fmt.Fprintln(w, cMuted.Sprintf("Slug: %s  |  Match: %s", slug, r.MatchUUID))
	}

	names := make([]string, 0, len(r.Winners))
	for _, p := range r.Winners {
		names = append(names, PlayerName(p))
	}
	if len(names) == 0 {
		fmt.Fprintln(w, "Winners: none")
	} else {
		fmt.Fprintf(w, "Winners: %s\n", strings.Join(names, ", "))
	}
	if r.HasPlayersWithoutTeam {
		fmt.Fprintln(w, cMuted.Sprint("Some players played without a team."))
	}
	fmt.Fprintln(w)
}

// PrintPlayerTable prints one row per player ordered by rank.
func PrintPlayerTable(w io.Writer, r *model.Report) {
	table := newTable(w)
	table.Header("#", "PLAYER", "TEAM", "K", "KILLED BY", "DMG TAKEN", "DMG CAUSED", "HEALS", "ALIVE")

	for _, row := range model.PlayerRows(r) {
		rank := "-"
		if row.Rank > 0 {
			rank = strconv.Itoa(row.Rank)
		}
		name := PlayerName(model.SimplePlayer{Name: row.Name, Color: row.Color})
		if row.Winner {
			name += " ★"
		}
		killedBy := "-"
		if a := r.Aggregates.PlayersAlterations[row.PlayerUUID]; a != nil && a.KilledBy != nil {
			killedBy = formatKiller(a.KilledBy)
		}
		table.Append(
			rank,
			name,
			row.Team,
			strconv.Itoa(row.Kills),
			killedBy,
			FormatHearts(row.DamagesTaken),
			FormatHearts(row.DamagesCaused),
			FormatHearts(row.Heals),
			FormatDuration(row.GameDuration),
		)
	}
	table.Render()
}

func formatKiller(k *model.PlayerKiller) string {
	switch {
	case k.Type == model.KilledByPlayer && k.Player != nil:
		return PlayerName(*k.Player)
	case k.Cause != nil:
		return FormatCause(*k.Cause)
	default:
		return "?"
	}
}

// PrintEnvironmentalTable prints damages not dealt by players, by entity
// then by cause, largest first. Nothing is printed when there were none.
func PrintEnvironmentalTable(w io.Writer, env model.EnvironmentalDamages) {
	if len(env.Entities) == 0 && len(env.Causes) == 0 {
		return
	}
	table := newTable(w)
	table.Header("SOURCE", "KIND", "DAMAGE")
	for _, e := range sortedTotals(env.Entities) {
		table.Append(humanizeTag(e.key), "entity", FormatHearts(e.total))
	}
	for _, e := range sortedTotals(env.Causes) {
		table.Append(humanizeTag(e.key), "cause", FormatHearts(e.total))
	}
	table.Render()
}

type total struct {
	key   string
	total uint32
}

func sortedTotals(m map[string]uint32) []total {
	out := make([]total, 0, len(m))
	for k, v := range m {
		out = append(out, total{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].total != out[j].total {
			return out[i].total > out[j].total
		}
		return out[i].key < out[j].key
	})
	return out
}

// PrintStatisticsTable prints displayed statistics group by group. Hidden
// statistics are listed after the visible ones, dimmed.
func PrintStatisticsTable(w io.Writer, title string, stats *model.DisplayedPlayerStatistics) {
	if stats == nil {
		return
	}
	groups := []struct {
		name string
		d    *model.DisplayedStatistics
	}{
		{"generic", stats.Generic},
		{"used", stats.Used},
		{"mined", stats.Mined},
		{"picked up", stats.PickedUp},
	}

	table := newTable(w)
	table.Header("GROUP", "STATISTIC", "VALUE")
	rows := 0
	for _, g := range groups {
		if g.d == nil {
			continue
		}
		for _, v := range g.d.Visible {
			table.Append(g.name, humanizeTag(statKey(v.Key)), FormatStatistic(v))
			rows++
		}
		for _, v := range g.d.Hidden {
			table.Append(g.name, cMuted.Sprint(humanizeTag(statKey(v.Key))), cMuted.Sprint(FormatStatistic(v)))
			rows++
		}
	}
	if rows == 0 {
		return
	}
	fmt.Fprintln(w, cHeader.Sprint(title))
	table.Render()
}

func statKey(k string) string {
	return strings.TrimPrefix(strings.ToLower(k), "minecraft:")
}

// PrintTimeline prints damages, heals, and events merged in time order.
// Lethal damages are highlighted.
func PrintTimeline(w io.Writer, r *model.Report) {
	type entry struct {
		at   model.Duration
		kind string
		text string
	}
	var entries []entry
	for _, d := range r.Damages {
		text := fmt.Sprintf("%s took %s from %s", PlayerName(d.Damagee), FormatHearts(d.Damage), FormatCause(d.Cause))
		kind := "damage"
		if d.Lethal {
			text = cLethal.Sprintf("☠ %s was killed by %s", d.Damagee.Name, FormatCause(d.Cause))
			kind = "death"
		}
		entries = append(entries, entry{d.SinceBeginning, kind, text})
	}
	for _, h := range r.Heals {
		entries = append(entries, entry{h.SinceBeginning, "heal",
			fmt.Sprintf("%s healed %s (%s)", PlayerName(h.Healed), FormatHearts(h.Heal), humanizeTag(string(h.Cause)))})
	}
	for _, e := range r.Events {
		text := RenderFormatted(e.Title)
		if e.Description != "" {
			text += " " + cMuted.Sprint(RenderFormatted(e.Description))
		}
		entries = append(entries, entry{e.SinceBeginning, "event", text})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].at < entries[j].at })

	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
	table.Header("TIME", "KIND", "WHAT")
	for _, e := range entries {
		table.Append(FormatDuration(e.at.Std()), e.kind, e.text)
	}
	table.Render()
}

// PrintReportList prints stored report summaries, newest first.
func PrintReportList(w io.Writer, reports []model.ReportSummary) {
	table := newTable(w)
	table.Header("SLUG", "DATE", "TITLE", "GENERATOR", "MC", "PLAYERS", "PROCESSED")
	for _, s := range reports {
		slug := s.Slug
		if len(slug) > 10 {
			slug = slug[:10]
		}
		table.Append(
			slug,
			s.MatchDate.Local().Format("2006-01-02 15:04"),
			RenderFormatted(s.Title),
			s.GeneratorName,
			s.MinecraftVersion,
			strconv.Itoa(s.PlayersCount),
			humanize.Time(s.ProcessedAt),
		)
	}
	table.Render()
}

// PrintPlayerCareer prints cross-report totals for one or more players.
func PrintPlayerCareer(w io.Writer, careers []model.PlayerCareer) {
	table := newTable(w)
	table.Header("PLAYER", "GAMES", "WINS", "WIN%", "BEST", "AVG RANK", "K", "D", "K/D", "DMG CAUSED", "DMG TAKEN", "HEALS", "ALIVE")
	for _, c := range careers {
		best := "-"
		if c.BestRank > 0 {
			best = strconv.Itoa(c.BestRank)
		}
		table.Append(
			c.Name,
			strconv.Itoa(c.Reports),
			strconv.Itoa(c.Wins),
			fmt.Sprintf("%.0f%%", c.WinRate()),
			best,
			fmt.Sprintf("%.1f", c.AverageRank()),
			strconv.Itoa(c.Kills),
			strconv.Itoa(c.Deaths),
			fmt.Sprintf("%.2f", c.KDRatio()),
			FormatHearts(c.DamagesCaused),
			FormatHearts(c.DamagesTaken),
			FormatHearts(c.Heals),
			FormatDuration(c.TimeAlive),
		)
	}
	table.Render()
}

// PrintPlayerTrend prints one row per report for a player, oldest first.
func PrintPlayerTrend(w io.Writer, entries []model.PlayerTrendEntry) {
	table := newTable(w)
	table.Header("DATE", "REPORT", "NAME", "TEAM", "#", "K", "D", "DMG CAUSED", "DMG TAKEN", "ALIVE")
	for _, e := range entries {
		rank := "-"
		if e.Row.Rank > 0 {
			rank = strconv.Itoa(e.Row.Rank)
			if e.Row.Winner {
				rank += " ★"
			}
		}
		table.Append(
			e.Report.MatchDate.Local().Format("2006-01-02"),
			e.Report.TitlePlain,
			PlayerName(model.SimplePlayer{Name: e.Row.Name, Color: e.Row.Color}),
			e.Row.Team,
			rank,
			strconv.Itoa(e.Row.Kills),
			strconv.Itoa(e.Row.Deaths),
			FormatHearts(e.Row.DamagesCaused),
			FormatHearts(e.Row.DamagesTaken),
			FormatDuration(e.Row.GameDuration),
		)
	}
	table.Render()
}
