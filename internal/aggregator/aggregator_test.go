package aggregator

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pable/go-mc-reports/internal/model"
)

var matchStart = time.Date(2024, 6, 1, 20, 0, 0, 0, time.UTC)

// IDs for test players.
var (
	alice = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	bob   = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	carol = uuid.MustParse("00000000-0000-0000-0000-00000000000c")
	ghost = uuid.MustParse("00000000-0000-0000-0000-0000000000ff")
)

var names = map[uuid.UUID]string{alice: "Alice", bob: "Bob", carol: "Carol"}

func at(sec int) time.Time {
	return matchStart.Add(time.Duration(sec) * time.Second)
}

// makeRaw builds a report with Alice, Bob and Carol, Alice and Bob in team Red.
func makeRaw(damages []model.RawDamage) *model.RawReport {
	var players []model.RawPlayer
	for _, id := range []uuid.UUID{alice, bob, carol} {
		players = append(players, model.RawPlayer{UUID: id, Name: names[id]})
	}
	return &model.RawReport{
		MatchUUID: uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Title:     "§6UHC §r#1",
		Date:      matchStart,
		Players:   players,
		Teams: []model.RawTeam{
			{Name: "Red", Color: model.ColorRed, Players: []uuid.UUID{alice, bob}},
		},
		Damages: damages,
	}
}

func byPlayer(id uuid.UUID) model.RawDamageCause {
	p := id
	return model.RawDamageCause{Type: model.CausePlayer, Player: &p}
}

func byTag(t model.CauseType) model.RawDamageCause {
	return model.RawDamageCause{Type: t}
}

func hit(sec int, cause model.RawDamageCause, damagee uuid.UUID, amount uint16, lethal bool) model.RawDamage {
	return model.RawDamage{Date: at(sec), Cause: cause, Damagee: damagee, Damage: amount, Lethal: lethal}
}

func mustProcess(t *testing.T, raw *model.RawReport, opts ...Option) *model.Report {
	t.Helper()
	r, err := Process(raw, opts...)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	return r
}

// ---- Damage merge tests ----

func TestMergeConsecutiveSameCause(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, byPlayer(bob), alice, 3, false),
		hit(2, byPlayer(bob), alice, 4, false),
		hit(3, byPlayer(bob), alice, 5, false),
	}))

	if len(r.Damages) != 1 {
		t.Fatalf("expected 1 merged damage, got %d", len(r.Damages))
	}
	d := r.Damages[0]
	if d.Damage != 12 || d.Lethal {
		t.Errorf("expected damage=12 lethal=false, got damage=%d lethal=%v", d.Damage, d.Lethal)
	}
	if !d.Date.Equal(at(1)) {
		t.Errorf("merged damage should keep the first date, got %v", d.Date)
	}
}

func TestMergeStopsAtLethal(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, byPlayer(bob), alice, 3, false),
		hit(2, byPlayer(bob), alice, 4, true),
		hit(3, byPlayer(bob), alice, 5, false),
	}))

	if len(r.Damages) != 2 {
		t.Fatalf("expected 2 damages, got %d", len(r.Damages))
	}
	if r.Damages[0].Damage != 7 || !r.Damages[0].Lethal {
		t.Errorf("first: expected 7 lethal, got %d lethal=%v", r.Damages[0].Damage, r.Damages[0].Lethal)
	}
	if r.Damages[1].Damage != 5 || r.Damages[1].Lethal {
		t.Errorf("second: expected 5 non-lethal, got %d lethal=%v", r.Damages[1].Damage, r.Damages[1].Lethal)
	}
}

func TestMergeDifferentCauseFlushes(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, byTag(model.CauseFall), alice, 3, false),
		hit(2, byTag(model.CauseLava), alice, 4, false),
		hit(3, byTag(model.CauseFall), alice, 5, false),
	}))

	if len(r.Damages) != 3 {
		t.Fatalf("expected 3 damages, got %d", len(r.Damages))
	}
	want := []uint32{3, 4, 5}
	for i, d := range r.Damages {
		if d.Damage != want[i] {
			t.Errorf("damage %d: want %d, got %d", i, want[i], d.Damage)
		}
	}
}

func TestMergeIsKeyedByDamagee(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, byTag(model.CauseFire), alice, 1, false),
		hit(2, byTag(model.CauseFire), bob, 2, false),
		hit(3, byTag(model.CauseFire), alice, 3, false),
		hit(4, byTag(model.CauseFire), bob, 4, false),
	}))

	if len(r.Damages) != 2 {
		t.Fatalf("expected one merged damage per damagee, got %d", len(r.Damages))
	}
	totals := map[uuid.UUID]uint32{}
	for _, d := range r.Damages {
		totals[d.Damagee.UUID] += d.Damage
	}
	if totals[alice] != 4 || totals[bob] != 6 {
		t.Errorf("unexpected totals: alice=%d bob=%d", totals[alice], totals[bob])
	}
}

func TestMergeRequiresSameWeapon(t *testing.T) {
	sword := byPlayer(bob)
	sword.Weapon = &model.Item{ID: "minecraft:diamond_sword", Count: 1}
	bow := byPlayer(bob)
	bow.Weapon = &model.Item{ID: "minecraft:bow", Count: 1}

	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, sword, alice, 3, false),
		hit(2, bow, alice, 4, false),
	}))
	if len(r.Damages) != 2 {
		t.Fatalf("different weapons must not merge, got %d damages", len(r.Damages))
	}
}

func TestOutputsSortedByDate(t *testing.T) {
	raw := makeRaw([]model.RawDamage{
		hit(30, byTag(model.CauseFall), carol, 2, false),
		hit(10, byTag(model.CauseLava), alice, 2, false),
		hit(20, byTag(model.CauseVoid), bob, 2, false),
	})
	raw.Heals = []model.RawHeal{
		{Date: at(9), Cause: model.HealNatural, Healed: bob, Heal: 1},
		{Date: at(3), Cause: model.HealGoldenApple, Healed: alice, Heal: 4},
	}
	raw.Events = []model.RawEvent{
		{Date: at(50), Title: "end", Icon: model.RawEventIcon{Type: model.IconNamed, IconID: "clock"}},
		{Date: at(0), Title: "start", Icon: model.RawEventIcon{Type: model.IconNamed, IconID: "flag"}},
	}
	r := mustProcess(t, raw)

	for i := 1; i < len(r.Damages); i++ {
		if r.Damages[i].Date.Before(r.Damages[i-1].Date) {
			t.Errorf("damages not sorted at %d", i)
		}
	}
	if r.Heals[0].Healed.UUID != alice {
		t.Errorf("heals not sorted: first healed %s", r.Heals[0].Healed.Name)
	}
	if r.Events[0].Title != "start" || r.Events[0].Type != model.EventBlue {
		t.Errorf("unexpected first event %+v", r.Events[0])
	}
	if got := r.Events[1].SinceBeginning.Std(); got != 50*time.Second {
		t.Errorf("since_beginning: want 50s, got %v", got)
	}
}

// ---- Outcome tests ----

func TestRanksFollowReverseDeathOrder(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(10, byPlayer(carol), alice, 20, true),
		hit(20, byPlayer(carol), bob, 20, true),
	}))

	want := map[uuid.UUID]int{carol: 1, bob: 2, alice: 3}
	for id, rank := range want {
		if got := r.Aggregates.PlayersAlterations[id].Rank; got != rank {
			t.Errorf("%s: want rank %d, got %d", names[id], rank, got)
		}
	}
}

func TestWinnersDefaultToSurvivors(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(10, byPlayer(carol), alice, 20, true),
	}))

	if len(r.Winners) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(r.Winners))
	}
	if r.Winners[0].Name != "Bob" || r.Winners[1].Name != "Carol" {
		t.Errorf("winners not sorted by name: %v", r.Winners)
	}
}

func TestExplicitWinners(t *testing.T) {
	raw := makeRaw(nil)
	raw.Winners = []uuid.UUID{carol, alice}
	r := mustProcess(t, raw)

	if len(r.Winners) != 2 || r.Winners[0].Name != "Alice" || r.Winners[1].Name != "Carol" {
		t.Errorf("unexpected winners %v", r.Winners)
	}

	raw.Winners = []uuid.UUID{ghost}
	if _, err := Process(raw); ErrorCode(err) != CodeMissingPlayerReference {
		t.Errorf("dangling winner: want %s, got %v", CodeMissingPlayerReference, err)
	}
}

func TestGameDuration(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(10, byPlayer(carol), alice, 20, true),
		hit(40, byTag(model.CauseFall), bob, 2, false),
	}))

	alt := r.Aggregates.PlayersAlterations
	if got := alt[alice].GameDuration.Std(); got != 10*time.Second {
		t.Errorf("dead player: want 10s, got %v", got)
	}
	if got := alt[carol].GameDuration.Std(); got != 40*time.Second {
		t.Errorf("survivor: want time of last damage 40s, got %v", got)
	}

	empty := mustProcess(t, makeRaw(nil))
	if got := empty.Aggregates.PlayersAlterations[bob].GameDuration; got != 0 {
		t.Errorf("no damages: want 0, got %v", got.Std())
	}
}

func TestKillsAndKilledBy(t *testing.T) {
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(5, byPlayer(carol), alice, 6, false),
		hit(10, byPlayer(carol), alice, 14, true),
		hit(20, byTag(model.CauseLava), bob, 20, true),
	}))
	alt := r.Aggregates.PlayersAlterations

	if len(alt[carol].Kills) != 1 || alt[carol].Kills[0].UUID != alice {
		t.Errorf("carol kills: %v", alt[carol].Kills)
	}
	if alt[carol].DamagesCausedTotal != 20 {
		t.Errorf("carol damages caused: want 20, got %d", alt[carol].DamagesCausedTotal)
	}

	kb := alt[alice].KilledBy
	if kb == nil || kb.Type != model.KilledByPlayer || kb.Player.UUID != carol {
		t.Errorf("alice killed by: %+v", kb)
	}
	kb = alt[bob].KilledBy
	if kb == nil || kb.Type != model.KilledByOther || kb.Cause.Type != model.CauseLava {
		t.Errorf("bob killed by: %+v", kb)
	}
	if alt[carol].KilledBy != nil {
		t.Errorf("carol survived but has a killer")
	}
}

func TestEnvironmentalDamages(t *testing.T) {
	zombie := model.RawDamageCause{Type: model.CauseEntity, Entity: "zombie"}
	r := mustProcess(t, makeRaw([]model.RawDamage{
		hit(1, zombie, alice, 3, false),
		hit(2, byTag(model.CauseFall), alice, 4, false),
		hit(3, zombie, bob, 5, false),
		hit(4, byPlayer(carol), bob, 9, false),
	}))

	env := r.Aggregates.EnvironmentalDamages
	if env.Entities["zombie"] != 8 {
		t.Errorf("zombie: want 8, got %d", env.Entities["zombie"])
	}
	if env.Causes["FALL"] != 4 {
		t.Errorf("FALL: want 4, got %d", env.Causes["FALL"])
	}
	if len(env.Causes) != 1 || len(env.Entities) != 1 {
		t.Errorf("player damages leaked into environmental breakdown: %+v", env)
	}
}

// ---- Resolution tests ----

func TestMissingDamageeFailsWholeReport(t *testing.T) {
	r, err := Process(makeRaw([]model.RawDamage{
		hit(1, byTag(model.CauseFall), alice, 3, false),
		hit(2, byTag(model.CauseFall), ghost, 3, false),
	}))
	if r != nil {
		t.Error("expected no partial report")
	}
	var missing *MissingPlayerReferenceError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPlayerReferenceError, got %v", err)
	}
	if missing.UUID != ghost {
		t.Errorf("wrong uuid in error: %s", missing.UUID)
	}
}

func TestMissingReferencesEverywhere(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*model.RawReport)
	}{
		{"team member", func(r *model.RawReport) {
			r.Teams[0].Players = append(r.Teams[0].Players, ghost)
		}},
		{"damage cause player", func(r *model.RawReport) {
			r.Damages = []model.RawDamage{hit(1, byPlayer(ghost), alice, 1, false)}
		}},
		{"damager", func(r *model.RawReport) {
			d := hit(1, byTag(model.CauseProjectile), alice, 1, false)
			g := ghost
			d.Damager = &g
			r.Damages = []model.RawDamage{d}
		}},
		{"healed", func(r *model.RawReport) {
			r.Heals = []model.RawHeal{{Date: at(1), Cause: model.HealNatural, Healed: ghost, Heal: 1}}
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := makeRaw(nil)
			tc.mutate(raw)
			r, err := Process(raw)
			if r != nil || ErrorCode(err) != CodeMissingPlayerReference {
				t.Errorf("expected %s, got report=%v err=%v", CodeMissingPlayerReference, r != nil, err)
			}
		})
	}
}

func TestUnknownEventIconKeepsUUID(t *testing.T) {
	raw := makeRaw(nil)
	g, a := ghost, alice
	raw.Events = []model.RawEvent{
		{Date: at(2), Title: "Ghost joined", Icon: model.RawEventIcon{Type: model.IconPlayer, Player: &g}},
		{Date: at(1), Title: "Alice joined", Icon: model.RawEventIcon{Type: model.IconPlayer, Player: &a}},
	}
	r := mustProcess(t, raw)
	if len(r.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(r.Events))
	}
	known, dangling := r.Events[0].Icon, r.Events[1].Icon
	if known.Player == nil || known.Player.Name != "Alice" || *known.PlayerUUID != alice {
		t.Errorf("known icon should resolve to Alice, got %+v", known)
	}
	if dangling.Player != nil {
		t.Errorf("unknown icon should not resolve, got %+v", dangling.Player)
	}
	if dangling.PlayerUUID == nil || *dangling.PlayerUUID != ghost {
		t.Errorf("unknown icon should keep its uuid, got %v", dangling.PlayerUUID)
	}
}

func TestResolveTotality(t *testing.T) {
	raw := makeRaw(nil)
	c := newCatalog(raw.Players, raw.Teams, model.ColorNone)

	for _, id := range []uuid.UUID{alice, bob, carol} {
		if _, err := c.resolve(id); err != nil {
			t.Errorf("resolve %s: %v", names[id], err)
		}
	}
	_, err := c.resolve(ghost)
	var missing *MissingPlayerReferenceError
	if !errors.As(err, &missing) || missing.UUID != ghost {
		t.Errorf("resolve unknown id: got %v", err)
	}
}

func TestTeamColorsAndDefault(t *testing.T) {
	r := mustProcess(t, makeRaw(nil), WithDefaultColor(model.ColorBlack))

	for _, p := range r.Players {
		switch p.UUID {
		case alice, bob:
			if p.Color != model.ColorRed || p.Team != "Red" {
				t.Errorf("%s: want RED/Red, got %s/%s", p.Name, p.Color, p.Team)
			}
		case carol:
			if p.Color != model.ColorBlack || p.Team != "" {
				t.Errorf("carol: want BLACK and no team, got %s/%q", p.Color, p.Team)
			}
		}
	}
	if !r.HasPlayersWithoutTeam {
		t.Error("carol has no team; expected has_players_without_team")
	}
	if r.Players[0].Name != "Alice" || r.Players[2].Name != "Carol" {
		t.Errorf("players not sorted by name")
	}
}

func TestProjectionsMatchCatalog(t *testing.T) {
	raw := makeRaw([]model.RawDamage{
		hit(1, byPlayer(carol), alice, 3, false),
		hit(2, byPlayer(alice), bob, 3, true),
	})
	raw.Heals = []model.RawHeal{{Date: at(3), Cause: model.HealNatural, Healed: carol, Heal: 2}}
	r := mustProcess(t, raw)

	canon := map[uuid.UUID]model.SimplePlayer{}
	for _, p := range r.Players {
		canon[p.UUID] = p.SimplePlayer
	}
	check := func(where string, sp model.SimplePlayer) {
		t.Helper()
		if canon[sp.UUID] != sp {
			t.Errorf("%s: projection %+v differs from catalog %+v", where, sp, canon[sp.UUID])
		}
	}
	for _, team := range r.Teams {
		for _, sp := range team.Players {
			check("team", sp)
		}
	}
	for _, d := range r.Damages {
		check("damagee", d.Damagee)
		if d.Cause.Player != nil {
			check("cause", *d.Cause.Player)
		}
	}
	for _, h := range r.Heals {
		check("healed", h.Healed)
	}
	for _, w := range r.Winners {
		check("winner", w)
	}
}

func TestGlobalStatistics(t *testing.T) {
	raw := makeRaw(nil)
	raw.Players[0].Statistics = &model.PlayerStatistics{Generic: map[string]uint32{"jump": 3, "deaths": 0}}
	raw.Players[1].Statistics = &model.PlayerStatistics{Generic: map[string]uint32{"jump": 4}}
	r := mustProcess(t, raw)

	g := r.Aggregates.GlobalStatistics.Generic
	if g["jump"] != 7 {
		t.Errorf("jump: want 7, got %d", g["jump"])
	}
	if _, ok := g["deaths"]; ok {
		t.Error("zero totals must be dropped")
	}
	if r.Aggregates.DisplayedGlobalStatistics.Generic == nil {
		t.Error("generic statistics enabled by default")
	}
	if r.Aggregates.DisplayedGlobalStatistics.Used != nil {
		t.Error("used statistics disabled by default")
	}
	if r.Players[0].DisplayedStatistics == nil {
		t.Error("alice has statistics to display")
	}
}

func TestNilReport(t *testing.T) {
	_, err := Process(nil)
	if !errors.Is(err, ErrUnknown) || ErrorCode(err) != CodeUnknown {
		t.Errorf("want ErrUnknown, got %v", err)
	}
}
