package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

const sampleRaw = `{
  "match_uuid": "11111111-1111-1111-1111-111111111111",
  "title": "§6UHC",
  "date": "2020-06-21T16:41:53+02:00",
  "minecraft": "1.15.2",
  "players": [{"uuid": "00000000-0000-0000-0000-00000000000a", "name": "Alice"}],
  "teams": [{"name": "Gold", "color": "gold", "players": ["00000000-0000-0000-0000-00000000000a"]}],
  "damages": [
    {"date": "2020-06-21T16:42:00+02:00", "cause": "FIRE_TICK", "damagee": "00000000-0000-0000-0000-00000000000a", "damage": 2},
    {"date": "2020-06-21T16:43:00+02:00", "cause": {"type": "player", "player": "00000000-0000-0000-0000-00000000000a", "weapon": {"id": "minecraft:bow"}}, "damagee": "00000000-0000-0000-0000-00000000000a", "damage": 4, "lethal": true},
    {"date": "2020-06-21T16:44:00+02:00", "cause": {"type": "ENTITY", "entity": "zombie"}, "damagee": "00000000-0000-0000-0000-00000000000a", "damage": 1}
  ],
  "heals": [{"date": "2020-06-21T16:45:00+02:00", "cause": "GOLDEN_APPLE", "healed": "00000000-0000-0000-0000-00000000000a", "heal": 4}],
  "events": [{"date": "2020-06-21T16:41:53+02:00", "title": "Start", "icon": {"type": "player", "uuid": "00000000-0000-0000-0000-00000000000a"}}]
}`

func TestDecodeRawReport(t *testing.T) {
	var r RawReport
	if err := json.Unmarshal([]byte(sampleRaw), &r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r.Teams[0].Color != ColorGold {
		t.Errorf("team color: want GOLD, got %s", r.Teams[0].Color)
	}
	if c := r.Damages[0].Cause; c.Type != CauseFire {
		t.Errorf("FIRE_TICK should become FIRE, got %s", c.Type)
	}
	c := r.Damages[1].Cause
	if c.Type != CausePlayer || c.Player == nil || c.Weapon == nil || c.Weapon.Count != 1 {
		t.Errorf("player cause: %+v", c)
	}
	if !r.Damages[1].Lethal || r.Damages[0].Lethal {
		t.Error("lethal flag should default to false")
	}
	if r.Damages[2].Cause.Entity != "zombie" {
		t.Errorf("entity cause: %+v", r.Damages[2].Cause)
	}
	if _, off := r.Date.Zone(); off != 2*3600 {
		t.Errorf("offset not kept: %d", off)
	}
	if r.Events[0].Icon.Player == nil {
		t.Error("player icon should carry a uuid")
	}
	if s := r.EffectiveSettings(); !s.Players.Enabled || s.Players.Used {
		t.Errorf("missing settings should use defaults, got %+v", s.Players)
	}
}

func TestDecodeCauseErrors(t *testing.T) {
	for _, in := range []string{
		`{"type": "player"}`,
		`{"type": "entity"}`,
	} {
		var c RawDamageCause
		if err := json.Unmarshal([]byte(in), &c); err == nil {
			t.Errorf("%s: expected error", in)
		}
	}

	var c RawDamageCause
	if err := json.Unmarshal([]byte(`"made_up"`), &c); err != nil || c.Type != CauseUnknown {
		t.Errorf("unknown tags fold into UNKNOWN, got %s (%v)", c.Type, err)
	}
}

func TestSettingsPartialOverride(t *testing.T) {
	var s Settings
	in := `{"players": {"used": true, "statistics_whitelist": ["jump"]}, "generator": {"name": "UHC Plugin"}}`
	if err := json.Unmarshal([]byte(in), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !s.Players.Used || !s.Players.Enabled || !s.Players.Mined {
		t.Errorf("absent booleans must keep defaults: %+v", s.Players)
	}
	if !s.Summary.Enabled || !s.Winners {
		t.Error("untouched sections must keep defaults")
	}
	if s.Generator == nil || s.Generator.Name != "UHC Plugin" {
		t.Errorf("generator: %+v", s.Generator)
	}

	if err := json.Unmarshal([]byte(`{"generator": {"link": "https://example.org"}}`), &s); err == nil {
		t.Error("generator without name should fail")
	}
}

func TestDurationJSON(t *testing.T) {
	d := Duration(90*time.Second + 5*time.Millisecond)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"secs":90,"nanos":5000000}` {
		t.Errorf("unexpected encoding %s", b)
	}
	var back Duration
	if err := json.Unmarshal(b, &back); err != nil || back != d {
		t.Errorf("decode: %v %v", back.Std(), err)
	}
	if Since(time.Unix(10, 0), time.Unix(5, 0)) != 0 {
		t.Error("negative elapsed time should clamp to zero")
	}
}

func TestDamageCauseEqual(t *testing.T) {
	p := SimplePlayer{UUID: uuid.New(), Name: "Alice", Color: ColorRed}
	q := p
	a := DamageCause{Type: CausePlayer, Player: &p, Weapon: &Item{ID: "bow", Count: 1}}
	b := DamageCause{Type: CausePlayer, Player: &q, Weapon: &Item{ID: "bow", Count: 1}}
	if !a.Equal(b) {
		t.Error("structurally equal causes should be equal")
	}
	b.Weapon = nil
	if a.Equal(b) {
		t.Error("weapon is part of the cause")
	}
	if (DamageCause{Type: CauseFall}).Equal(DamageCause{Type: CauseLava}) {
		t.Error("different tags should differ")
	}
}

func TestParseTeamColor(t *testing.T) {
	for in, want := range map[string]TeamColor{"dark-red": ColorDarkRed, "Light Purple": ColorLightPurple, "NONE": ColorNone} {
		got, err := ParseTeamColor(in)
		if err != nil || got != want {
			t.Errorf("%s: want %s, got %s (%v)", in, want, got, err)
		}
	}
	if _, err := ParseTeamColor("magenta"); err == nil || !strings.Contains(err.Error(), "magenta") {
		t.Errorf("expected unknown color error, got %v", err)
	}
}
