package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/pable/go-mc-reports/internal/minecraft"
	"github.com/pable/go-mc-reports/internal/model"
)

var teamAttrs = map[model.TeamColor]color.Attribute{
	model.ColorAqua:        color.FgHiCyan,
	model.ColorBlack:       color.FgBlack,
	model.ColorBlue:        color.FgHiBlue,
	model.ColorDarkAqua:    color.FgCyan,
	model.ColorDarkBlue:    color.FgBlue,
	model.ColorDarkGray:    color.FgHiBlack,
	model.ColorDarkGreen:   color.FgGreen,
	model.ColorDarkPurple:  color.FgMagenta,
	model.ColorDarkRed:     color.FgRed,
	model.ColorGold:        color.FgYellow,
	model.ColorGray:        color.FgWhite,
	model.ColorGreen:       color.FgHiGreen,
	model.ColorLightPurple: color.FgHiMagenta,
	model.ColorRed:         color.FgHiRed,
	model.ColorWhite:       color.FgHiWhite,
	model.ColorYellow:      color.FgHiYellow,
}

var (
	cHeader = color.New(color.FgCyan, color.Bold)
	cMuted  = color.New(color.Faint)
	cLethal = color.New(color.FgRed, color.Bold)
)

// Colorize renders text in the terminal color closest to c. NONE and
// unknown colors are left plain.
func Colorize(c model.TeamColor, text string) string {
	if a, ok := teamAttrs[c]; ok {
		return color.New(a).Sprint(text)
	}
	return text
}

// PlayerName renders a player name in its team color.
func PlayerName(p model.SimplePlayer) string {
	return Colorize(p.Color, p.Name)
}

// RenderFormatted converts Minecraft "§" codes into terminal colors.
func RenderFormatted(s string) string {
	var b strings.Builder
	for _, seg := range minecraft.Parse(s) {
		var attrs []color.Attribute
		if a, ok := teamAttrs[seg.Color]; ok {
			attrs = append(attrs, a)
		}
		if seg.Format.Bold {
			attrs = append(attrs, color.Bold)
		}
		if seg.Format.Italic {
			attrs = append(attrs, color.Italic)
		}
		if seg.Format.Underline {
			attrs = append(attrs, color.Underline)
		}
		if seg.Format.Strikethrough {
			attrs = append(attrs, color.CrossedOut)
		}
		if len(attrs) == 0 {
			b.WriteString(seg.Text)
			continue
		}
		b.WriteString(color.New(attrs...).Sprint(seg.Text))
	}
	return b.String()
}

// FormatDuration prints mm:ss, hh:mm:ss, or "Nd hh:mm:ss" for long games.
func FormatDuration(d time.Duration) string {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, seconds)
	case hours > 0:
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	default:
		return fmt.Sprintf("%02d:%02d", minutes, seconds)
	}
}

// FormatHearts prints half-heart damage points as hearts.
func FormatHearts(points uint32) string {
	if points%2 == 0 {
		return fmt.Sprintf("%d ♥", points/2)
	}
	return fmt.Sprintf("%.1f ♥", float64(points)/2)
}

// FormatStatistic prints a classified statistic with its unit.
func FormatStatistic(v model.StatisticValue) string {
	switch v.Kind {
	case model.StatDuration:
		return FormatDuration(time.Duration(v.Value * float64(time.Second)))
	case model.StatDistance:
		if v.Unit == "km" {
			return fmt.Sprintf("%.2f km", v.Value)
		}
		return fmt.Sprintf("%.0f m", v.Value)
	case model.StatHearts:
		return fmt.Sprintf("%.1f ♥", v.Value)
	case model.StatTimes:
		if v.Count == 1 {
			return "once"
		}
		return humanize.Comma(int64(v.Count)) + " times"
	default:
		return humanize.Comma(int64(v.Count))
	}
}

// FormatCause names a damage cause for humans.
func FormatCause(c model.DamageCause) string {
	var s string
	switch {
	case c.IsPlayer():
		s = PlayerName(*c.Player)
	case c.Type == model.CauseEntity:
		s = humanizeTag(c.Entity)
	default:
		s = humanizeTag(string(c.Type))
	}
	if c.Weapon != nil {
		s += " (" + weaponName(c.Weapon) + ")"
	}
	return s
}

func weaponName(i *model.Item) string {
	if i.Tag != nil && i.Tag.Display != nil && i.Tag.Display.Name != "" {
		return minecraft.StripColorCodes(i.Tag.Display.Name)
	}
	return humanizeTag(strings.TrimPrefix(i.ID, "minecraft:"))
}

// humanizeTag turns "FALLING_BLOCK" or "cave_spider" into "Falling block".
func humanizeTag(tag string) string {
	s := strings.ToLower(strings.ReplaceAll(tag, "_", " "))
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
