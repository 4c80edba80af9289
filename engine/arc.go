package engine

import (
	"slices"
	"time"

	"github.com/nathoo/lifequest/engine/state"
	"github.com/nathoo/lifequest/types"
)

const (
	surgeArc   = "Transcendent Surge"
	surgeQuote = "Empowered by rebirth, your efforts are doubled!"
)

// CurrentArc returns the transcendence surge while the buff runs, otherwise
// the seasonal arc for the current month.
func (e *Engine) CurrentArc() types.ArcInfo {
	now := e.Now()
	if state.BuffActive(e.Player, now) {
		return types.ArcInfo{
			Name:    surgeArc,
			Quote:   surgeQuote,
			EndDate: e.Player.TranscendenceBuffEndTime.Format("03:04 PM"),
			Surge:   true,
		}
	}
	for _, arc := range e.Catalog.Arcs {
		if len(arc.Months) == 0 || !slices.Contains(arc.Months, now.Month()) {
			continue
		}
		return types.ArcInfo{Name: arc.Name, Quote: arc.Quote, EndDate: arcEnd(arc, now).Format("Jan 02, 2006")}
	}
	return types.ArcInfo{Name: "Unknown Arc", Quote: "The journey continues...", EndDate: "N/A"}
}

// arcEnd is the last day of the arc's final month. Arcs listed across the
// new year (December, January, February) end in the following year.
func arcEnd(arc types.ArcDef, now time.Time) time.Time {
	last := arc.Months[len(arc.Months)-1]
	year := now.Year()
	if last < now.Month() {
		year++
	}
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, last+1, 0, 0, 0, 0, 0, now.Location())
}
