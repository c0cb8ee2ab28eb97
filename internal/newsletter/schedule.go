package newsletter

import (
	"fmt"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

const (
	clock12       = "3:04 PM"
	clock12Padded = "03:04 PM"
)

// Central returns the America/Chicago location, degrading to UTC when
// tzdata is unavailable. All four lotteries broadcast from Central
// Time, so every schedule calculation anchors there.
func Central() *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		return time.UTC
	}
	return loc
}

// DrawTimes renders a draw time across the three continental zones,
// e.g. "7:38 PM PT / 9:38 PM CT / 10:38 PM ET". Pacific and Eastern
// shift for daylight saving on the same dates Central does, so fixed
// offsets from the Central slot are safe.
func DrawTimes(s model.DrawSchedule) string {
	ct := time.Date(2000, 1, 1, s.Hour, s.Minute, 0, 0, time.UTC)
	return fmt.Sprintf("%s PT / %s CT / %s ET",
		ct.Add(-2*time.Hour).Format(clock12),
		ct.Format(clock12),
		ct.Add(time.Hour).Format(clock12))
}

// TimesBar renders a wall-clock instant across the three zones for the
// newsletter header, e.g. "PT: 01:04 PM | CT: 03:04 PM | ET: 04:04 PM".
// The argument must already be in Central Time.
func TimesBar(nowCT time.Time) string {
	return fmt.Sprintf("PT: %s | CT: %s | ET: %s",
		nowCT.Add(-2*time.Hour).Format(clock12Padded),
		nowCT.Format(clock12Padded),
		nowCT.Add(time.Hour).Format(clock12Padded))
}

// Countdown describes the next scheduled draw relative to some moment.
type Countdown struct {
	At       time.Time
	Label    string
	DaysAway int
}

// Soon reports whether the draw happens today.
func (c Countdown) Soon() bool { return c.DaysAway == 0 }

// NextDraw computes the countdown shown on a lottery card. now must be
// in Central Time so day boundaries land where the audience expects.
func NextDraw(s model.DrawSchedule, now time.Time) Countdown {
	at := s.NextDrawAt(now)
	days := calendarDaysBetween(now, at)
	times := DrawTimes(s)

	var label string
	switch days {
	case 0:
		label = "TODAY at " + times
	case 1:
		label = "TOMORROW at " + times
	default:
		label = fmt.Sprintf("In %d days at %s", days, times)
	}

	return Countdown{At: at, Label: label, DaysAway: days}
}

// calendarDaysBetween counts midnight boundaries from one time to
// another in the same location.
func calendarDaysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(t.Sub(f).Hours() / 24)
}
