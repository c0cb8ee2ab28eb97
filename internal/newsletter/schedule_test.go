package newsletter

import (
	"testing"
	"time"

	"github.com/princessupload/audience-newsletter/internal/model"
)

var (
	dailySchedule = model.DrawSchedule{Text: "Daily", Hour: 21, Minute: 38}

	monWedSatSchedule = model.DrawSchedule{
		Text:     "Mon/Wed/Sat",
		Weekdays: []time.Weekday{time.Monday, time.Wednesday, time.Saturday},
		Hour:     22,
	}
)

func TestDrawTimes(t *testing.T) {
	tests := []struct {
		name     string
		schedule model.DrawSchedule
		want     string
	}{
		{
			name:     "lucky for life slot",
			schedule: model.DrawSchedule{Hour: 21, Minute: 38},
			want:     "7:38 PM PT / 9:38 PM CT / 10:38 PM ET",
		},
		{
			name:     "powerball slot",
			schedule: model.DrawSchedule{Hour: 21, Minute: 59},
			want:     "7:59 PM PT / 9:59 PM CT / 10:59 PM ET",
		},
		{
			name:     "top of the hour wraps past noon",
			schedule: model.DrawSchedule{Hour: 22},
			want:     "8:00 PM PT / 10:00 PM CT / 11:00 PM ET",
		},
		{
			name:     "afternoon slot crosses meridiem",
			schedule: model.DrawSchedule{Hour: 13},
			want:     "11:00 AM PT / 1:00 PM CT / 2:00 PM ET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DrawTimes(tt.schedule); got != tt.want {
				t.Errorf("DrawTimes() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextDraw(t *testing.T) {
	// June 2026: the 1st is a Monday, the 3rd a Wednesday.
	tests := []struct {
		name      string
		schedule  model.DrawSchedule
		now       time.Time
		wantLabel string
		wantDays  int
		wantAt    time.Time
	}{
		{
			name:      "daily before the slot",
			schedule:  dailySchedule,
			now:       time.Date(2026, 6, 3, 18, 0, 0, 0, time.UTC),
			wantLabel: "TODAY at 7:38 PM PT / 9:38 PM CT / 10:38 PM ET",
			wantDays:  0,
			wantAt:    time.Date(2026, 6, 3, 21, 38, 0, 0, time.UTC),
		},
		{
			name:      "daily exactly at the slot",
			schedule:  dailySchedule,
			now:       time.Date(2026, 6, 3, 21, 38, 0, 0, time.UTC),
			wantLabel: "TODAY at 7:38 PM PT / 9:38 PM CT / 10:38 PM ET",
			wantDays:  0,
			wantAt:    time.Date(2026, 6, 3, 21, 38, 0, 0, time.UTC),
		},
		{
			name:      "daily after the slot",
			schedule:  dailySchedule,
			now:       time.Date(2026, 6, 3, 22, 0, 0, 0, time.UTC),
			wantLabel: "TOMORROW at 7:38 PM PT / 9:38 PM CT / 10:38 PM ET",
			wantDays:  1,
			wantAt:    time.Date(2026, 6, 4, 21, 38, 0, 0, time.UTC),
		},
		{
			name:      "draw day before the slot",
			schedule:  monWedSatSchedule,
			now:       time.Date(2026, 6, 3, 12, 0, 0, 0, time.UTC),
			wantLabel: "TODAY at 8:00 PM PT / 10:00 PM CT / 11:00 PM ET",
			wantDays:  0,
			wantAt:    time.Date(2026, 6, 3, 22, 0, 0, 0, time.UTC),
		},
		{
			name:      "off day counts to the weekend",
			schedule:  monWedSatSchedule,
			now:       time.Date(2026, 6, 4, 9, 0, 0, 0, time.UTC),
			wantLabel: "In 2 days at 8:00 PM PT / 10:00 PM CT / 11:00 PM ET",
			wantDays:  2,
			wantAt:    time.Date(2026, 6, 6, 22, 0, 0, 0, time.UTC),
		},
		{
			name:      "saturday night rolls to monday",
			schedule:  monWedSatSchedule,
			now:       time.Date(2026, 6, 6, 23, 30, 0, 0, time.UTC),
			wantLabel: "In 2 days at 8:00 PM PT / 10:00 PM CT / 11:00 PM ET",
			wantDays:  2,
			wantAt:    time.Date(2026, 6, 8, 22, 0, 0, 0, time.UTC),
		},
		{
			name:      "sunday points at monday",
			schedule:  monWedSatSchedule,
			now:       time.Date(2026, 6, 7, 10, 0, 0, 0, time.UTC),
			wantLabel: "TOMORROW at 8:00 PM PT / 10:00 PM CT / 11:00 PM ET",
			wantDays:  1,
			wantAt:    time.Date(2026, 6, 8, 22, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDraw(tt.schedule, tt.now)
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
			if got.DaysAway != tt.wantDays {
				t.Errorf("DaysAway = %d, want %d", got.DaysAway, tt.wantDays)
			}
			if !got.At.Equal(tt.wantAt) {
				t.Errorf("At = %v, want %v", got.At, tt.wantAt)
			}
			if got.Soon() != (tt.wantDays == 0) {
				t.Errorf("Soon() = %v with %d days away", got.Soon(), tt.wantDays)
			}
		})
	}
}

func TestTimesBar(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "afternoon",
			now:  time.Date(2026, 6, 3, 15, 4, 0, 0, time.UTC),
			want: "PT: 01:04 PM | CT: 03:04 PM | ET: 04:04 PM",
		},
		{
			name: "around midnight",
			now:  time.Date(2026, 6, 3, 0, 30, 0, 0, time.UTC),
			want: "PT: 10:30 PM | CT: 12:30 AM | ET: 01:30 AM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimesBar(tt.now); got != tt.want {
				t.Errorf("TimesBar() = %q, want %q", got, tt.want)
			}
		})
	}
}
