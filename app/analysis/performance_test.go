package analysis

import (
	"testing"

	"github.com/Givikap120/droidguard/app/beatmap/difficulty"
	"github.com/Givikap120/droidguard/app/replay/droid"
	"github.com/Givikap120/droidguard/app/rulesets/osu/performance/api"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPerformance(t *testing.T) {
	Convey("Given the attributes of a short map", t, func() {
		attribs := api.Attributes{Aim: 2, Tap: 2, TapNoteCount: 20, ObjectCount: 20, Circles: 20, MaxCombo: 20}
		diff := difficulty.NewDifficulty(5, 4, 8, 9)

		stats := droid.Statistics{Hit300: 18, Hit100: 2, MaxCombo: 20}

		Convey("combo end bonuses do not count as extra hits", func() {
			withBonus := stats
			withBonus.Hit300k, withBonus.Hit100k = 3, 1

			plain := performance(attribs, stats, diff, api.NoPenalties())

			So(plain, ShouldBeGreaterThan, 0)
			So(performance(attribs, withBonus, diff, api.NoPenalties()), ShouldEqual, plain)
		})

		Convey("missing statistics are rated as a full combo SS", func() {
			ss := performance(attribs, droid.Statistics{}, diff, api.NoPenalties())
			So(ss, ShouldBeGreaterThan, performance(attribs, stats, diff, api.NoPenalties()))
		})
	})
}
