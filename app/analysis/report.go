package analysis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

var reportHeader = []string{"Job", "Player", "Variant", "Objects", "Replay", "Slots", "3-finger", "Cheese aim", "Cheese FL", "2-hand", "PP", "Analysed"}

// RenderReports writes one table row per report. Failed jobs are listed with their error.
func RenderReports(w io.Writer, reports []Report) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(reportHeader)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, r := range reports {
		table.Append(reportRow(r))
	}

	table.Render()
}

func reportRow(r Report) []string {
	if r.Err != nil {
		row := make([]string, len(reportHeader))
		row[0] = r.Job
		row[1] = "error: " + r.Err.Error()

		return row
	}

	twoHand := "no"
	if r.TwoHanded {
		twoHand = "yes (" + humanize.Comma(int64(r.TwoHandedObjects)) + ")"
	}

	analysed := humanize.Time(r.AnalyzedAt)
	if r.Cached {
		analysed += " (cached)"
	} else {
		analysed = r.Duration.String()
	}

	return []string{
		r.Job,
		r.Player,
		r.Variant,
		humanize.Comma(int64(r.Objects)),
		humanize.Bytes(uint64(r.ReplaySize)),
		strconv.Itoa(r.Slots),
		formatPenalty(r.ThreeFingerPenalty),
		formatPenalty(r.SliderCheeseAim),
		formatPenalty(r.SliderCheeseFlashlight),
		twoHand,
		fmt.Sprintf("%s -> %s", humanize.FormatFloat("#,###.##", r.RawPP), humanize.FormatFloat("#,###.##", r.PenalisedPP)),
		analysed,
	}
}

func formatPenalty(v float64) string {
	if v == 1 {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', 3, 64)
}
