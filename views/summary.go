package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"spray-logger/utils"
)

// Adaptive colors for terminal output.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleSection = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(22)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleGood    = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarn    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// Summary is the presentation-neutral digest of one load.
type Summary struct {
	Source    string
	First     time.Time
	Last      time.Time
	Tolerance time.Duration
	Elapsed   time.Duration

	Lines, Blank, MalformedLines, Records, BadTimestamps int

	MissionRecords, MissionHeaders, MissionMalformed, MissionExcluded, MissionValid int
	SprayRecords, SprayHeaders, SprayMalformed, SprayDecoded                        int

	Located, Gaps int
}

// Coverage is the fraction of spray samples that received a location.
func (s Summary) Coverage() float64 {
	if s.SprayDecoded == 0 {
		return 0
	}
	return float64(s.Located) / float64(s.SprayDecoded)
}

// RenderSummary writes a styled multi-section summary to w.
func RenderSummary(w io.Writer, s Summary) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render("spraylog") + "  " + styleValue.Render(s.Source) + "\n")
	if !s.First.IsZero() {
		row(&b, "time span", fmt.Sprintf("%s → %s (%s)",
			utils.FormatTimestamp(s.First), utils.FormatTimestamp(s.Last), s.Last.Sub(s.First).Round(time.Second)))
	}
	row(&b, "load time", s.Elapsed.Round(time.Microsecond).String())

	b.WriteString("\n" + styleSection.Render("Lines") + "\n")
	row(&b, "total", itoa(s.Lines))
	row(&b, "records", itoa(s.Records))
	row(&b, "blank", itoa(s.Blank))
	row(&b, "malformed", warnIf(s.MalformedLines))
	row(&b, "bad timestamps", warnIf(s.BadTimestamps))

	b.WriteString("\n" + styleSection.Render("Mission") + "\n")
	row(&b, "records", itoa(s.MissionRecords))
	row(&b, "leading row dropped", itoa(s.MissionHeaders))
	row(&b, "malformed payload", warnIf(s.MissionMalformed))
	row(&b, "sentinel excluded", itoa(s.MissionExcluded))
	row(&b, "valid samples", styleGood.Render(itoa(s.MissionValid)))

	b.WriteString("\n" + styleSection.Render("Spray") + "\n")
	row(&b, "records", itoa(s.SprayRecords))
	row(&b, "leading row dropped", itoa(s.SprayHeaders))
	row(&b, "malformed payload", warnIf(s.SprayMalformed))
	row(&b, "samples", itoa(s.SprayDecoded))

	b.WriteString("\n" + styleSection.Render("Alignment") + "\n")
	row(&b, "tolerance", s.Tolerance.String())
	row(&b, "located", styleGood.Render(itoa(s.Located)))
	row(&b, "gaps", warnIf(s.Gaps))
	row(&b, "coverage", fmt.Sprintf("%.1f%%", s.Coverage()*100))

	_, err := io.WriteString(w, b.String())
	return err
}

func row(b *strings.Builder, label, value string) {
	b.WriteString("  " + styleLabel.Render(label) + styleValue.Render(value) + "\n")
}

func warnIf(n int) string {
	if n > 0 {
		return styleWarn.Render(itoa(n))
	}
	return itoa(n)
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }
