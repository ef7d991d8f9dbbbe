package entries

import (
	"fmt"

	"github.com/julianstephens/growthdash/internal/cli"
	"github.com/julianstephens/growthdash/internal/progress"
	"github.com/julianstephens/growthdash/internal/tui"
)

type HeatmapCmd struct {
	Weeks int `default:"12" help:"Number of weeks to show."`
	Trend int `default:"8" help:"Number of weeks in the trend below the heatmap (0 hides it)."`
}

func (c *HeatmapCmd) Run(ctx *cli.Context) error {
	maxWeeks := progress.MaxRangeDays / progress.WeekDays
	if c.Weeks <= 0 || c.Weeks > maxWeeks {
		return fmt.Errorf("weeks must be between 1 and %d", maxWeeks)
	}
	if c.Trend < 0 || c.Trend > maxWeeks {
		return fmt.Errorf("trend weeks must be between 0 and %d", maxWeeks)
	}
	o, err := ctx.Journal.Overview(ctx.Ctx(), ctx.Now(), c.Weeks*7, c.Trend)
	if err != nil {
		return err
	}

	out := ctx.Out()
	fmt.Fprintf(out, "Check-in heatmap, %d weeks to %s\n\n", c.Weeks, o.Date)
	fmt.Fprintln(out, tui.RenderHeatmap(o.Heatmap))
	if len(o.Trend) > 0 {
		fmt.Fprintln(out, "\nWeekly completion:")
		fmt.Fprintln(out, tui.RenderTrend(o.Trend))
	}
	return nil
}
