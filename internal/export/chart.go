package export

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/packman/loadplan/internal/engine"
	"github.com/packman/loadplan/internal/model"
)

// ExportChart writes an interactive HTML report: weight distribution
// over the A-D zones, axle loads against their limits, and the hold
// utilization percentages.
func ExportChart(path string, plan *model.Plan, s model.Settings) error {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Load plan %s", plan.TaskID)
	page.AddCharts(
		zoneWeightChart(plan, s),
		axleLoadChart(plan),
		utilizationChart(plan, s),
	)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func zoneWeightChart(plan *model.Plan, s model.Settings) *charts.Bar {
	weights := map[engine.Zone]float64{}
	counts := map[engine.Zone]int{}
	for _, p := range plan.Placed {
		zone := engine.ZoneFor(p.Z, plan.Vehicle, s.Zones)
		weights[zone] += p.Unit.Weight
		counts[zone]++
	}

	zones := []engine.Zone{engine.ZoneA, engine.ZoneB, engine.ZoneC, engine.ZoneD}
	labels := make([]string, 0, len(zones))
	weightData := make([]opts.BarData, 0, len(zones))
	countData := make([]opts.BarData, 0, len(zones))
	for _, z := range zones {
		labels = append(labels, string(z))
		weightData = append(weightData, opts.BarData{Value: weights[z]})
		countData = append(countData, opts.BarData{Value: counts[z]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Weight by zone",
			Subtitle: "Zones run head to tail",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kg"}),
	)
	bar.SetXAxis(labels).
		AddSeries("Weight (kg)", weightData).
		AddSeries("Units", countData)
	return bar
}

func axleLoadChart(plan *model.Plan) *charts.Bar {
	labels := []string{"Axle A", "Axle B", "Payload"}
	loadData := []opts.BarData{
		{Value: plan.Loads.AxleAKg},
		{Value: plan.Loads.AxleBKg},
		{Value: plan.Loads.PayloadKg},
	}

	limit := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	limitData := []opts.BarData{
		{Value: limit(plan.Vehicle.AxleALimitKg)},
		{Value: limit(plan.Vehicle.AxleBLimitKg)},
		{Value: limit(plan.Vehicle.PayloadMaxKg)},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Axle and payload loads",
			Subtitle: "Zero limit means the vehicle carries no limit for that gate",
		}),
		charts.WithYAxisOpts(opts.YAxis{Name: "kg"}),
	)
	bar.SetXAxis(labels).
		AddSeries("Load (kg)", loadData).
		AddSeries("Limit (kg)", limitData)
	return bar
}

func utilizationChart(plan *model.Plan, s model.Settings) *charts.Bar {
	util := plan.Utilization(s.FloorFill(plan.Vehicle))

	labels := []string{"Floor area", "Volume", "Floor demand"}
	data := []opts.BarData{
		{Value: util.FloorM2.Util * 100},
		{Value: util.VolumeM3.Util * 100},
		{Value: util.FloorDemand.Util * 100},
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Hold utilization"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%"}),
	)
	bar.SetXAxis(labels).AddSeries("Utilization (%)", data)
	return bar
}
