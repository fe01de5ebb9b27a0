package covidtrend

import (
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/andersy005/covidtrend/dataset"
	"github.com/andersy005/covidtrend/forecast"
)

const chartDateLayout = "2006-01-02"

// LineSummary generates an echart line chart of the confirmed and deaths
// columns of a date-grouped summary.
func LineSummary(title string, summary []dataset.SummaryRow) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	dates := make([]string, 0, len(summary))
	confirmedData := make([]opts.LineData, 0, len(summary))
	deathsData := make([]opts.LineData, 0, len(summary))
	for _, row := range summary {
		dates = append(dates, row.Date.Format(chartDateLayout))
		confirmedData = append(confirmedData, opts.LineData{Value: row.Confirmed})
		deathsData = append(deathsData, opts.LineData{Value: row.Deaths})
	}

	line.SetXAxis(dates).
		AddSeries("Confirmed", confirmedData).
		AddSeries("Deaths", deathsData)
	return line
}

// BarTopCountries generates an echart bar chart of a country ranking.
func BarTopCountries(title string, summary []dataset.SummaryRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	countries := make([]string, 0, len(summary))
	confirmedData := make([]opts.BarData, 0, len(summary))
	deathsData := make([]opts.BarData, 0, len(summary))
	for _, row := range summary {
		countries = append(countries, row.Country)
		confirmedData = append(confirmedData, opts.BarData{Value: row.Confirmed})
		deathsData = append(deathsData, opts.BarData{Value: row.Deaths})
	}

	bar.SetXAxis(countries).
		AddSeries("Confirmed", confirmedData).
		AddSeries("Deaths", deathsData)
	return bar
}

// ScatterConfirmedDeaths generates an echart scatter chart plotting deaths
// against confirmed cases, one point per country.
func ScatterConfirmedDeaths(title string, summary []dataset.SummaryRow) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "value",
				Name: "Confirmed",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Name: "Deaths",
			},
		),
	)

	data := make([]opts.ScatterData, 0, len(summary))
	for _, row := range summary {
		data = append(data, opts.ScatterData{
			Name:  row.Country,
			Value: []interface{}{row.Confirmed, row.Deaths},
		})
	}
	scatter.AddSeries("Countries", data)
	return scatter
}

// LineForecast generates an echart line chart for a forecast result plotting
// the observed values along with the predicted, upper, and lower series over
// the full historical plus horizon range.
func LineForecast(title string, actual []float64, res *forecast.Results) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
	)

	dates := make([]string, 0, len(res.T))
	lineDataActual := make([]opts.LineData, 0, len(res.T))
	lineDataForecast := make([]opts.LineData, 0, len(res.T))
	lineDataUpper := make([]opts.LineData, 0, len(res.T))
	lineDataLower := make([]opts.LineData, 0, len(res.T))

	for i := 0; i < len(res.T); i++ {
		dates = append(dates, res.T[i].Format(chartDateLayout))
		if i < len(actual) {
			lineDataActual = append(lineDataActual, opts.LineData{Value: actual[i]})
		} else {
			lineDataActual = append(lineDataActual, opts.LineData{Value: "-"})
		}
		lineDataForecast = append(lineDataForecast, opts.LineData{Value: res.Forecast[i]})
		lineDataUpper = append(lineDataUpper, opts.LineData{Value: res.Upper[i]})
		lineDataLower = append(lineDataLower, opts.LineData{Value: res.Lower[i]})
	}

	line.SetXAxis(dates).
		AddSeries("Actual", lineDataActual).
		AddSeries("Forecast", lineDataForecast).
		AddSeries("Upper", lineDataUpper).
		AddSeries("Lower", lineDataLower)
	return line
}

// RenderHTML writes every chart of the report to a single HTML page.
func (r *Report) RenderHTML(path string) error {
	confirmedActual := make([]float64, 0, len(r.CountryDaily))
	deathsActual := make([]float64, 0, len(r.CountryDaily))
	for _, row := range r.CountryDaily {
		confirmedActual = append(confirmedActual, float64(row.Confirmed))
		deathsActual = append(deathsActual, float64(row.Deaths))
	}

	page := components.NewPage()
	page.AddCharts(
		LineSummary("Global cumulative cases and deaths", r.GlobalDaily),
		LineSummary("Global daily change", r.GlobalDailyChange),
		BarTopCountries("Top countries by confirmed cases", r.TopCountries),
		ScatterConfirmedDeaths("Deaths vs confirmed by country", r.TopCountries),
		LineForecast(r.Country+" confirmed forecast", confirmedActual, r.ConfirmedForecast),
		LineForecast(r.Country+" deaths forecast", deathsActual, r.DeathsForecast),
	)

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return page.Render(io.MultiWriter(file))
}
