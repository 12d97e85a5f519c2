package fastqStats

import (
	"strconv"

	"github.com/liserjrqlxue/goUtil/simpleUtil"
	"github.com/xuri/excelize/v2"
)

const summarySheet = "Summary"

func SetRow(xlsx *excelize.File, sheet string, col, row int, value []interface{}) {
	simpleUtil.CheckErr(
		xlsx.SetSheetRow(
			sheet,
			simpleUtil.HandleError(excelize.CoordinatesToCellName(col, row)),
			&value,
		),
	)
}

// SummaryXlsx saves a Summary sheet with one row per run plus a
// histogram sheet per run.
func SummaryXlsx(path string, title []string, runs []*RunStats) {
	var xlsx = excelize.NewFile()
	defer simpleUtil.DeferClose(xlsx)

	simpleUtil.CheckErr(xlsx.SetSheetName("Sheet1", summarySheet))
	var titleRow = make([]interface{}, len(title))
	for i, t := range title {
		titleRow[i] = t
	}
	SetRow(xlsx, summarySheet, 1, 1, titleRow)
	for i, s := range runs {
		SetRow(xlsx, summarySheet, 1, i+2, s.SummaryRow())
	}
	simpleUtil.CheckErr(xlsx.SetColWidth(summarySheet, "A", "A", 40))

	for i, s := range runs {
		var sheet = histogramSheet(i)
		simpleUtil.HandleError(xlsx.NewSheet(sheet))
		SetRow(xlsx, sheet, 1, 1, []interface{}{s.Name})
		SetRow(xlsx, sheet, 1, 2, []interface{}{"length", "weight"})
		for j, k := range sortedKeys(s.LengthHistogram) {
			SetRow(xlsx, sheet, 1, j+3, []interface{}{k, s.LengthHistogram[k]})
		}
		SetRow(xlsx, sheet, 4, 2, []interface{}{"quality", "weight"})
		for j, k := range sortedKeys(s.QualityHistogram) {
			SetRow(xlsx, sheet, 4, j+3, []interface{}{k, s.QualityHistogram[k]})
		}
	}

	simpleUtil.CheckErr(xlsx.SaveAs(path))
}

func histogramSheet(i int) string {
	return "Histogram" + strconv.Itoa(i+1)
}
