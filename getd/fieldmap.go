package getd

import (
	"strings"

	"fundflow/model"
	"fundflow/util"
)

//canonical column identifiers of the concept flow table.
const (
	colName        = "name"
	colChangeRate  = "change_rate"
	colMainInflow  = "main_inflow"
	colSuperInflow = "super_large_inflow"
	colLargeInflow = "large_inflow"
	colMedInflow   = "medium_inflow"
	colSmallInflow = "small_inflow"
	colLeadStock   = "max_stock"
)

//fieldRule maps header keywords to a canonical column. Rules are
//evaluated in order and the first match wins, so the more specific
//keyword sets must precede the generic ones (最大股 before 主力净流入).
type fieldRule struct {
	field    string
	keywords []string
}

var conceptFieldRules = []fieldRule{
	{colLeadStock, []string{"主力净流入最大股", "最大股"}},
	{colSuperInflow, []string{"超大单净流入", "超大单流入"}},
	{colLargeInflow, []string{"大单净流入", "大单流入"}},
	{colMedInflow, []string{"中单净流入", "中单流入"}},
	{colSmallInflow, []string{"小单净流入", "小单流入"}},
	{colMainInflow, []string{"主力净流入", "主力流入"}},
	{colChangeRate, []string{"涨跌幅", "涨跌"}},
	{colName, []string{"名称", "板块", "概念"}},
}

//positional fallbacks used when a canonical column could not be matched
//by header name. Indices follow the provider's customary column layout.
var conceptColFallback = map[string]int{
	colName:        1,
	colChangeRate:  2,
	colSuperInflow: 4,
	colLargeInflow: 6,
	colLeadStock:   9,
}

//headerLabels are cell values that identify a mis-detected header row.
var headerLabels = map[string]bool{
	"名称": true, "板块": true, "概念": true, "name": true, "nan": true,
}

//matchColumn resolves a raw header text to a canonical column name.
func matchColumn(header string) (field string, ok bool) {
	h := strings.TrimSpace(header)
	if h == "" {
		return "", false
	}
	for _, r := range conceptFieldRules {
		for _, kw := range r.keywords {
			if strings.Contains(h, kw) {
				return r.field, true
			}
		}
	}
	return "", false
}

//mapColumns maps each header to its canonical column index. Unmatched
//headers are dropped from the mapping; their cells stay addressable by
//position. When two headers resolve to the same column the first wins.
func mapColumns(headers []string) map[string]int {
	m := make(map[string]int)
	for i, h := range headers {
		if f, ok := matchColumn(h); ok {
			if _, dup := m[f]; !dup {
				m[f] = i
			}
		}
	}
	return m
}

//cellAt fetches the cell for a canonical column, trying the mapped
//header first and falling back to the customary position.
func cellAt(cells []string, colIdx map[string]int, field string) string {
	if i, ok := colIdx[field]; ok && i < len(cells) {
		return cells[i]
	}
	if i, ok := conceptColFallback[field]; ok && i < len(cells) {
		return cells[i]
	}
	return ""
}

//conceptFromRow extracts one canonical record from a table row.
//Returns nil for header, filler and otherwise unusable rows.
func conceptFromRow(cells []string, colIdx map[string]int) *model.ConceptFlow {
	if len(cells) == 0 || strings.TrimSpace(cells[0]) == "" {
		return nil
	}
	name := strings.TrimSpace(cellAt(cells, colIdx, colName))
	if name == "" || headerLabels[name] {
		return nil
	}
	_, ts := util.TimeStr()
	return &model.ConceptFlow{
		Name:             name,
		ChangeRate:       util.Pct2F64(cellAt(cells, colIdx, colChangeRate)),
		MainInflow:       util.Amt2F64(cellAt(cells, colIdx, colMainInflow)),
		SuperLargeInflow: util.Amt2F64(cellAt(cells, colIdx, colSuperInflow)),
		LargeInflow:      util.Amt2F64(cellAt(cells, colIdx, colLargeInflow)),
		MediumInflow:     util.Amt2F64(cellAt(cells, colIdx, colMedInflow)),
		SmallInflow:      util.Amt2F64(cellAt(cells, colIdx, colSmallInflow)),
		LeadStock:        strings.TrimSpace(cellAt(cells, colIdx, colLeadStock)),
		Timestamp:        ts,
	}
}
