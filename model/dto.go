package model

import (
	"encoding/json"
	"fmt"
)

//Risk tiers for a consecutive limit-up stock, ordered from worst to best.
const (
	RiskHigh       = "high"
	RiskMediumHigh = "medium-high"
	RiskMedium     = "medium"
	RiskLow        = "low"
)

//ConceptFlow is one concept sector fund-flow snapshot in canonical form.
//All monetary fields are denominated in 亿; ratios are percentages.
type ConceptFlow struct {
	Code                  string  `json:"code"`
	Name                  string  `json:"name"`
	Price                 float64 `json:"current_price"`
	ChangeRate            float64 `json:"change_rate"`
	MainInflow            float64 `json:"main_inflow"`
	MainInflowRatio       float64 `json:"main_inflow_ratio"`
	SuperLargeInflow      float64 `json:"super_large_inflow"`
	SuperLargeInflowRatio float64 `json:"super_large_inflow_ratio"`
	LargeInflow           float64 `json:"large_inflow"`
	LargeInflowRatio      float64 `json:"large_inflow_ratio"`
	MediumInflow          float64 `json:"medium_inflow"`
	MediumInflowRatio     float64 `json:"medium_inflow_ratio"`
	SmallInflow           float64 `json:"small_inflow"`
	SmallInflowRatio      float64 `json:"small_inflow_ratio"`
	LeadStock             string  `json:"max_stock"`
	LeadStockCode         string  `json:"max_stock_code"`
	Timestamp             string  `json:"datetime"`
}

//TotalInflow is the super-large plus large tier sum. It is derived on
//demand rather than stored, so the invariant cannot drift.
func (c *ConceptFlow) TotalInflow() float64 {
	return c.SuperLargeInflow + c.LargeInflow
}

//MarshalJSON emits the derived total_inflow alongside the stored fields.
func (c *ConceptFlow) MarshalJSON() ([]byte, error) {
	type alias ConceptFlow
	return json.Marshal(&struct {
		*alias
		TotalInflow float64 `json:"total_inflow"`
	}{
		alias:       (*alias)(c),
		TotalInflow: c.TotalInflow(),
	})
}

func (c *ConceptFlow) String() string {
	return fmt.Sprintf("%s(%s) 涨跌幅%.2f%% 主力净流入%.2f亿 超大单+大单%.2f亿",
		c.Name, c.Code, c.ChangeRate, c.MainInflow, c.TotalInflow())
}

//ConceptData is the persisted current-snapshot artifact for sectors.
type ConceptData struct {
	UpdateTime string         `json:"update_time"`
	Concepts   []*ConceptFlow `json:"concepts"`
}

//LimitUpStock is one consecutive limit-up stock in canonical form,
//including the fields computed by the enrich stage.
type LimitUpStock struct {
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	ChangeRate     float64 `json:"change_rate"`
	LianbanDays    int     `json:"lianban_days"`
	IsNewStock     bool    `json:"is_new_stock"`
	FirstLimitTime string  `json:"first_limit_time"`
	LastLimitTime  string  `json:"last_limit_time"`
	LimitType      string  `json:"limit_type"`
	FundInflow     float64 `json:"fund_inflow"`
	MarketValue    float64 `json:"market_value"`
	TurnoverRate   float64 `json:"turnover_rate"`
	PeRatio        float64 `json:"pe_ratio"`
	IsST           bool    `json:"is_st"`
	UpdateTime     string  `json:"update_time"`

	LimitIntensity  float64 `json:"limit_intensity"`
	FundEfficiency  float64 `json:"fund_efficiency"`
	RiskLevel       string  `json:"risk_level"`
	SelectionReason string  `json:"selection_reason"`
}

//StockData is the persisted current-snapshot artifact for stocks.
type StockData struct {
	ScrapeTime  string          `json:"scrape_time"`
	TotalStocks int             `json:"total_stocks"`
	DataSource  string          `json:"data_source"`
	Stocks      []*LimitUpStock `json:"stocks"`
}

//FlowSnapshot records which concept names ranked on a given day,
//in the order they were received.
type FlowSnapshot struct {
	Date     string   `json:"date"`
	Concepts []string `json:"concepts"`
	Count    int      `json:"count"`
}

//FlowHistoryData is the on-disk shape of the rolling history file.
type FlowHistoryData struct {
	HistoricalData map[string]*FlowSnapshot `json:"historical_data"`
}

//ConceptFreq is one row of the trailing-window frequency ranking.
type ConceptFreq struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}
