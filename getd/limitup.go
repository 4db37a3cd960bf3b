package getd

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"fundflow/conf"
	"fundflow/model"
	"fundflow/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//filter boundaries for the limit-up listing. Both are strict.
const (
	maxAbsChangeRate = 20.0
	riskIntensityDiv = 10.0
)

var (
	stPattern      = regexp.MustCompile(`(?i)\*?ST`)
	specialPattern = regexp.MustCompile(`[*?!]`)
)

//stockSource produces canonical limit-up records from one origin.
type stockSource interface {
	name() string
	fetch() ([]*model.LimitUpStock, error)
}

func stockSources() []stockSource {
	return []stockSource{
		new(emLimitUpAPI),
		new(stockScriptScraper),
	}
}

//GetLimitUpData fetches the consecutive limit-up listing, filters and
//enriches it, persists the snapshot and logs the distribution stats.
func GetLimitUpData() {
	log.Info("getting consecutive limit-up stocks...")
	stocks := GetLimitUps()
	if len(stocks) == 0 {
		log.Error("no limit-up data from any source, run produced no output")
		return
	}
	stocks = filterStocks(stocks)
	if len(stocks) == 0 {
		log.Error("no stock survived the filter stage")
		return
	}
	stocks = enrichStocks(stocks)

	_, ts := util.TimeStr()
	data := &model.StockData{
		ScrapeTime:  ts,
		TotalStocks: len(stocks),
		DataSource:  "东方财富网连板股票",
		Stocks:      stocks,
	}
	if e := WriteJSON(conf.Args.Output.StockFile, data); e != nil {
		log.Errorf("failed to save stock snapshot: %+v", e)
	} else {
		log.Infof("%d stocks saved to %s", len(stocks), conf.Args.Output.StockFile)
	}
	logLimitUpStats(stocks)
}

//GetLimitUps tries each source in priority order until one yields at
//least one record.
func GetLimitUps() []*model.LimitUpStock {
	return getLimitUps(stockSources()...)
}

func getLimitUps(sources ...stockSource) []*model.LimitUpStock {
	for _, s := range sources {
		stocks, e := s.fetch()
		if e != nil {
			log.Warnf("%s failed, trying next source: %+v", s.name(), e)
			continue
		}
		if len(stocks) == 0 {
			log.Warnf("%s yielded no records, trying next source", s.name())
			continue
		}
		log.Infof("%s yielded %d stocks", s.name(), len(stocks))
		return stocks
	}
	return nil
}

//emLimitUpAPI pulls the members of the consecutive limit-up sector from
//the provider's push2 list endpoint.
type emLimitUpAPI struct{}

func (s *emLimitUpAPI) name() string {
	return "limit-up api"
}

func (s *emLimitUpAPI) fetch() (stocks []*model.LimitUpStock, e error) {
	params := map[string]string{
		"pn":     "1",
		"pz":     strconv.Itoa(conf.Args.DataSource.LimitUpPageSz),
		"po":     "1",
		"np":     "1",
		"ut":     conf.Args.DataSource.APIToken,
		"fltt":   "2",
		"invt":   "2",
		"fid":    "f3", // rank by change rate
		"fs":     "b:" + conf.Args.DataSource.LimitUpSector,
		"fields": "f2,f3,f8,f9,f12,f14,f20,f39",
	}
	url := util.ComposeURL(conf.Args.DataSource.FlowAPIURL, params)
	body, e := util.HTTPGetBytes(url, map[string]string{
		"Referer": conf.Args.DataSource.LimitUpURL,
	})
	if e != nil {
		return nil, e
	}
	return parseLimitUpAPI(body)
}

func parseLimitUpAPI(body []byte) (stocks []*model.LimitUpStock, e error) {
	if rc := gjson.GetBytes(body, "rc"); !rc.Exists() || rc.Int() != 0 {
		return nil, errors.Errorf("api error code: %s", rc.Raw)
	}
	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() {
		return nil, errors.New("api response has no data.diff")
	}
	_, ts := util.TimeStr()
	diff.ForEach(func(_, item gjson.Result) bool {
		code := item.Get("f12").String()
		if code == "" {
			return true
		}
		pe := item.Get("f39").Float()
		if pe == 0 {
			pe = item.Get("f9").Float()
		}
		stocks = append(stocks, &model.LimitUpStock{
			Code:         code,
			Name:         item.Get("f14").String(),
			Price:        item.Get("f2").Float(),
			ChangeRate:   item.Get("f3").Float(),
			LianbanDays:  1, // the sector listing carries no streak length
			LimitType:    "连板",
			MarketValue:  item.Get("f20").Float(),
			TurnoverRate: item.Get("f8").Float(),
			PeRatio:      pe,
			UpdateTime:   ts,
		})
		return true
	})
	if len(stocks) == 0 {
		return nil, errors.New("api returned an empty member list")
	}
	return
}

//stockScriptScraper scans the sector page's script blocks for embedded
//record arrays, mirroring the concept script source.
type stockScriptScraper struct{}

func (s *stockScriptScraper) name() string {
	return "stock script scrape"
}

func (s *stockScriptScraper) fetch() (stocks []*model.LimitUpStock, e error) {
	res, e := util.HTTPGet(conf.Args.DataSource.LimitUpURL, nil)
	if e != nil {
		return nil, e
	}
	defer res.Body.Close()
	doc, e := newDocument(res)
	if e != nil {
		return nil, e
	}
	return parseStockScripts(doc)
}

func parseStockScripts(doc *goquery.Document) (stocks []*model.LimitUpStock, e error) {
	for _, arr := range scriptArrays(doc) {
		if !isRecordArray(arr) {
			continue
		}
		arr.ForEach(func(_, item gjson.Result) bool {
			if s := stockFromAliases(item); s != nil {
				stocks = append(stocks, s)
			}
			return true
		})
		if len(stocks) > 0 {
			break
		}
	}
	if len(stocks) == 0 {
		return nil, errors.New("no record-shaped script data in document")
	}
	return
}

func stockFromAliases(item gjson.Result) *model.LimitUpStock {
	code := strings.TrimSpace(firstAlias(item, "code", "codes", "股票代码", "代码", "symbol", "f12").String())
	if code == "" {
		return nil
	}
	days := int(firstAlias(item, "lianban_days", "连板天数", "连续涨停天数").Int())
	if days == 0 {
		days = 1
	}
	limitType := firstAlias(item, "limit_type", "涨停类型").String()
	if limitType == "" {
		limitType = "连板"
	}
	_, ts := util.TimeStr()
	return &model.LimitUpStock{
		Code:           code,
		Name:           firstAlias(item, "name", "股票名称", "名称", "n", "f14").String(),
		Price:          firstAlias(item, "price", "最新价", "p", "f2").Float(),
		ChangeRate:     firstAlias(item, "change_rate", "涨跌幅", "zdp", "f3").Float(),
		LianbanDays:    days,
		IsNewStock:     firstAlias(item, "is_new_stock").Bool(),
		FirstLimitTime: firstAlias(item, "first_limit_time", "首次涨停时间").String(),
		LastLimitTime:  firstAlias(item, "last_limit_time", "最后涨停时间").String(),
		LimitType:      limitType,
		FundInflow:     firstAlias(item, "fund_inflow", "封板资金", "资金流向").Float(),
		MarketValue:    firstAlias(item, "market_value", "流通市值").Float(),
		TurnoverRate:   firstAlias(item, "turnover_rate", "换手率").Float(),
		PeRatio:        firstAlias(item, "pe_ratio", "市盈率", "动态市盈率").Float(),
		UpdateTime:     ts,
	}
}

//filterStocks drops disqualified records: ST-marked names, names with
//special characters, non-positive prices, out-of-band change rates and
//zero-day streaks. Survivors are guaranteed non-ST.
func filterStocks(stocks []*model.LimitUpStock) (kept []*model.LimitUpStock) {
	for _, s := range stocks {
		switch {
		case stPattern.MatchString(s.Name):
			log.Infof("filtered ST stock: %s %s", s.Code, s.Name)
		case specialPattern.MatchString(s.Name):
			log.Infof("filtered special-character stock: %s %s", s.Code, s.Name)
		case s.Price <= 0:
			log.Infof("filtered abnormal price stock: %s %s", s.Code, s.Name)
		case s.ChangeRate > maxAbsChangeRate || s.ChangeRate < -maxAbsChangeRate:
			log.Infof("filtered abnormal change rate stock: %s %s (%.2f%%)",
				s.Code, s.Name, s.ChangeRate)
		case s.LianbanDays <= 0:
			log.Infof("filtered non-streak stock: %s %s", s.Code, s.Name)
		default:
			s.IsST = false
			kept = append(kept, s)
		}
	}
	log.Infof("%d of %d stocks passed the filter", len(kept), len(stocks))
	return
}

//enrichStocks computes the derived metrics on each surviving record.
//Risk thresholds are evaluated in order, first match wins, strict >.
func enrichStocks(stocks []*model.LimitUpStock) []*model.LimitUpStock {
	for _, s := range stocks {
		s.LimitIntensity = s.ChangeRate / riskIntensityDiv
		if s.MarketValue > 0 {
			s.FundEfficiency = s.FundInflow / s.MarketValue
		} else {
			s.FundEfficiency = 0
		}
		switch {
		case s.LianbanDays >= 5 && s.TurnoverRate > 20:
			s.RiskLevel = model.RiskHigh
		case s.LianbanDays >= 3 && s.TurnoverRate > 15:
			s.RiskLevel = model.RiskMediumHigh
		case s.LianbanDays >= 2 && s.TurnoverRate > 10:
			s.RiskLevel = model.RiskMedium
		default:
			s.RiskLevel = model.RiskLow
		}
		s.SelectionReason = fmt.Sprintf("连板%d天，风险等级%s", s.LianbanDays, s.RiskLevel)
	}
	return stocks
}

//logLimitUpStats prints the per-streak and per-risk distribution of the
//final selection.
func logLimitUpStats(stocks []*model.LimitUpStock) {
	log.Infof("=== limit-up selection stats: %d stocks ===", len(stocks))
	byDays := map[int]int{}
	byRisk := map[string]int{}
	for _, s := range stocks {
		byDays[s.LianbanDays]++
		byRisk[s.RiskLevel]++
	}
	var days []int
	for d := range byDays {
		days = append(days, d)
	}
	sort.Ints(days)
	for _, d := range days {
		log.Infof("  连板%d天: %d只", d, byDays[d])
	}
	for _, r := range []string{model.RiskHigh, model.RiskMediumHigh, model.RiskMedium, model.RiskLow} {
		if byRisk[r] > 0 {
			log.Infof("  risk %s: %d只", r, byRisk[r])
		}
	}
}
