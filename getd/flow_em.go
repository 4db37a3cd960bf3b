package getd

import (
	"fmt"

	"fundflow/conf"
	"fundflow/model"
	"fundflow/util"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

//emFlowAPI pulls the concept fund-flow ranking from the provider's
//push2 list endpoint. The field-code schema (f12, f14, ...) is a fixed
//contract, so no heuristic column mapping is needed here.
type emFlowAPI struct{}

func (s *emFlowAPI) name() string {
	return "flow api"
}

func (s *emFlowAPI) fetch() (flows []*model.ConceptFlow, e error) {
	params := map[string]string{
		"pn":     "1",
		"pz":     "20",
		"po":     "1",
		"np":     "1",
		"ut":     conf.Args.DataSource.APIToken,
		"fltt":   "2",
		"invt":   "2",
		"fid":    "f62",     // rank by main net inflow, descending
		"fs":     "m:90 t:3", // concept sectors
		"fields": "f12,f14,f2,f3,f62,f184,f66,f69,f72,f75,f78,f81,f84,f87,f204,f205,f124",
	}
	url := util.ComposeURL(conf.Args.DataSource.FlowAPIURL, params)
	body, e := util.HTTPGetBytes(url, nil)
	if e != nil {
		return nil, e
	}
	return parseFlowAPI(body, conf.Args.DataSource.TopConcepts)
}

//parseFlowAPI maps the fixed field-code payload into canonical records,
//truncated to the top n after ranking.
func parseFlowAPI(body []byte, n int) (flows []*model.ConceptFlow, e error) {
	if rc := gjson.GetBytes(body, "rc"); !rc.Exists() || rc.Int() != 0 {
		return nil, errors.Errorf("api error code: %s", rc.Raw)
	}
	diff := gjson.GetBytes(body, "data.diff")
	if !diff.Exists() {
		return nil, errors.New("api response has no data.diff")
	}
	//diff arrives either as an array or as an object keyed "0","1",...;
	//ForEach preserves document order in both shapes.
	diff.ForEach(func(_, item gjson.Result) bool {
		if len(flows) >= n {
			return false
		}
		flows = append(flows, &model.ConceptFlow{
			Code:                  item.Get("f12").String(),
			Name:                  item.Get("f14").String(),
			Price:                 item.Get("f2").Float(),
			ChangeRate:            item.Get("f3").Float(),
			MainInflow:            item.Get("f62").Float(),
			MainInflowRatio:       item.Get("f184").Float(),
			SuperLargeInflow:      item.Get("f66").Float(),
			SuperLargeInflowRatio: item.Get("f69").Float(),
			LargeInflow:           item.Get("f72").Float(),
			LargeInflowRatio:      item.Get("f75").Float(),
			MediumInflow:          item.Get("f78").Float(),
			MediumInflowRatio:     item.Get("f81").Float(),
			SmallInflow:           item.Get("f84").Float(),
			SmallInflowRatio:      item.Get("f87").Float(),
			LeadStock:             item.Get("f204").String(),
			LeadStockCode:         item.Get("f205").String(),
			Timestamp:             item.Get("f124").String(),
		})
		return true
	})
	if len(flows) == 0 {
		return nil, errors.New("api returned an empty ranking")
	}
	log.Debugf("flow api returned %d concepts: %s", len(flows), fmt.Sprint(conceptNames(flows)))
	return
}

func conceptNames(flows []*model.ConceptFlow) (names []string) {
	names = make([]string, len(flows))
	for i, f := range flows {
		names[i] = f.Name
	}
	return
}
