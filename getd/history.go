package getd

import (
	"os"
	"sort"

	"fundflow/conf"
	"fundflow/model"
)

//FlowHistory maintains the bounded rolling window of daily concept
//rankings. Capacity bounds the retained dates, Window bounds the
//trailing span the frequency ranking considers. Load and Save are
//injectable so tests can run without touching the filesystem.
type FlowHistory struct {
	Path     string
	Capacity int
	Window   int
	Load     func() (*model.FlowHistoryData, error)
	Save     func(*model.FlowHistoryData) error

	data *model.FlowHistoryData
}

//NewFlowHistory builds a history store on the configured file path.
func NewFlowHistory() *FlowHistory {
	h := &FlowHistory{
		Path:     conf.Args.History.Path,
		Capacity: conf.Args.History.Capacity,
		Window:   conf.Args.History.Window,
	}
	h.Load = func() (*model.FlowHistoryData, error) {
		d := &model.FlowHistoryData{HistoricalData: map[string]*model.FlowSnapshot{}}
		if _, e := os.Stat(h.Path); e != nil {
			return d, nil
		}
		if e := ReadJSON(h.Path, d); e != nil {
			return nil, e
		}
		if d.HistoricalData == nil {
			d.HistoricalData = map[string]*model.FlowSnapshot{}
		}
		return d, nil
	}
	h.Save = func(d *model.FlowHistoryData) error {
		return WriteJSON(h.Path, d)
	}
	return h
}

func (h *FlowHistory) load() (e error) {
	if h.data != nil {
		return nil
	}
	h.data, e = h.Load()
	return
}

//Update records today's ranked concept names, overwriting any snapshot
//already present for the same date, then evicts all but the Capacity
//most recent dates. Date keys are ISO strings so lexicographic order is
//chronological.
func (h *FlowHistory) Update(date string, concepts []string) (e error) {
	if e = h.load(); e != nil {
		return
	}
	h.data.HistoricalData[date] = &model.FlowSnapshot{
		Date:     date,
		Concepts: concepts,
		Count:    len(concepts),
	}
	dates := h.dates()
	if len(dates) > h.Capacity {
		for _, d := range dates[:len(dates)-h.Capacity] {
			delete(h.data.HistoricalData, d)
			log.Debugf("history evicted date %s", d)
		}
	}
	if e = h.Save(h.data); e != nil {
		return
	}
	log.Infof("flow history updated for %s, %d dates retained", date, len(h.data.HistoricalData))
	return
}

//Ranking counts concept-name occurrences over the most recent Window
//dates and returns the topN names by count. Ties keep first-discovery
//order. Frequency is count over the number of dates considered.
func (h *FlowHistory) Ranking(topN int) (ranking []*model.ConceptFreq) {
	if e := h.load(); e != nil {
		log.Errorf("failed to load flow history: %+v", e)
		return nil
	}
	dates := h.dates()
	if len(dates) > h.Window {
		dates = dates[len(dates)-h.Window:]
	}
	if len(dates) == 0 {
		return nil
	}
	counts := map[string]int{}
	var order []string
	for _, d := range dates {
		snap := h.data.HistoricalData[d]
		if snap == nil {
			//hand-edited or corrupt history entries are skipped, not fatal
			log.Warnf("history entry for %s is malformed, skipping", d)
			continue
		}
		for _, name := range snap.Concepts {
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}
	span := h.Window
	if len(dates) < span {
		span = len(dates)
	}
	ranking = make([]*model.ConceptFreq, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, &model.ConceptFreq{
			Name:      name,
			Count:     counts[name],
			Frequency: float64(counts[name]) / float64(span) * 100,
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if topN > 0 && len(ranking) > topN {
		ranking = ranking[:topN]
	}
	return
}

//dates returns the retained date keys in chronological order.
func (h *FlowHistory) dates() (dates []string) {
	for d := range h.data.HistoricalData {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return
}
