package getd

import (
	"time"

	"fundflow/conf"
	"fundflow/model"
	"fundflow/util"
)

//conceptSource produces canonical concept flow records from one origin.
type conceptSource interface {
	name() string
	fetch() ([]*model.ConceptFlow, error)
}

//sources are tried in priority order; the first non-empty result wins.
func conceptSources() []conceptSource {
	return []conceptSource{
		new(emFlowAPI),
		new(flowTableScraper),
		new(flowScriptScraper),
	}
}

//Get runs the full batch: concept fund-flow ranking (with history and
//report), then the consecutive limit-up listing.
func Get() {
	start := time.Now()
	defer stop("GETD_TOTAL", start)

	if !conf.Args.DataSource.SkipConcepts {
		stfl := time.Now()
		GetConceptData()
		stop("GET_CONCEPTS", stfl)
	} else {
		log.Printf("skipped concept fund-flow data from web")
	}

	if !conf.Args.DataSource.SkipLimitUps {
		stlu := time.Now()
		GetLimitUpData()
		stop("GET_LIMIT_UPS", stlu)
	} else {
		log.Printf("skipped limit-up data from web")
	}
}

//GetConceptFlows tries each source in priority order until one yields
//at least one record. Source failures are demoted to "no data".
func GetConceptFlows() []*model.ConceptFlow {
	return getConceptFlows(conceptSources()...)
}

func getConceptFlows(sources ...conceptSource) []*model.ConceptFlow {
	for _, s := range sources {
		flows, e := s.fetch()
		if e != nil {
			log.Warnf("%s failed, trying next source: %+v", s.name(), e)
			continue
		}
		if len(flows) == 0 {
			log.Warnf("%s yielded no records, trying next source", s.name())
			continue
		}
		log.Infof("%s yielded %d concepts", s.name(), len(flows))
		return flows
	}
	return nil
}

//GetConceptData fetches today's top concept ranking, persists the
//snapshot, folds it into the rolling history, and renders the report.
//A run where every source comes up empty ends cleanly with no output.
func GetConceptData() {
	log.Info("getting concept fund-flow ranking...")
	flows := GetConceptFlows()
	if len(flows) == 0 {
		log.Error("no concept data from any source, run produced no output")
		return
	}
	for i, c := range flows {
		log.Infof("%d. %s", i+1, c)
	}

	_, ts := util.TimeStr()
	data := &model.ConceptData{UpdateTime: ts, Concepts: flows}
	if e := WriteJSON(conf.Args.Output.ConceptFile, data); e != nil {
		log.Errorf("failed to save concept snapshot: %+v", e)
	} else {
		log.Infof("concept data saved to %s", conf.Args.Output.ConceptFile)
	}

	hist := NewFlowHistory()
	if e := hist.Update(util.Today(), conceptNames(flows)); e != nil {
		log.Errorf("failed to update flow history: %+v", e)
	}
	ranking := hist.Ranking(conf.Args.DataSource.TopConcepts)

	html, e := renderReport(data, ranking)
	if e != nil {
		log.Errorf("failed to render report: %+v", e)
	} else if e = WriteText(conf.Args.Output.ReportFile, html); e != nil {
		log.Errorf("failed to save report: %+v", e)
	} else {
		log.Infof("report saved to %s", conf.Args.Output.ReportFile)
	}

	logConceptSummary(flows, ranking)
}

//RenderFromFiles re-renders the HTML report from the persisted snapshot
//and history files without touching the network.
func RenderFromFiles() (e error) {
	data := new(model.ConceptData)
	if e = ReadJSON(conf.Args.Output.ConceptFile, data); e != nil {
		return
	}
	hist := NewFlowHistory()
	ranking := hist.Ranking(conf.Args.DataSource.TopConcepts)
	html, e := renderReport(data, ranking)
	if e != nil {
		return
	}
	if e = WriteText(conf.Args.Output.ReportFile, html); e != nil {
		return
	}
	log.Infof("report re-rendered to %s from persisted data", conf.Args.Output.ReportFile)
	return nil
}

func stop(code string, start time.Time) {
	log.Printf("%s Complete. Time Elapsed: %f sec", code, time.Since(start).Seconds())
}
