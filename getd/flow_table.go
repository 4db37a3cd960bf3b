package getd

import (
	"net/http"
	"strings"

	"fundflow/conf"
	"fundflow/model"
	"fundflow/util"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

//minimum matched canonical columns for a table to be considered the
//fund-flow ranking table.
const minMappedCols = 2

//flowTableScraper scrapes the concept ranking page and extracts the
//data table through the heuristic column mapper.
type flowTableScraper struct{}

func (s *flowTableScraper) name() string {
	return "table scrape"
}

func (s *flowTableScraper) fetch() (flows []*model.ConceptFlow, e error) {
	res, e := util.HTTPGet(conf.Args.DataSource.FlowRankURL, nil)
	if e != nil {
		return nil, e
	}
	defer res.Body.Close()
	doc, e := newDocument(res)
	if e != nil {
		return nil, e
	}
	return parseFlowTable(doc)
}

//newDocument parses the response body, decoding GBK-family charsets
//to UTF-8 first when the page declares one.
func newDocument(res *http.Response) (doc *goquery.Document, e error) {
	body := res.Body
	ct := strings.ToLower(res.Header.Get("Content-Type"))
	if strings.Contains(ct, "gbk") || strings.Contains(ct, "gb2312") {
		doc, e = goquery.NewDocumentFromReader(
			transform.NewReader(body, simplifiedchinese.GBK.NewDecoder()))
	} else {
		doc, e = goquery.NewDocumentFromReader(body)
	}
	if e != nil {
		return nil, errors.Wrap(e, "failed to parse html document")
	}
	return
}

//parseFlowTable locates the ranking table and extracts canonical
//records row by row. Rows that fail to extract are skipped, never
//aborting the document.
func parseFlowTable(doc *goquery.Document) (flows []*model.ConceptFlow, e error) {
	var table *goquery.Selection
	var colIdx map[string]int
	doc.Find("table").EachWithBreak(func(i int, t *goquery.Selection) bool {
		headers := tableHeaders(t)
		m := mapColumns(headers)
		if _, ok := m[colName]; ok && len(m) >= minMappedCols {
			table, colIdx = t, m
			return false
		}
		return true
	})
	if table == nil {
		return nil, errors.New("no recognizable fund-flow table in document")
	}
	log.Debugf("fund-flow table located, %d columns mapped", len(colIdx))

	table.Find("tbody tr").Each(func(i int, tr *goquery.Selection) {
		cells := rowCells(tr)
		if c := conceptFromRow(cells, colIdx); c != nil {
			flows = append(flows, c)
		}
	})
	//pages without an explicit tbody render rows directly under the table
	if len(flows) == 0 {
		table.Find("tr").Each(func(i int, tr *goquery.Selection) {
			if tr.Find("th").Length() > 0 {
				return
			}
			cells := rowCells(tr)
			if c := conceptFromRow(cells, colIdx); c != nil {
				flows = append(flows, c)
			}
		})
	}
	if len(flows) == 0 {
		return nil, errors.New("fund-flow table yielded no data rows")
	}
	if top := conf.Args.DataSource.TopConcepts; top > 0 && len(flows) > top {
		flows = flows[:top]
	}
	return
}

func tableHeaders(t *goquery.Selection) (headers []string) {
	hdRow := t.Find("thead tr").First()
	if hdRow.Length() == 0 {
		hdRow = t.Find("tr").First()
	}
	hdRow.Find("th, td").Each(func(i int, s *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(s.Text()))
	})
	return
}

func rowCells(tr *goquery.Selection) (cells []string) {
	tr.Find("td").Each(func(i int, s *goquery.Selection) {
		cells = append(cells, strings.TrimSpace(s.Text()))
	})
	return
}
