package util

import (
	"io/ioutil"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"fundflow/conf"

	"github.com/pkg/errors"
	"github.com/ssgreg/repeat"
)

//HTTPGet initiates HTTP get request and returns its response.
//Transient communication errors are retried up to conf.Args.DefaultRetry
//times with a fixed delay of conf.Args.Network.RetryDelay seconds.
func HTTPGet(link string, headers map[string]string) (res *http.Response, e error) {
	host := ""
	r := regexp.MustCompile(`//([^/]*)/`).FindStringSubmatch(link)
	if len(r) > 0 {
		host = r[len(r)-1]
	}

	req, e := http.NewRequest(http.MethodGet, link, nil)
	if e != nil {
		log.Panicf("unable to create http request: %+v", e)
	}

	req.Header.Set("Accept", "text/html,application/xhtml+xml,"+
		"application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Connection", "close")
	if host != "" {
		req.Header.Set("Host", host)
	}
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Referer", conf.Args.Network.DefaultReferer)
	for k, hv := range headers {
		req.Header.Set(k, hv)
	}
	if len(req.Header.Get("User-Agent")) == 0 {
		req.Header.Set("User-Agent", conf.Args.Network.DefaultUserAgent)
	}

	client := &http.Client{Timeout: time.Second * time.Duration(conf.Args.Network.HTTPTimeout)}

	op := func(c int) error {
		res, e = client.Do(req)
		if e != nil {
			//handle "read: connection reset by peer" error by retrying
			log.Debugf("http communication error: [%+v] url=%s, retrying %d ...", e, link, c+1)
			if res != nil {
				res.Body.Close()
			}
			return repeat.HintTemporary(e)
		}
		return nil
	}

	e = repeat.Repeat(
		repeat.FnWithCounter(op),
		repeat.StopOnSuccess(),
		repeat.LimitMaxTries(conf.Args.DefaultRetry),
		repeat.WithDelay(
			repeat.FixedBackoff(time.Second*time.Duration(conf.Args.Network.RetryDelay)).Set(),
		),
	)
	if e != nil {
		return nil, errors.Wrapf(e, "http communication failed after %d retries. url=%s",
			conf.Args.DefaultRetry, link)
	}
	return
}

//HTTPGetBytes fetches the url and drains the response body.
func HTTPGetBytes(link string, headers map[string]string) (body []byte, e error) {
	res, e := HTTPGet(link, headers)
	if e != nil {
		return nil, e
	}
	defer res.Body.Close()
	body, e = ioutil.ReadAll(res.Body)
	if e != nil {
		return nil, errors.Wrapf(e, "failed to read http response body from %s", link)
	}
	return
}

//ComposeURL joins the base url with encoded query parameters.
func ComposeURL(base string, params map[string]string) string {
	vals := url.Values{}
	for k, v := range params {
		vals.Set(k, v)
	}
	return base + "?" + vals.Encode()
}
