package util

import (
	"strconv"
	"strings"
)

//magnitude unit suffixes found in scraped money columns. 亿 is the
//canonical unit; 万 values are scaled down by wan2YiDivisor.
const (
	unitYi        = "亿"
	unitWan       = "万"
	wan2YiDivisor = 10000
)

//Str2F64 parses a trimmed string as float64, 0 on failure.
func Str2F64(s string) (f float64) {
	f64, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if e == nil {
		f = f64
	}
	return
}

//Pct2F64 parses a percentage string such as "9.87%" into 9.87.
//Malformed input degrades to 0 so a bad cell never aborts a row.
func Pct2F64(s string) (f float64) {
	f, _ = pct2F64Ok(s)
	return
}

func pct2F64Ok(s string) (f float64, ok bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	f64, e := strconv.ParseFloat(s, 64)
	if e != nil {
		return 0, false
	}
	return f64, true
}

//Amt2F64 parses a money string with an optional magnitude suffix
//into the canonical 亿 unit. "1.5亿" == 1.5, "15000万" == 1.5.
//Malformed input degrades to 0.
func Amt2F64(s string) (f float64) {
	f, _ = amt2F64Ok(s)
	return
}

func amt2F64Ok(s string) (f float64, ok bool) {
	s = strings.TrimSpace(s)
	wan := strings.HasSuffix(s, unitWan)
	if wan {
		s = strings.TrimSuffix(s, unitWan)
	} else {
		s = strings.TrimSuffix(s, unitYi)
	}
	f64, e := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if e != nil {
		return 0, false
	}
	if wan {
		f64 /= wan2YiDivisor
	}
	return f64, true
}
