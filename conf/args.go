package conf

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Args Global Application Arguments
var Args Arguments

//Arguments arguments struct type
type Arguments struct {
	DefaultRetry int    `mapstructure:"default_retry"`
	LogLevel     string `mapstructure:"log_level"`
	LogFile      string `mapstructure:"log_file"`
	Network      struct {
		HTTPTimeout      int    `mapstructure:"http_timeout"`
		RetryDelay       int    `mapstructure:"retry_delay"`
		DefaultUserAgent string `mapstructure:"default_user_agent"`
		DefaultReferer   string `mapstructure:"default_referer"`
	}
	DataSource struct {
		FlowAPIURL    string `mapstructure:"flow_api_url"`
		FlowRankURL   string `mapstructure:"flow_rank_url"`
		LimitUpURL    string `mapstructure:"limit_up_url"`
		LimitUpSector string `mapstructure:"limit_up_sector"`
		APIToken      string `mapstructure:"api_token"`
		TopConcepts   int    `mapstructure:"top_concepts"`
		LimitUpPageSz int    `mapstructure:"limit_up_page_size"`
		SkipConcepts  bool   `mapstructure:"skip_concepts"`
		SkipLimitUps  bool   `mapstructure:"skip_limit_ups"`
	}
	History struct {
		Path     string `mapstructure:"path"`
		Capacity int    `mapstructure:"capacity"`
		Window   int    `mapstructure:"window"`
	}
	Output struct {
		ConceptFile string `mapstructure:"concept_file"`
		StockFile   string `mapstructure:"stock_file"`
		ReportFile  string `mapstructure:"report_file"`
	}
}

func init() {
	setDefaults()
	viper.SetConfigName("fundflow") // name of config file (without extension)
	viper.AddConfigPath(".")        // optionally look for config in the working directory
	viper.AddConfigPath("$HOME")
	err := viper.ReadInConfig()
	if err != nil {
		logrus.Debugf("config file not found, using defaults: %+v", err)
	} else if err = viper.Unmarshal(&Args); err != nil {
		logrus.Errorf("config file error: %+v", err)
		return
	}
	switch Args.LogLevel {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warning":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	case "fatal":
		logrus.SetLevel(logrus.FatalLevel)
	case "panic":
		logrus.SetLevel(logrus.PanicLevel)
	}
	checkConfig()
}

func checkConfig() {
	if Args.History.Capacity <= 0 {
		logrus.Panicf("History.Capacity must be > 0, but is %d", Args.History.Capacity)
	}
	if Args.History.Window <= 0 {
		logrus.Panicf("History.Window must be > 0, but is %d", Args.History.Window)
	}
	if Args.History.Window > Args.History.Capacity {
		logrus.Panicf(`invalid configuration setting, History.Window (%d) greater than `+
			`History.Capacity (%d)`, Args.History.Window, Args.History.Capacity)
	}
}

func setDefaults() {
	Args.DefaultRetry = 3
	Args.LogLevel = "info"
	Args.LogFile = "fundflow.log"
	Args.Network.HTTPTimeout = 30
	Args.Network.RetryDelay = 2
	Args.Network.DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	Args.Network.DefaultReferer = "https://data.eastmoney.com/"
	Args.DataSource.FlowAPIURL = "https://push2.eastmoney.com/api/qt/clist/get"
	Args.DataSource.FlowRankURL = "https://data.eastmoney.com/bkzj/gn.html"
	Args.DataSource.LimitUpURL = "https://data.eastmoney.com/bkzj/BK1051.html"
	Args.DataSource.LimitUpSector = "BK1051"
	Args.DataSource.APIToken = "bd1d9ddb04089700cf9c27f6f7426281"
	Args.DataSource.TopConcepts = 10
	Args.DataSource.LimitUpPageSz = 100
	Args.History.Path = "concept_history.json"
	Args.History.Capacity = 10
	Args.History.Window = 5
	Args.Output.ConceptFile = "concept_section_data.json"
	Args.Output.StockFile = "selected_stocks.json"
	Args.Output.ReportFile = "fundflow_report.html"
}
