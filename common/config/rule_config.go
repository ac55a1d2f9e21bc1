package config

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var Conf *Config

// Config 规则引擎的全部可配置面：规则变体、反应窗口与缓存
type Config struct {
	AppName string    `mapstructure:"appName"`
	Log     LogConf   `mapstructure:"log"`
	Rule    RuleConf  `mapstructure:"rule"`
	Cache   CacheConf `mapstructure:"cache"`
}

type LogConf struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

type RuleConf struct {
	RoundWind         int `mapstructure:"roundWind"`         // 场风序数 401-404
	ReactionWindowSec int `mapstructure:"reactionWindowSec"` // 反应窗口时长，超时由外围系统执行
}

type CacheConf struct {
	MaxCost int64 `mapstructure:"maxCost"` // 分析缓存内存上限（字节）
	TTLSec  int   `mapstructure:"ttlSec"`
}

// Inherit 填充缺省值
func (c *Config) Inherit() {
	if c.Rule.RoundWind == 0 {
		c.Rule.RoundWind = 401 // 东风场
	}
	if c.Rule.ReactionWindowSec <= 0 {
		c.Rule.ReactionWindowSec = 5
	}
	if c.Cache.MaxCost <= 0 {
		c.Cache.MaxCost = 1 << 24
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 600
	}
}

func InitConfig(configFile string) {
	Conf = new(Config)
	v := viper.New()
	v.SetConfigFile(configFile)
	v.WatchConfig()
	v.OnConfigChange(func(in fsnotify.Event) {
		err := v.Unmarshal(&Conf)
		if err != nil {
			panic(fmt.Errorf("解析配置文件出错 2, err:%v", err))
		}
		Conf.Inherit()
	})

	err := v.ReadInConfig()
	if err != nil {
		panic(fmt.Errorf("读取配置文件出错, err:%v", err))
	}

	err = v.Unmarshal(&Conf)
	if err != nil {
		panic(fmt.Errorf("解析配置文件出错 1, err:%v", err))
	}
	Conf.Inherit()
}
