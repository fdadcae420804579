package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "NEWS_SIFTER_CONFIG"
	naverClientIDEnv     = "NAVER_CLIENT_ID"
	naverClientSecretEnv = "NAVER_CLIENT_SECRET"
	chatGPTAPIKeyEnv     = "CHATGPT_API_KEY"
	chatGPTModelEnv      = "CHATGPT_MODEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging          LoggingConfig    `yaml:"logging"`
	Naver            NaverConfig      `yaml:"naver"`
	ChatGPT          ChatGPTConfig    `yaml:"chatgpt"`
	Judge            JudgeConfig      `yaml:"judge"`
	Search           SearchConfig     `yaml:"search"`
	Export           ExportConfig     `yaml:"export"`
	Scheduler        SchedulerConfig  `yaml:"scheduler"`
	Sources          []SourceConfig   `yaml:"sources"`
	TrustOrder       []string         `yaml:"trustOrder"`
	NegativeKeywords []string         `yaml:"negativeKeywords"`
	Categories       []CategoryConfig `yaml:"categories"`
}

// LoggingConfig selects the console log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NaverConfig describes the news search API endpoint and credentials.
type NaverConfig struct {
	Endpoint     string `yaml:"endpoint"`
	ClientID     string `yaml:"clientId"`
	ClientSecret string `yaml:"clientSecret"`
	DelayMS      int    `yaml:"delayMs"`
}

// ChatGPTConfig defines how to contact the classifier oracle.
type ChatGPTConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"apiKey"`
}

// JudgeConfig controls the print-edition classification stage.
type JudgeConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Mode      string  `yaml:"mode"` // "scalar" or "panel"
	Threshold float64 `yaml:"threshold"`
	DelayMS   int     `yaml:"delayMs"`
}

// SearchConfig bounds a collection run.
type SearchConfig struct {
	MaxPages               int `yaml:"maxPages"`
	MaxKeywordsPerCategory int `yaml:"maxKeywordsPerCategory"`
}

// ExportConfig points at the CSV output.
type ExportConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig enables the recurring daily run.
type SchedulerConfig struct {
	Enabled bool `yaml:"enabled"`
	Hour    int  `yaml:"hour"` // KST hour the daily run fires at
}

// SourceConfig is one allow-list entry; list order decides match precedence.
type SourceConfig struct {
	Name   string `yaml:"name"`
	Domain string `yaml:"domain"`
}

// CategoryConfig groups search keywords under a category name.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

// Validate enforces startup-fatal requirements. Missing credentials must
// fail here, before the pipeline runs, never mid-run.
func (c Config) Validate() error {
	if c.Naver.ClientID == "" || c.Naver.ClientSecret == "" {
		return fmt.Errorf("naver credentials are required (%s / %s)", naverClientIDEnv, naverClientSecretEnv)
	}
	if c.Judge.Enabled && c.ChatGPT.APIKey == "" {
		return fmt.Errorf("chatgpt api key is required when the judge is enabled (%s)", chatGPTAPIKeyEnv)
	}
	if c.Judge.Threshold < 0 || c.Judge.Threshold > 1 {
		return fmt.Errorf("judge threshold %v must be within [0, 1]", c.Judge.Threshold)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("at least one allow-listed source is required")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(naverClientIDEnv); v != "" {
		c.Naver.ClientID = v
	}

	if v := os.Getenv(naverClientSecretEnv); v != "" {
		c.Naver.ClientSecret = v
	}

	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}

	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging = override.Logging
	}

	if override.Naver.Endpoint != "" {
		base.Naver.Endpoint = override.Naver.Endpoint
	}
	if override.Naver.ClientID != "" {
		base.Naver.ClientID = override.Naver.ClientID
	}
	if override.Naver.ClientSecret != "" {
		base.Naver.ClientSecret = override.Naver.ClientSecret
	}
	if override.Naver.DelayMS > 0 {
		base.Naver.DelayMS = override.Naver.DelayMS
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}

	if override.Judge.Enabled {
		base.Judge.Enabled = true
	}
	if override.Judge.Mode != "" {
		base.Judge.Mode = override.Judge.Mode
	}
	if override.Judge.Threshold > 0 {
		base.Judge.Threshold = override.Judge.Threshold
	}
	if override.Judge.DelayMS > 0 {
		base.Judge.DelayMS = override.Judge.DelayMS
	}

	if override.Search.MaxPages > 0 {
		base.Search.MaxPages = override.Search.MaxPages
	}
	if override.Search.MaxKeywordsPerCategory > 0 {
		base.Search.MaxKeywordsPerCategory = override.Search.MaxKeywordsPerCategory
	}

	if override.Export.Path != "" {
		base.Export = override.Export
	}

	if override.Scheduler.Enabled {
		base.Scheduler.Enabled = true
	}
	if override.Scheduler.Hour > 0 {
		base.Scheduler.Hour = override.Scheduler.Hour
	}

	if len(override.Sources) > 0 {
		base.Sources = override.Sources
	}
	if len(override.TrustOrder) > 0 {
		base.TrustOrder = override.TrustOrder
	}
	if len(override.NegativeKeywords) > 0 {
		base.NegativeKeywords = override.NegativeKeywords
	}
	if len(override.Categories) > 0 {
		base.Categories = override.Categories
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Naver: NaverConfig{
			Endpoint: "https://openapi.naver.com/v1/search/news.json",
			DelayMS:  100,
		},
		ChatGPT: ChatGPTConfig{
			Endpoint: "https://api.openai.com/v1/chat/completions",
			Model:    "gpt-4o-mini",
		},
		Judge: JudgeConfig{
			Enabled:   false,
			Mode:      "scalar",
			Threshold: 0.5,
			DelayMS:   100,
		},
		Search: SearchConfig{
			MaxPages:               2,
			MaxKeywordsPerCategory: 8,
		},
		Export:    ExportConfig{Path: "news.csv"},
		Scheduler: SchedulerConfig{Enabled: false, Hour: 10},
		// First match wins, so more specific domains come before the
		// parent publisher they belong to.
		Sources: []SourceConfig{
			{Name: "조선비즈", Domain: "biz.chosun.com"},
			{Name: "조선일보", Domain: "chosun.com"},
			{Name: "중앙일보", Domain: "joongang.co.kr"},
			{Name: "동아일보", Domain: "donga.com"},
			{Name: "매거진한경", Domain: "magazine.hankyung.com"},
			{Name: "한국경제", Domain: "hankyung.com"},
			{Name: "매일경제", Domain: "mk.co.kr"},
			{Name: "연합뉴스", Domain: "yna.co.kr"},
			{Name: "파이낸셜뉴스", Domain: "fnnews.com"},
			{Name: "머니투데이", Domain: "mt.co.kr"},
		},
		TrustOrder: []string{
			"조선일보", "중앙일보", "동아일보", "조선비즈", "매거진한경",
			"한국경제", "매일경제", "연합뉴스", "파이낸셜뉴스", "머니투데이",
		},
		NegativeKeywords: []string{
			"연예", "아이돌", "BTS", "블랙핑크", "드라마", "영화제",
			"스포츠", "야구", "축구", "골프", "e스포츠",
			"웹툰", "게임쇼", "콘서트", "팬미팅",
		},
		Categories: []CategoryConfig{
			{Name: "재무", Keywords: []string{"실적발표", "영업이익", "재무제표", "배당", "유상증자", "회사채", "신용등급", "감사보고서"}},
			{Name: "세무", Keywords: []string{"법인세", "세무조사", "조세", "세제개편", "가산세", "이전가격", "세액공제"}},
			{Name: "거버넌스", Keywords: []string{"이사회", "주주총회", "감사위원회", "내부통제", "지배구조", "ESG", "공시"}},
			{Name: "산업동향", Keywords: []string{"반도체", "이차전지", "인공지능", "바이오", "조선업", "건설경기", "금융시장"}},
			{Name: "주요기업", Keywords: []string{"삼성전자", "SK하이닉스", "현대자동차", "LG에너지솔루션", "포스코", "네이버", "카카오"}},
		},
	}
}
