// Package config loads the service configuration from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/ByLCY/zinefold/convert"
	"github.com/ByLCY/zinefold/imposition"
)

// Config 保存服务与转换参数。未出现在文件中的字段保持默认值。
type Config struct {
	AppName                  string   `json:"app_name"`
	Listen                   string   `json:"listen"`
	DPI                      float64  `json:"dpi"`
	MaxUploadBytes           int64    `json:"max_upload_bytes"`
	MaxConnections           int      `json:"max_connections"`           // 0 = unlimited
	MaxConcurrentConversions int64    `json:"max_concurrent_conversions"`
	AllowedOrigins           []string `json:"allowed_origins"`
	FilenameTemplate         string   `json:"filename_template"`
	TitleTemplate            string   `json:"title_template"`
	Scaler                   string   `json:"scaler"` // nearest | approx-bilinear | bilinear | catmullrom
	Preflight                bool     `json:"preflight"`
	ReadTimeout              Duration `json:"read_timeout"`
	WriteTimeout             Duration `json:"write_timeout"`
	ShutdownTimeout          Duration `json:"shutdown_timeout"`
}

// Duration accepts "10s"-style strings in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration 必须是字符串: %w", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		AppName:                  "zinefold",
		Listen:                   ":8080",
		DPI:                      imposition.DPI,
		MaxUploadBytes:           32 << 20,
		MaxConnections:           64,
		MaxConcurrentConversions: 2,
		AllowedOrigins:           []string{"*"},
		FilenameTemplate:         convert.DefaultFilenameTemplate,
		TitleTemplate:            convert.DefaultTitleTemplate,
		Scaler:                   "catmullrom",
		Preflight:                true,
		ReadTimeout:              Duration{30 * time.Second},
		WriteTimeout:             Duration{2 * time.Minute},
		ShutdownTimeout:          Duration{10 * time.Second},
	}
}

// Load 读取 path 指向的 JSON 文件并叠加到默认值上。path 为空时返回默认值。
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("读取配置文件 %s 失败: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("解析配置文件 %s 失败: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate 检查取值范围。
func (c Config) Validate() error {
	var errs []error
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi 必须大于 0，实际 %g", c.DPI))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes 必须大于 0"))
	}
	if c.MaxConnections < 0 {
		errs = append(errs, fmt.Errorf("max_connections 不能为负数"))
	}
	if c.MaxConcurrentConversions <= 0 {
		errs = append(errs, fmt.Errorf("max_concurrent_conversions 必须大于 0"))
	}
	if _, err := c.DrawScaler(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DrawScaler resolves the configured scaler name.
func (c Config) DrawScaler() (draw.Scaler, error) {
	switch strings.ToLower(c.Scaler) {
	case "", "catmullrom":
		return draw.CatmullRom, nil
	case "bilinear":
		return draw.BiLinear, nil
	case "approx-bilinear":
		return draw.ApproxBiLinear, nil
	case "nearest":
		return draw.NearestNeighbor, nil
	default:
		return nil, fmt.Errorf("未知的缩放算法 %q", c.Scaler)
	}
}

// ConvertOptions 生成转换管线使用的选项。
func (c Config) ConvertOptions() convert.Options {
	scaler, err := c.DrawScaler()
	if err != nil {
		scaler = nil
	}
	return convert.Options{
		FilenameTemplate: c.FilenameTemplate,
		TitleTemplate:    c.TitleTemplate,
		Creator:          c.AppName,
		Imposition:       imposition.Options{Scaler: scaler},
	}
}
