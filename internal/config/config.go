// Package config holds the tunable values of the segmentation pipeline and
// loads them from the environment.
//
// Every threshold and margin the pipeline uses is a named field of
// Segmentation. Default returns the values the pipeline was calibrated with;
// Load starts from those and applies PIXELIZE_* overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"

	"github.com/pixelize/pixelize/internal/imaging"
)

// EnvFile is the optional dotenv file read by Load.
const EnvFile = ".env"

// Segmentation holds the pipeline parameters.
type Segmentation struct {
	// Watermark selects the watermark line pixels. Nil disables the pass.
	Watermark imaging.Predicate `json:"-"`

	// BrightnessLimit is the lightness (0-1) above which a pixel becomes white.
	BrightnessLimit float64 `json:"brightness_limit"`

	// Columns [ScanMarginLeft, width-ScanMarginRight) and rows
	// [ScanMarginTop, height-ScanMarginBottom) are scanned for ink.
	ScanMarginLeft   int `json:"scan_margin_left"`
	ScanMarginRight  int `json:"scan_margin_right"`
	ScanMarginTop    int `json:"scan_margin_top"`
	ScanMarginBottom int `json:"scan_margin_bottom"`

	// Cut rectangles span rows [RowBandTop, RowBandTop+RowBandHeight).
	RowBandTop    int `json:"row_band_top"`
	RowBandHeight int `json:"row_band_height"`

	// CutLeadInset is the gap skipped after a boundary before the next
	// character starts. FirstCutTrailInset is the gap left before the first
	// boundary.
	CutLeadInset       int `json:"cut_lead_inset"`
	FirstCutTrailInset int `json:"first_cut_trail_inset"`

	// A boundary is a fragment when each of the FragmentColumns columns ending
	// at it carries at most FragmentMaxInk ink pixels.
	FragmentColumns int `json:"fragment_columns"`
	FragmentMaxInk  int `json:"fragment_max_ink"`

	// Cut rectangles of width <= MergeMaxWidth are appended to their left
	// neighbour.
	MergeMaxWidth int `json:"merge_max_width"`

	// MaxCharacterWidth is the widest single glyph; wider crops hold two.
	MaxCharacterWidth int `json:"max_character_width"`

	// MinCharacterInk is the smallest ink count of a real glyph.
	MinCharacterInk int `json:"min_character_ink"`

	// SplitRatePercent is where Refine cuts a character that holds two glyphs.
	SplitRatePercent int `json:"split_rate_percent"`
}

// Default returns the calibrated parameters.
func Default() Segmentation {
	return Segmentation{
		Watermark:          imaging.BlueBand(16),
		BrightnessLimit:    0.3,
		ScanMarginLeft:     5,
		ScanMarginRight:    3,
		ScanMarginTop:      3,
		ScanMarginBottom:   3,
		RowBandTop:         2,
		RowBandHeight:      46,
		CutLeadInset:       3,
		FirstCutTrailInset: 2,
		FragmentColumns:    6,
		FragmentMaxInk:     6,
		MergeMaxWidth:      6,
		MaxCharacterWidth:  35,
		MinCharacterInk:    40,
		SplitRatePercent:   50,
	}
}

// Validate checks that the parameters describe a usable pipeline.
func (s Segmentation) Validate() error {
	if s.BrightnessLimit < 0 || s.BrightnessLimit > 1 {
		return fmt.Errorf("brightness limit must be between 0 and 1, got %v", s.BrightnessLimit)
	}

	nonNegative := map[string]int{
		"scan margin left":      s.ScanMarginLeft,
		"scan margin right":     s.ScanMarginRight,
		"scan margin top":       s.ScanMarginTop,
		"scan margin bottom":    s.ScanMarginBottom,
		"row band top":          s.RowBandTop,
		"cut lead inset":        s.CutLeadInset,
		"first cut trail inset": s.FirstCutTrailInset,
		"fragment max ink":      s.FragmentMaxInk,
		"merge max width":       s.MergeMaxWidth,
		"min character ink":     s.MinCharacterInk,
	}
	for name, v := range nonNegative {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}

	if s.RowBandHeight < 1 {
		return fmt.Errorf("row band height must be positive, got %d", s.RowBandHeight)
	}
	if s.FragmentColumns < 1 {
		return fmt.Errorf("fragment columns must be positive, got %d", s.FragmentColumns)
	}
	if s.MaxCharacterWidth < 1 {
		return fmt.Errorf("max character width must be positive, got %d", s.MaxCharacterWidth)
	}
	if s.SplitRatePercent <= 0 || s.SplitRatePercent >= 100 {
		return fmt.Errorf("split rate must be between 1 and 99 percent, got %d", s.SplitRatePercent)
	}
	return nil
}

// Config is the full runtime configuration.
type Config struct {
	Segmentation Segmentation

	// LogLevel is "info" or "debug".
	LogLevel string
}

// Debug reports whether verbose logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Load reads EnvFile when present, then PIXELIZE_* variables over Default.
func Load() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", EnvFile, err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment alone.
func FromEnv() (*Config, error) {
	s := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{"PIXELIZE_SCAN_MARGIN_LEFT", &s.ScanMarginLeft},
		{"PIXELIZE_SCAN_MARGIN_RIGHT", &s.ScanMarginRight},
		{"PIXELIZE_SCAN_MARGIN_TOP", &s.ScanMarginTop},
		{"PIXELIZE_SCAN_MARGIN_BOTTOM", &s.ScanMarginBottom},
		{"PIXELIZE_ROW_BAND_TOP", &s.RowBandTop},
		{"PIXELIZE_ROW_BAND_HEIGHT", &s.RowBandHeight},
		{"PIXELIZE_CUT_LEAD_INSET", &s.CutLeadInset},
		{"PIXELIZE_FIRST_CUT_TRAIL_INSET", &s.FirstCutTrailInset},
		{"PIXELIZE_FRAGMENT_COLUMNS", &s.FragmentColumns},
		{"PIXELIZE_FRAGMENT_MAX_INK", &s.FragmentMaxInk},
		{"PIXELIZE_MERGE_MAX_WIDTH", &s.MergeMaxWidth},
		{"PIXELIZE_MAX_CHARACTER_WIDTH", &s.MaxCharacterWidth},
		{"PIXELIZE_MIN_CHARACTER_INK", &s.MinCharacterInk},
		{"PIXELIZE_SPLIT_RATE_PERCENT", &s.SplitRatePercent},
	}
	for _, e := range ints {
		if err := envInt(e.key, e.dst); err != nil {
			return nil, err
		}
	}

	if v := os.Getenv("PIXELIZE_BRIGHTNESS_LIMIT"); v != "" {
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return nil, fmt.Errorf("PIXELIZE_BRIGHTNESS_LIMIT: %w", err)
		}
		s.BrightnessLimit = f
	}

	if v := os.Getenv("PIXELIZE_WATERMARK"); v != "" {
		pred, err := ParseWatermark(v)
		if err != nil {
			return nil, fmt.Errorf("PIXELIZE_WATERMARK: %w", err)
		}
		s.Watermark = pred
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &Config{
		Segmentation: s,
		LogLevel:     getEnvOrDefault("PIXELIZE_LOG_LEVEL", "info"),
	}, nil
}

// ParseWatermark parses a watermark predicate description:
//
//	none                      disable the pass
//	blue:<max>                imaging.BlueBand(max)
//	hue:<min>,<max>,<minsat>  imaging.HueBand in degrees and 0-1 saturation
func ParseWatermark(value string) (imaging.Predicate, error) {
	kind, args, _ := strings.Cut(strings.TrimSpace(value), ":")
	switch kind {
	case "none":
		return nil, nil
	case "blue":
		v, err := cast.ToIntE(args)
		if err != nil || v < 0 || v > 256 {
			return nil, fmt.Errorf("invalid blue band %q", args)
		}
		if v == 256 {
			return func(c imaging.RGBColor) bool { return c != imaging.Black }, nil
		}
		return imaging.BlueBand(uint8(v)), nil
	case "hue":
		parts := strings.Split(args, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("hue band needs min,max,saturation, got %q", args)
		}
		vals := make([]float64, 3)
		for i, p := range parts {
			f, err := cast.ToFloat64E(strings.TrimSpace(p))
			if err != nil {
				return nil, fmt.Errorf("invalid hue band value %q: %w", p, err)
			}
			vals[i] = f
		}
		return imaging.HueBand{MinHue: vals[0], MaxHue: vals[1], MinSaturation: vals[2]}.Predicate(), nil
	default:
		return nil, fmt.Errorf("unknown watermark kind %q", kind)
	}
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// getEnvOrDefault gets environment variable or returns default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
