package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

type Config struct {
	CameraSource string
	ModelPath    string
	ModelLabels  string // путь к файлу классов, пусто = встроенный список
	InputSize    int

	NMSThreshold        float64
	ConfidenceThreshold float64
	ZoneThreshold       float64

	WindowTitle string
	QuitKey     int

	TelegramToken string
	AlertCooldown time.Duration
	HistoryLimit  int

	LogLevel string
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	var errs error
	cfg := &Config{
		CameraSource:  getString("CAMERA_SOURCE", "0"),
		ModelPath:     getString("MODEL_PATH", "best.onnx"),
		ModelLabels:   os.Getenv("MODEL_LABELS"),
		WindowTitle:   getString("WINDOW_TITLE", "YOLO Webcam"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		LogLevel:      getString("LOG_LEVEL", "info"),
	}

	cfg.InputSize = getInt("MODEL_INPUT_SIZE", 640, &errs)
	cfg.NMSThreshold = getUnit("NMS_THRESHOLD", 0.45, &errs)
	cfg.ConfidenceThreshold = getUnit("CONFIDENCE_THRESHOLD", 0.5, &errs)
	cfg.ZoneThreshold = getUnit("ZONE_THRESHOLD", 0.2, &errs)
	cfg.AlertCooldown = getDuration("ALERT_COOLDOWN", 30*time.Second, &errs)
	cfg.HistoryLimit = getInt("HISTORY_LIMIT", 20, &errs)

	key := getString("QUIT_KEY", "q")
	if len(key) != 1 {
		errs = multierr.Append(errs, fmt.Errorf("QUIT_KEY: want a single ASCII character, got %q", key))
	} else {
		cfg.QuitKey = int(key[0])
	}

	if cfg.InputSize <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("MODEL_INPUT_SIZE: must be positive, got %d", cfg.InputSize))
	}
	if cfg.HistoryLimit <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("HISTORY_LIMIT: must be positive, got %d", cfg.HistoryLimit))
	}
	if cfg.AlertCooldown < 0 {
		errs = multierr.Append(errs, fmt.Errorf("ALERT_COOLDOWN: must not be negative, got %s", cfg.AlertCooldown))
	}

	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *error) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return n
}

// getUnit читает долю из отрезка [0, 1]
func getUnit(key string, def float64, errs *error) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	if f < 0 || f > 1 {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: must be within [0, 1], got %v", key, f))
		return def
	}
	return f
}

func getDuration(key string, def time.Duration, errs *error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = multierr.Append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
