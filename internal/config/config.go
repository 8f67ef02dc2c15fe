package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config корневая структура конфигурации утилиты coordtool.

type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// Coord — абсолютная мировая координата в конфигурации
type Coord struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// Step — одна дельта перемещения сценария
type Step struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// ScenarioConfig описывает сценарий движения: стартовая точка и список
// дельт, прогоняемый Repeat раз подряд.
type ScenarioConfig struct {
	Start  Coord  `yaml:"start"`
	Steps  []Step `yaml:"steps"`
	Repeat int    `yaml:"repeat"`
}

type LogConfig struct {
	ConsoleLevel string `yaml:"console_level"`
}

type MetricsConfig struct {
	Namespace string `yaml:"namespace"`
}

// GetRepeat возвращает количество повторов сценария (минимум 1)
func (s *ScenarioConfig) GetRepeat() int {
	if s.Repeat > 0 {
		return s.Repeat
	}
	return 1
}

// GetConsoleLevel возвращает уровень логирования консоли с приоритетом:
// config -> env COORD_LOG_LEVEL -> "info"
func (l *LogConfig) GetConsoleLevel() string {
	if l.ConsoleLevel != "" {
		return l.ConsoleLevel
	}
	if envVal := os.Getenv("COORD_LOG_LEVEL"); envVal != "" {
		return envVal
	}
	return "info"
}

// GetNamespace возвращает namespace метрик с приоритетом:
// config -> env COORD_METRICS_NAMESPACE -> "space_game"
func (m *MetricsConfig) GetNamespace() string {
	if m.Namespace != "" {
		return m.Namespace
	}
	if envVal := os.Getenv("COORD_METRICS_NAMESPACE"); envVal != "" {
		return envVal
	}
	return "space_game"
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV COORD_CONFIG или возвращает nil, nil.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("COORD_CONFIG")
		if path == "" {
			return nil, nil // конфиг не задан — использовать дефолты
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
