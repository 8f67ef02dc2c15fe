package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/google/uuid"

	"github.com/annel0/space-game/internal/config"
	"github.com/annel0/space-game/internal/logging"
	"github.com/annel0/space-game/internal/spatial"
	"github.com/annel0/space-game/internal/vec"
)

func main() {
	mode := flag.String("mode", "info", "режим работы: info | convert | scenario")
	configPath := flag.String("config", "", "путь к YAML конфигурации (или ENV COORD_CONFIG)")
	x := flag.Float64("x", 0, "мировая координата X (режим convert)")
	y := flag.Float64("y", 0, "мировая координата Y (режим convert)")
	z := flag.Float64("z", 0, "мировая координата Z (режим convert)")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("coordtool"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	level, err := logging.ParseLevel(cfg.Log.GetConsoleLevel())
	if err != nil {
		logging.Warn("%v, используется INFO", err)
	}
	logging.SetDefaultConsoleLevel(level)

	switch *mode {
	case "info":
		printInfo()
	case "convert":
		if err := runConvert(vec.Double3{X: *x, Y: *y, Z: *z}); err != nil {
			logging.Error("❌ Ошибка конвертации: %v", err)
			os.Exit(1)
		}
	case "scenario":
		if err := runScenario(cfg); err != nil {
			logging.Error("❌ Ошибка сценария: %v", err)
			os.Exit(1)
		}
	default:
		logging.Error("❌ Неизвестный режим: %s", *mode)
		os.Exit(1)
	}
}

// printInfo выводит контрактные константы системы координат
func printInfo() {
	fmt.Printf("Размер ячейки:          %.0f ед.\n", spatial.CellSize)
	fmt.Printf("Порог гистерезиса:      %.0f ед.\n", spatial.HysteresisThreshold)
	fmt.Printf("Предел отн. смещения:   %.0f ед.\n", spatial.RelativeBound)
	fmt.Printf("Диапазон координат:     %.6g .. %.6g ед. (±%.1f а.е.)\n",
		spatial.MinCoordinate, spatial.MaxCoordinate, spatial.MaxCoordinate/spatial.AUDistance)
	fmt.Printf("Типичная точность:      %g ед.\n", spatial.TypicalPrecision)
	fmt.Printf("Минимальная точность:   %g ед.\n", spatial.MinPrecision)
}

// runConvert переводит абсолютную координату в пару (ячейка, смещение) и обратно
func runConvert(world vec.Double3) error {
	pos, err := spatial.FromDouble3(world)
	if err != nil {
		return err
	}

	back := pos.ToDouble3()
	fmt.Printf("Мировая координата: (%g, %g, %g)\n", world.X, world.Y, world.Z)
	fmt.Printf("Ячейка:             (%d, %d, %d)\n", pos.Global.X, pos.Global.Y, pos.Global.Z)
	fmt.Printf("Смещение:           (%g, %g, %g)\n", pos.Local.X, pos.Local.Y, pos.Local.Z)
	fmt.Printf("Восстановлено:      (%g, %g, %g)\n", back.X, back.Y, back.Z)
	fmt.Printf("Ошибка округления:  (%g, %g, %g)\n", back.X-world.X, back.Y-world.Y, back.Z-world.Z)
	return nil
}

// runScenario прогоняет сценарий движения из конфигурации через
// относительный путь и сравнивает результат с суммой в двойной точности
func runScenario(cfg *config.Config) error {
	start := vec.Double3{X: cfg.Scenario.Start.X, Y: cfg.Scenario.Start.Y, Z: cfg.Scenario.Start.Z}

	pos, err := spatial.FromDouble3(start)
	if err != nil {
		return err
	}

	metrics := spatial.NewIndexMetrics(cfg.Metrics.GetNamespace(), nil)
	index := spatial.NewPositionIndex(metrics)
	objectID := uuid.New()
	index.Set(objectID, pos)

	// Точная сумма в двойной точности — эталон для оценки дрейфа
	truth := start
	steps := 0

	repeat := cfg.Scenario.GetRepeat()
	for r := 0; r < repeat; r++ {
		for _, s := range cfg.Scenario.Steps {
			delta := vec.Float3{X: s.X, Y: s.Y, Z: s.Z}

			prevCell := pos.Global
			pos, err = spatial.Advance(pos, delta)
			if err != nil {
				return fmt.Errorf("шаг %d: %w", steps, err)
			}
			if !pos.Global.Equals(prevCell) {
				logging.Debug("Шаг %d: переход в ячейку (%d, %d, %d)",
					steps, pos.Global.X, pos.Global.Y, pos.Global.Z)
			}

			index.Set(objectID, pos)
			truth = truth.Add(delta.ToDouble3())
			steps++
		}
	}

	world := pos.ToDouble3()
	drift := math.Sqrt((world.X-truth.X)*(world.X-truth.X) +
		(world.Y-truth.Y)*(world.Y-truth.Y) +
		(world.Z-truth.Z)*(world.Z-truth.Z))

	logging.Info("✅ Сценарий завершён: %d шагов", steps)
	logging.Info("Итоговая ячейка: (%d, %d, %d), смещение: (%g, %g, %g)",
		pos.Global.X, pos.Global.Y, pos.Global.Z, pos.Local.X, pos.Local.Y, pos.Local.Z)
	logging.Info("Мировая позиция: (%.3f, %.3f, %.3f), эталон: (%.3f, %.3f, %.3f)",
		world.X, world.Y, world.Z, truth.X, truth.Y, truth.Z)
	logging.Info("Дрейф относительно двойной точности: %.6f ед.", drift)
	logging.Info("%s", index.Stats())
	return nil
}
