package spatial

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/space-game/internal/vec"
)

// PositionIndex — пространственный индекс объектов по ячейкам
// крупномасштабной сетки. Ключом ячейки служит Global-индекс позиции,
// поэтому размер ячейки индекса совпадает с CellSize и отдельной
// настройки не требует.
//
// Сам LargePosition — простое значение без синхронизации; индекс же
// является разделяемым контейнером и защищён мьютексом.
type PositionIndex struct {
	mu      sync.RWMutex
	cells   map[vec.Int3]map[uuid.UUID]LargePosition
	objects map[uuid.UUID]LargePosition
	metrics *IndexMetrics
}

// NewPositionIndex создаёт пустой индекс. metrics может быть nil —
// тогда индекс работает без наблюдаемости.
func NewPositionIndex(metrics *IndexMetrics) *PositionIndex {
	return &PositionIndex{
		cells:   make(map[vec.Int3]map[uuid.UUID]LargePosition),
		objects: make(map[uuid.UUID]LargePosition),
		metrics: metrics,
	}
}

// Set добавляет объект или обновляет его позицию. Перенос между ячейками
// выполняется только при смене Global — гистерезис позиции напрямую
// сокращает количество перестановок в индексе.
func (pi *PositionIndex) Set(id uuid.UUID, pos LargePosition) {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	old, exists := pi.objects[id]
	if exists && old.Global.Equals(pos.Global) {
		// Ячейка не изменилась — достаточно обновить позицию.
		pi.objects[id] = pos
		pi.cells[old.Global][id] = pos
		return
	}

	if exists {
		pi.removeFromCell(old.Global, id)
		if pi.metrics != nil {
			pi.metrics.CellSwitches.Inc()
		}
	}

	bucket, ok := pi.cells[pos.Global]
	if !ok {
		bucket = make(map[uuid.UUID]LargePosition)
		pi.cells[pos.Global] = bucket
	}
	bucket[id] = pos
	pi.objects[id] = pos

	pi.updateGauges()
}

// Get возвращает позицию объекта
func (pi *PositionIndex) Get(id uuid.UUID) (LargePosition, bool) {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	pos, ok := pi.objects[id]
	return pos, ok
}

// Remove удаляет объект из индекса
func (pi *PositionIndex) Remove(id uuid.UUID) {
	pi.mu.Lock()
	defer pi.mu.Unlock()

	pos, exists := pi.objects[id]
	if !exists {
		return
	}

	delete(pi.objects, id)
	pi.removeFromCell(pos.Global, id)
	pi.updateGauges()
}

// QueryCell возвращает идентификаторы всех объектов в ячейке
func (pi *PositionIndex) QueryCell(cell vec.Int3) []uuid.UUID {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	bucket := pi.cells[cell]
	result := make([]uuid.UUID, 0, len(bucket))
	for id := range bucket {
		result = append(result, id)
	}
	return result
}

// QueryRadius возвращает объекты в радиусе radius от center. Кандидаты
// отбираются по ячейкам, точное расстояние уточняется в двойной точности
// через ToDouble3 — сравнение корректно и между далёкими ячейками.
func (pi *PositionIndex) QueryRadius(center LargePosition, radius float64) []uuid.UUID {
	if radius < 0 {
		return nil
	}

	centerWorld := center.ToDouble3()

	pi.mu.RLock()
	defer pi.mu.RUnlock()

	result := make([]uuid.UUID, 0)
	for cell, bucket := range pi.cells {
		if !cellNearby(cell, center.Global, radius) {
			continue
		}
		for id, pos := range bucket {
			if centerWorld.DistanceTo(pos.ToDouble3()) <= radius {
				result = append(result, id)
			}
		}
	}
	return result
}

// Count возвращает количество объектов в индексе
func (pi *PositionIndex) Count() int {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return len(pi.objects)
}

// CellCount возвращает количество непустых ячеек
func (pi *PositionIndex) CellCount() int {
	pi.mu.RLock()
	defer pi.mu.RUnlock()
	return len(pi.cells)
}

// Stats возвращает сводку по индексу
func (pi *PositionIndex) Stats() string {
	pi.mu.RLock()
	defer pi.mu.RUnlock()

	maxPerCell := 0
	for _, bucket := range pi.cells {
		if len(bucket) > maxPerCell {
			maxPerCell = len(bucket)
		}
	}

	avgPerCell := 0.0
	if len(pi.cells) > 0 {
		avgPerCell = float64(len(pi.objects)) / float64(len(pi.cells))
	}

	return fmt.Sprintf("PositionIndex: %d объектов, %d ячеек, в среднем %.2f объектов/ячейку, максимум %d",
		len(pi.objects), len(pi.cells), avgPerCell, maxPerCell)
}

// removeFromCell убирает объект из ячейки, удаляя опустевшую ячейку.
// Вызывается под write-lock.
func (pi *PositionIndex) removeFromCell(cell vec.Int3, id uuid.UUID) {
	bucket, ok := pi.cells[cell]
	if !ok {
		return
	}
	delete(bucket, id)
	if len(bucket) == 0 {
		delete(pi.cells, cell)
	}
}

// updateGauges обновляет gauge-метрики. Вызывается под write-lock.
func (pi *PositionIndex) updateGauges() {
	if pi.metrics == nil {
		return
	}
	pi.metrics.Objects.Set(float64(len(pi.objects)))
	pi.metrics.Cells.Set(float64(len(pi.cells)))
}

// cellNearby проверяет, может ли ячейка cell содержать точки в радиусе
// radius от центра ячейки origin. Отбор грубый (по осям, с запасом в
// размер ячейки и максимальный Local); точное расстояние проверяется
// по мировым координатам.
func cellNearby(cell, origin vec.Int3, radius float64) bool {
	reach := radius + 2*float64(CellSize)
	cellSize := float64(CellSize)

	dx := float64(int64(cell.X)-int64(origin.X)) * cellSize
	dy := float64(int64(cell.Y)-int64(origin.Y)) * cellSize
	dz := float64(int64(cell.Z)-int64(origin.Z)) * cellSize

	return dx >= -reach && dx <= reach &&
		dy >= -reach && dy <= reach &&
		dz >= -reach && dz <= reach
}
