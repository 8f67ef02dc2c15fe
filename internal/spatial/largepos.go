package spatial

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/space-game/internal/vec"
)

// Константы контракта крупномасштабной системы координат.
const (
	// CellSize — размер кубической ячейки мира в мировых единицах.
	// ULP float32 на 2048.0 = 0.000244
	CellSize float32 = 2048.0

	// HysteresisThreshold — порог переназначения ячейки.
	// Естественная граница ячейки — ±CellSize/2, но она расширена до
	// ±0.75*CellSize, чтобы объект, колеблющийся у границы, не переключал
	// ячейку на каждом шаге.
	HysteresisThreshold float32 = CellSize * 0.75

	// MaxCellDelta — максимальная разница индексов ячеек по оси, при которой
	// две позиции ещё могут обозначать одну и ту же точку мира. Гистерезис
	// ограничивает дрейф несколькими ячейками; RelativeBound выводится
	// отсюда, а не дублируется отдельным числом.
	MaxCellDelta int64 = 3

	// RelativeBound — предел относительного смещения по каждой оси.
	// За его пределами float32 теряет точность относительно масштаба Local.
	// ULP float32 на 6144.0 = 0.000488
	RelativeBound float32 = float32(MaxCellDelta) * CellSize

	// PositionTolerance — абсолютный допуск сравнения позиций.
	PositionTolerance float32 = 1e-6

	// Характеристики точности (документируют, но не проверяются кодом).
	TypicalPrecision float32 = 0.000244 // ULP float32 на CellSize
	MinPrecision     float32 = 0.000488 // худший случай при максимальном Local

	// AUDistance — одна астрономическая единица в метрах.
	AUDistance float64 = 149597870700.0

	// Пределы абсолютных координат: диапазон int32-индекса ячейки, умноженный
	// на размер ячейки. Примерно ±4.398e12 мировых единиц (±29.3 а.е. при
	// единице в один метр).
	MinCoordinate float64 = float64(math.MinInt32) * float64(CellSize)
	MaxCoordinate float64 = float64(math.MaxInt32) * float64(CellSize)
)

// Ошибки нарушения контракта. Конкретные сообщения оборачивают эти
// значения, поэтому вызывающий код проверяет их через errors.Is.
var (
	ErrOutOfRange    = errors.New("координата вне поддерживаемого диапазона (~±29.3 а.е.)")
	ErrRelativeBound = errors.New("смещение слишком велико для относительного представления во float32")
)

// LargePosition — позиция высокой точности в большом мире, разбитом на
// кубические ячейки размера CellSize. Пара из двух слоёв:
//
//	Global — индекс ячейки; центр ячейки = Global * CellSize,
//	Local  — смещение float32 от центра ячейки.
//
// Абсолютная позиция: world = Global*CellSize + Local (в двойной точности).
// Ячейка (0,0,0) покрывает [-CellSize/2, CellSize/2) по каждой оси.
//
// Из-за гистерезиса (см. FromFloat3) пара (Global, Local) не уникальна:
// одна и та же точка мира может иметь разные представления, поэтому
// сравнение позиций выполняется через Equals, а не по полям.
//
// Нулевое значение — позиция в центре ячейки (0,0,0). Значение копируется
// свободно и после создания не изменяется; операции возвращают новые
// значения.
type LargePosition struct {
	// Global — координаты ячейки (центр ячейки)
	Global vec.Int3

	// Local — смещение от центра ячейки
	Local vec.Float3
}

// FromDouble3 строит позицию из абсолютных мировых координат двойной
// точности. Всегда выбирает ближайший центр ячейки, минимизируя Local —
// это путь без потери точности для сколь угодно больших прыжков
// (телепорты, начальная расстановка).
//
// Округление — к ближайшему целому, половина от нуля (math.Round):
// координата ровно 1024 при CellSize=2048 попадает в ячейку 1, а -1024 —
// в ячейку -1.
func FromDouble3(w vec.Double3) (LargePosition, error) {
	if err := checkCoordinateRange(w); err != nil {
		return LargePosition{}, err
	}

	cell := float64(CellSize)
	global := vec.Int3{
		X: int32(math.Round(w.X / cell)),
		Y: int32(math.Round(w.Y / cell)),
		Z: int32(math.Round(w.Z / cell)),
	}

	// Вычитание выполняется в double до сужения во float32 — именно это
	// сохраняет полную точность смещения независимо от величины Global.
	local := vec.Float3{
		X: float32(w.X - float64(global.X)*cell),
		Y: float32(w.Y - float64(global.Y)*cell),
		Z: float32(w.Z - float64(global.Z)*cell),
	}

	return LargePosition{Global: global, Local: local}, nil
}

// MustFromDouble3 — вариант FromDouble3 для заведомо валидного входа.
// Паникует при нарушении контракта; предназначен для литералов и тестов.
func MustFromDouble3(w vec.Double3) LargePosition {
	p, err := FromDouble3(w)
	if err != nil {
		panic(err)
	}
	return p
}

// ToDouble3 возвращает абсолютные мировые координаты двойной точности.
// Тотальная операция; канонический способ получить глобально сравнимую
// координату (например, для проверки расстояний между разными системами
// отсчёта).
func (p LargePosition) ToDouble3() vec.Double3 {
	cell := float64(CellSize)
	return vec.Double3{
		X: float64(p.Global.X)*cell + float64(p.Local.X),
		Y: float64(p.Global.Y)*cell + float64(p.Local.Y),
		Z: float64(p.Global.Z)*cell + float64(p.Local.Z),
	}
}

// ToFloat3 выражает позицию как float32-смещение от центра произвольной
// ячейки origin. Возвращает ErrRelativeBound, если по какой-то оси
// смещение превышает RelativeBound: такой результат недостоверен во
// float32, и вызывающему коду следует работать через ToDouble3/FromDouble3.
func (p LargePosition) ToFloat3(origin vec.Int3) (vec.Float3, error) {
	rx, ry, rz := p.relativeTo(origin)

	bound := float64(RelativeBound)
	if !(math.Abs(rx) <= bound && math.Abs(ry) <= bound && math.Abs(rz) <= bound) {
		return vec.Float3{}, fmt.Errorf("%w: смещение (%.1f, %.1f, %.1f) от ячейки (%d, %d, %d)",
			ErrRelativeBound, rx, ry, rz, origin.X, origin.Y, origin.Z)
	}

	return vec.Float3{X: float32(rx), Y: float32(ry), Z: float32(rz)}, nil
}

// relativeTo — пересчёт в систему отсчёта ячейки origin без проверки
// границ. Разность индексов считается в int64: в худшем случае это
// MaxInt32 - MinInt32, что переполняет int32.
func (p LargePosition) relativeTo(origin vec.Int3) (rx, ry, rz float64) {
	cell := float64(CellSize)
	dx := int64(p.Global.X) - int64(origin.X)
	dy := int64(p.Global.Y) - int64(origin.Y)
	dz := int64(p.Global.Z) - int64(origin.Z)

	rx = float64(dx)*cell + float64(p.Local.X)
	ry = float64(dy)*cell + float64(p.Local.Y)
	rz = float64(dz)*cell + float64(p.Local.Z)
	return rx, ry, rz
}

// FromFloat3 строит позицию из смещения local относительно центра ячейки
// origin. Это штатный путь инкрементального движения: вызывающий код
// читает текущее смещение от последней известной ячейки объекта,
// прибавляет дельту перемещения и возвращает сумму сюда.
//
// Пока все оси лежат в пределах ±HysteresisThreshold, позиция остаётся в
// ячейке origin — это и есть полоса гистерезиса. Иначе ячейка назначается
// заново через FromDouble3 (все три оси сразу), что сводит Local обратно
// к окрестности нуля без потери точности.
//
// Смещение, превышающее RelativeBound по какой-либо оси, отклоняется с
// ErrRelativeBound: такие перемещения должны идти через ToDouble3 +
// FromDouble3.
func FromFloat3(origin vec.Int3, local vec.Float3) (LargePosition, error) {
	if !(absf(local.X) <= RelativeBound && absf(local.Y) <= RelativeBound && absf(local.Z) <= RelativeBound) {
		return LargePosition{}, fmt.Errorf("%w: вход (%.1f, %.1f, %.1f) для ячейки (%d, %d, %d)",
			ErrRelativeBound, local.X, local.Y, local.Z, origin.X, origin.Y, origin.Z)
	}

	if absf(local.X) <= HysteresisThreshold && absf(local.Y) <= HysteresisThreshold && absf(local.Z) <= HysteresisThreshold {
		// Внутри полосы гистерезиса — остаёмся в ячейке origin.
		return LargePosition{Global: origin, Local: local}, nil
	}

	cell := float64(CellSize)
	world := vec.Double3{
		X: float64(origin.X)*cell + float64(local.X),
		Y: float64(origin.Y)*cell + float64(local.Y),
		Z: float64(origin.Z)*cell + float64(local.Z),
	}
	return FromDouble3(world)
}

// MustFromFloat3 — вариант FromFloat3 для заведомо валидного входа.
// Паникует при нарушении контракта.
func MustFromFloat3(origin vec.Int3, local vec.Float3) LargePosition {
	p, err := FromFloat3(origin, local)
	if err != nil {
		panic(err)
	}
	return p
}

// Advance смещает позицию на delta. Короткие перемещения идут по
// относительному пути через FromFloat3; если суммарное смещение выходит
// за RelativeBound, Advance прозрачно переходит на путь двойной точности,
// так что точность не теряется и при больших одиночных прыжках.
func Advance(p LargePosition, delta vec.Float3) (LargePosition, error) {
	moved := p.Local.Add(delta)
	if absf(moved.X) <= RelativeBound && absf(moved.Y) <= RelativeBound && absf(moved.Z) <= RelativeBound {
		return FromFloat3(p.Global, moved)
	}
	return FromDouble3(p.ToDouble3().Add(delta.ToDouble3()))
}

// Equals сравнивает фактические мировые позиции, а не внутреннее
// представление: одна и та же точка мира может иметь разные пары
// (Global, Local). Допуск — PositionTolerance по каждой оси.
//
// Реализация асимметрична (other перепроецируется в систему отсчёта p),
// но результат симметричен: a.Equals(b) ⇔ b.Equals(a).
func (p LargePosition) Equals(other LargePosition) bool {
	// Ранний выход: ячейки дальше MaxCellDelta не могут представлять одну
	// точку. Разность в int64 — иначе MaxInt32 - MinInt32 переполняется.
	dx := int64(p.Global.X) - int64(other.Global.X)
	dy := int64(p.Global.Y) - int64(other.Global.Y)
	dz := int64(p.Global.Z) - int64(other.Global.Z)

	if absi(dx) > MaxCellDelta || absi(dy) > MaxCellDelta || absi(dz) > MaxCellDelta {
		return false
	}

	// Перепроецируем other в систему отсчёта p. Проверка RelativeBound не
	// нужна: ранний выход уже ограничил разность ячеек.
	rx, ry, rz := other.relativeTo(p.Global)

	tol := float64(PositionTolerance)
	return math.Abs(float64(p.Local.X)-rx) < tol &&
		math.Abs(float64(p.Local.Y)-ry) < tol &&
		math.Abs(float64(p.Local.Z)-rz) < tol
}

// checkCoordinateRange проверяет, что абсолютная координата лежит в
// поддерживаемом диапазоне. Сравнение написано так, что NaN не проходит
// ни одну из проверок и тоже отклоняется.
func checkCoordinateRange(w vec.Double3) error {
	if !(w.X >= MinCoordinate && w.X <= MaxCoordinate) {
		return fmt.Errorf("%w: X = %g", ErrOutOfRange, w.X)
	}
	if !(w.Y >= MinCoordinate && w.Y <= MaxCoordinate) {
		return fmt.Errorf("%w: Y = %g", ErrOutOfRange, w.Y)
	}
	if !(w.Z >= MinCoordinate && w.Z <= MaxCoordinate) {
		return fmt.Errorf("%w: Z = %g", ErrOutOfRange, w.Z)
	}
	return nil
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func absi(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
