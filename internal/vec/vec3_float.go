package vec

import "math"

// EpsilonFloat3 — абсолютный допуск сравнения компонент Float3.
// Выбран близко к машинному эпсилону float32 на единичном масштабе,
// без масштабирования под величину операндов.
const EpsilonFloat3 float32 = 1e-6

// Float3 представляет трёхмерный вектор с координатами одинарной точности.
// Служит локальным смещением внутри ячейки.
type Float3 struct {
	X float32
	Y float32
	Z float32
}

// Add складывает два вектора
func (v Float3) Add(other Float3) Float3 {
	return Float3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Float3) Sub(other Float3) Float3 {
	return Float3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Float3) Mul(scalar float32) Float3 {
	return Float3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Div делит вектор на скаляр
func (v Float3) Div(scalar float32) Float3 {
	return Float3{
		X: v.X / scalar,
		Y: v.Y / scalar,
		Z: v.Z / scalar,
	}
}

// ToDouble3 расширяет вектор до двойной точности
func (v Float3) ToDouble3() Double3 {
	return Double3{
		X: float64(v.X),
		Y: float64(v.Y),
		Z: float64(v.Z),
	}
}

// Equals проверяет равенство векторов с допуском EpsilonFloat3 по каждой оси
func (v Float3) Equals(other Float3) bool {
	return math.Abs(float64(v.X-other.X)) < float64(EpsilonFloat3) &&
		math.Abs(float64(v.Y-other.Y)) < float64(EpsilonFloat3) &&
		math.Abs(float64(v.Z-other.Z)) < float64(EpsilonFloat3)
}
