package vec

import "math"

// EpsilonDouble3 — абсолютный допуск сравнения компонент Double3.
// Выбран близко к машинному эпсилону float64 на единичном масштабе.
const EpsilonDouble3 float64 = 1e-15

// Double3 представляет трёхмерный вектор с координатами двойной точности.
// Служит абсолютной мировой координатой.
type Double3 struct {
	X float64
	Y float64
	Z float64
}

// Add складывает два вектора
func (v Double3) Add(other Double3) Double3 {
	return Double3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Double3) Sub(other Double3) Double3 {
	return Double3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Double3) Mul(scalar float64) Double3 {
	return Double3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Div делит вектор на скаляр
func (v Double3) Div(scalar float64) Double3 {
	return Double3{
		X: v.X / scalar,
		Y: v.Y / scalar,
		Z: v.Z / scalar,
	}
}

// DistanceTo вычисляет расстояние до другой точки
func (v Double3) DistanceTo(other Double3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Equals проверяет равенство векторов с допуском EpsilonDouble3 по каждой оси
func (v Double3) Equals(other Double3) bool {
	return math.Abs(v.X-other.X) < EpsilonDouble3 &&
		math.Abs(v.Y-other.Y) < EpsilonDouble3 &&
		math.Abs(v.Z-other.Z) < EpsilonDouble3
}
