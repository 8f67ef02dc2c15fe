package vec

// Int3 представляет трёхмерный вектор с целочисленными 32-битными координатами.
// Служит индексом ячейки в крупномасштабной системе координат.
type Int3 struct {
	X int32
	Y int32
	Z int32
}

// Add складывает два вектора
func (v Int3) Add(other Int3) Int3 {
	return Int3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Sub вычитает вектор
func (v Int3) Sub(other Int3) Int3 {
	return Int3{
		X: v.X - other.X,
		Y: v.Y - other.Y,
		Z: v.Z - other.Z,
	}
}

// Mul умножает вектор на скаляр
func (v Int3) Mul(scalar int32) Int3 {
	return Int3{
		X: v.X * scalar,
		Y: v.Y * scalar,
		Z: v.Z * scalar,
	}
}

// Equals проверяет точное равенство векторов
func (v Int3) Equals(other Int3) bool {
	return v.X == other.X && v.Y == other.Y && v.Z == other.Z
}
