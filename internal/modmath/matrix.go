package modmath

import (
	"fmt"
	"math/big"

	"github.com/cipherloom-go/internal/alphabet"
)

// Matrix is a dense square integer matrix stored row-major
type Matrix [][]int

// NewMatrix returns an n×n zero matrix
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]int, n)
	}
	return m
}

// Identity returns the n×n identity matrix
func Identity(n int) Matrix {
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m[i][i] = 1
	}
	return m
}

// SquareRoot returns r with r*r == n, or false when n is not a perfect square
func SquareRoot(n int) (int, bool) {
	if n < 0 {
		return 0, false
	}
	r := 0
	for r*r < n {
		r++
	}
	return r, r*r == n
}

// SquareFromSlice reshapes values row-major into an n×n matrix.
// len(values) must be a non-zero perfect square.
func SquareFromSlice(values []int) (Matrix, error) {
	n, ok := SquareRoot(len(values))
	if !ok || n == 0 {
		return nil, fmt.Errorf("%w: %d values", ErrNotSquare, len(values))
	}
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		copy(m[i], values[i*n:(i+1)*n])
	}
	return m, nil
}

// Size returns the dimension n of the matrix
func (m Matrix) Size() int {
	return len(m)
}

// Minor returns m with row i and column j removed
func (m Matrix) Minor(i, j int) Matrix {
	n := len(m)
	out := make(Matrix, 0, n-1)
	for r := 0; r < n; r++ {
		if r == i {
			continue
		}
		row := make([]int, 0, n-1)
		row = append(row, m[r][:j]...)
		row = append(row, m[r][j+1:]...)
		out = append(out, row)
	}
	return out
}

// cofactorCutoff is the largest size handled by plain cofactor expansion.
// Above it determinants use Bareiss elimination over big integers.
const cofactorCutoff = 3

// Determinant computes det(m) exactly. Small matrices use cofactor expansion
// along the first row, larger ones fraction-free Bareiss elimination.
func (m Matrix) Determinant() *big.Int {
	if len(m) <= cofactorCutoff {
		return big.NewInt(int64(m.expand()))
	}
	return m.bareiss()
}

func (m Matrix) expand() int {
	switch len(m) {
	case 0:
		return 1
	case 1:
		return m[0][0]
	case 2:
		return m[0][0]*m[1][1] - m[0][1]*m[1][0]
	}

	det := 0
	sign := 1
	for c := range m[0] {
		det += sign * m[0][c] * m.Minor(0, c).expand()
		sign = -sign
	}
	return det
}

// bareiss runs O(n³) fraction-free elimination; every division is exact
func (m Matrix) bareiss() *big.Int {
	n := len(m)
	a := m.toBig()

	neg := false
	prev := big.NewInt(1)
	for k := 0; k < n-1; k++ {
		if a[k][k].Sign() == 0 {
			pivot := -1
			for i := k + 1; i < n; i++ {
				if a[i][k].Sign() != 0 {
					pivot = i
					break
				}
			}
			if pivot < 0 {
				return new(big.Int)
			}
			a[k], a[pivot] = a[pivot], a[k]
			neg = !neg
		}

		for i := k + 1; i < n; i++ {
			for j := k + 1; j < n; j++ {
				t := new(big.Int).Mul(a[i][j], a[k][k])
				t.Sub(t, new(big.Int).Mul(a[i][k], a[k][j]))
				a[i][j] = t.Quo(t, prev)
			}
		}
		prev = a[k][k]
	}

	det := new(big.Int).Set(a[n-1][n-1])
	if neg {
		det.Neg(det)
	}
	return det
}

func (m Matrix) toBig() [][]*big.Int {
	out := make([][]*big.Int, len(m))
	for i, row := range m {
		out[i] = make([]*big.Int, len(row))
		for j, x := range row {
			out[i][j] = big.NewInt(int64(x))
		}
	}
	return out
}

// BigMatrix is an exact integer matrix whose entries may exceed int
type BigMatrix [][]*big.Int

// Mod reduces every entry into [0, mod)
func (b BigMatrix) Mod(mod int) Matrix {
	out := NewMatrix(len(b))
	bm := big.NewInt(int64(mod))
	r := new(big.Int)
	for i, row := range b {
		for j, x := range row {
			// Mod is Euclidean, so the result is already non-negative
			out[i][j] = int(r.Mod(x, bm).Int64())
		}
	}
	return out
}

// CofactorMatrix returns C with C[i][j] = (-1)^(i+j) * det(Minor(i, j))
func (m Matrix) CofactorMatrix() BigMatrix {
	n := len(m)
	if n == 1 {
		return BigMatrix{{big.NewInt(1)}}
	}

	out := make(BigMatrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]*big.Int, n)
		for j := 0; j < n; j++ {
			minorDet := m.Minor(i, j).Determinant()
			if (i+j)%2 == 1 {
				minorDet.Neg(minorDet)
			}
			out[i][j] = minorDet
		}
	}
	return out
}

// Adjugate returns the transpose of the cofactor matrix. For a non-singular
// matrix larger than the cofactor cutoff it is computed as det(m)·m⁻¹ by
// Gauss-Jordan elimination over the rationals, which stays O(n³).
func (m Matrix) Adjugate() BigMatrix {
	return m.adjugate(m.Determinant())
}

// adjugate is Adjugate with det(m) already known
func (m Matrix) adjugate(det *big.Int) BigMatrix {
	if len(m) > cofactorCutoff && det.Sign() != 0 {
		return m.adjugateFromInverse(det)
	}

	c := m.CofactorMatrix()
	n := len(c)
	out := make(BigMatrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]*big.Int, n)
		for j := 0; j < n; j++ {
			out[i][j] = c[j][i]
		}
	}
	return out
}

func (m Matrix) adjugateFromInverse(det *big.Int) BigMatrix {
	n := len(m)
	aug := make([][]*big.Rat, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]*big.Rat, 2*n)
		for j := 0; j < n; j++ {
			aug[i][j] = new(big.Rat).SetInt64(int64(m[i][j]))
			aug[i][n+j] = new(big.Rat)
		}
		aug[i][n+i].SetInt64(1)
	}

	for col := 0; col < n; col++ {
		pivot := col
		for pivot < n && aug[pivot][col].Sign() == 0 {
			pivot++
		}
		// det != 0 guarantees a pivot
		aug[col], aug[pivot] = aug[pivot], aug[col]

		inv := new(big.Rat).Inv(aug[col][col])
		for j := col; j < 2*n; j++ {
			aug[col][j].Mul(aug[col][j], inv)
		}
		for i := 0; i < n; i++ {
			if i == col || aug[i][col].Sign() == 0 {
				continue
			}
			f := new(big.Rat).Set(aug[i][col])
			for j := col; j < 2*n; j++ {
				aug[i][j].Sub(aug[i][j], new(big.Rat).Mul(f, aug[col][j]))
			}
		}
	}

	d := new(big.Rat).SetInt(det)
	out := make(BigMatrix, n)
	for i := 0; i < n; i++ {
		out[i] = make([]*big.Int, n)
		for j := 0; j < n; j++ {
			// adj = det·m⁻¹ has integer entries
			out[i][j] = new(big.Int).Set(new(big.Rat).Mul(d, aug[i][n+j]).Num())
		}
	}
	return out
}

// Transpose returns the transpose of m
func (m Matrix) Transpose() Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[j][i] = m[i][j]
		}
	}
	return out
}

func detMod(det *big.Int, mod int) int {
	return int(new(big.Int).Mod(det, big.NewInt(int64(mod))).Int64())
}

// IsInvertibleMod reports whether m has an inverse modulo mod
func (m Matrix) IsInvertibleMod(mod int) bool {
	return GCD(detMod(m.Determinant(), mod), mod) == 1
}

// InverseMod returns m⁻¹ mod mod, computed as adj(m) * det(m)⁻¹ entrywise.
// The determinant is computed once and shared with the adjugate.
func (m Matrix) InverseMod(mod int) (Matrix, error) {
	det := m.Determinant()
	detInv, err := ModInverse(detMod(det, mod), mod)
	if err != nil {
		return nil, fmt.Errorf("determinant %s mod %d: %w", det, mod, err)
	}

	adj := m.adjugate(det).Mod(mod)
	n := len(m)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = alphabet.Mod(detInv*adj[i][j], mod)
		}
	}
	return out, nil
}

// MulVec returns (m · v) mod mod, treating v as a column vector
func (m Matrix) MulVec(v []int, mod int) []int {
	out := make([]int, len(m))
	for i, row := range m {
		sum := 0
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = alphabet.Mod(sum, mod)
	}
	return out
}

// Mul returns (m · o) mod mod
func (m Matrix) Mul(o Matrix, mod int) Matrix {
	n := len(m)
	out := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0
			for k := 0; k < n; k++ {
				sum += m[i][k] * o[k][j]
			}
			out[i][j] = alphabet.Mod(sum, mod)
		}
	}
	return out
}

// Equal reports whether m and o hold the same entries
func (m Matrix) Equal(o Matrix) bool {
	if len(m) != len(o) {
		return false
	}
	for i := range m {
		if len(m[i]) != len(o[i]) {
			return false
		}
		for j := range m[i] {
			if m[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}
