/*
 * gocoords.go, part of gorama.
 *
 * Copyright 2024 Raul Mera <rmeraaatacademicosdotutadotcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//AppZero is used to correct floating point
//errors. Every norm equal or less than this is considered zero.
const AppZero float64 = 0.000000000001

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
//Panics if vecs is not positive, as gonum does not allow empty matrices.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//METHODS

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) [3]float64 {
	var ret [3]float64
	copy(ret[:], F.RawRowView(i))
	return ret
}

//AddVec adds the vector vec to each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.Vec(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		floats.AddTo(f, a, v[:])
	}
}

//SubVec subtracts the vector vec from each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.Vec(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		floats.SubTo(f, a, v[:])
	}
}

//SomeVecs puts in the receiver the vectors of A with the indexes in clist,
//in the same order as clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, ac := A.Dims()
	fr, fc := F.Dims()
	if ac != fc || fr != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar {
			panic(ErrShape)
		}
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	F.crossRow(0, a.RawRowView(0), b.RawRowView(0))
}

//CrossVecs puts in the ith vector of the receiver the cross product of the
//ith vectors of A and B, for every i. The receiver can be A or B.
func (F *Matrix) CrossVecs(A, B *Matrix) {
	n := F.NVecs()
	if A.NVecs() != n || B.NVecs() != n {
		panic(ErrNoCrossProduct)
	}
	for i := 0; i < n; i++ {
		F.crossRow(i, A.RawRowView(i), B.RawRowView(i))
	}
}

//both a and b are read before anything is written, so the
//row can alias either of them.
func (F *Matrix) crossRow(i int, a, b []float64) {
	x := a[1]*b[2] - a[2]*b[1]
	y := a[2]*b[0] - a[0]*b[2]
	z := a[0]*b[1] - a[1]*b[0]
	f := F.RawRowView(i)
	f[0], f[1], f[2] = x, y, z
}

//DotVecs returns a slice with the dot product of each vector of the receiver with the
//corresponding vector of B. If dest is given and has enough capacity,
//it is used to store the results.
func (F *Matrix) DotVecs(B *Matrix, dest ...[]float64) []float64 {
	n := F.NVecs()
	if B.NVecs() != n {
		panic(ErrShape)
	}
	ret := getSlice(n, dest...)
	for i := range ret {
		ret[i] = floats.Dot(F.RawRowView(i), B.RawRowView(i))
	}
	return ret
}

//VecNorms returns a slice with the euclidean norm of each vector in the receiver.
func (F *Matrix) VecNorms(dest ...[]float64) []float64 {
	ret := getSlice(F.NVecs(), dest...)
	for i := range ret {
		ret[i] = floats.Norm(F.RawRowView(i), 2)
	}
	return ret
}

//ScaleByCol scales each column of matrix A by Col, putting the result
//in the receiver. In other words, the ith vector of A is multiplied
//by the ith element of Col.
func (F *Matrix) ScaleByCol(A *Matrix, Col mat.Matrix) {
	ar, ac := A.Dims()
	cr, cc := Col.Dims()
	fr, fc := F.Dims()
	if ar != cr || cc > 1 || ar != fr || ac != fc {
		panic(ErrShape)
	}
	if F != A {
		F.Copy(A)
	}
	for i := 0; i < ac; i++ {
		temp := F.ColView(i)
		temp.Dense.MulElem(temp.Dense, Col)
	}
}

//UnitVecs puts in the receiver the vectors of A, each divided by its norm.
//If any vector has a norm equal to or smaller than AppZero, or not a number,
//a *ZeroVecError is returned, and the receiver is not modified.
func (F *Matrix) UnitVecs(A *Matrix) error {
	norms := A.VecNorms()
	for i, v := range norms {
		if !(v > AppZero) {
			return &ZeroVecError{Vec: i, Norm: v}
		}
		norms[i] = 1 / v
	}
	F.ScaleByCol(A, mat.NewVecDense(len(norms), norms))
	return nil
}

//Unit puts in the receiver the first vector of A, normalized.
func (F *Matrix) Unit(A *Matrix) error {
	return F.VecView(0).UnitVecs(A.VecView(0))
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, c := F.Dims()
	v := make([]string, r+2)
	v[0] = "\n["
	v[len(v)-1] = " ]"
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, F.Dense)
		if i == 0 {
			v[i+1] = fmt.Sprintf("%6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
			continue
		} else if i == r-1 {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
			continue
		} else {
			v[i+1] = fmt.Sprintf(" %6.2f %6.2f %6.2f\n", row[0], row[1], row[2])
		}
	}
	v[len(v)-2] = strings.Replace(v[len(v)-2], "\n", "", 1)
	return strings.Join(v, "")
}

//RotationAbout returns the 3x3 matrix that rotates row vectors
//by angle radians around the (unit) axis, so that A.Mul(A, R) rotates all the vectors in A.
func RotationAbout(axis [3]float64, angle float64) *mat.Dense {
	n := floats.Norm(axis[:], 2)
	x, y, z := axis[0]/n, axis[1]/n, axis[2]/n
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c
	//This is the usual column-vector rotation matrix, transposed, as we multiply row vectors from the right.
	return mat.NewDense(3, 3, []float64{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	})
}

func getSlice(N int, dest ...[]float64) []float64 {
	if len(dest) > 0 && cap(dest[0]) >= N {
		return dest[0][:N]
	}
	return make([]float64, N)
}
