package histo

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
)

func TestData(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1, -1}
	orig := append([]float64(nil), rawdata...)
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata, 7)
	if !floats.Equal(rawdata, orig) {
		Te.Error("NewData modified the raw data")
	}
	//8, 44, 32 and -1 are out of range
	if D.Total() != len(rawdata)-4 || D.Sum() != float64(D.Total()) {
		Te.Errorf("wrong total %d or sum %v", D.Total(), D.Sum())
	}
	expected := []float64{2, 6, 2, 7, 9}
	if !floats.Equal(D.View(), expected) {
		Te.Errorf("expected %v, got %v", expected, D.View())
	}
	D.AddData(0.5, 7.99, 8, 100)
	expected[0]++
	expected[4]++
	if !floats.Equal(D.View(), expected) || D.Total() != 28 {
		Te.Errorf("expected %v, got %v, total %d", expected, D.View(), D.Total())
	}
	D.Normalize()
	if math.Abs(D.Sum()-1) > 1e-12 || !D.Normalized() {
		Te.Errorf("a normalized histogram should add up to 1, got %v", D.Sum())
	}
	//points can still be added to normalized histograms
	D.AddData(2.5)
	D.UnNormalize()
	expected[2]++
	if !floats.EqualApprox(D.View(), expected, 1e-10) {
		Te.Errorf("expected %v, got %v", expected, D.View())
	}
	S := NewData([]float64{0, 1, 2, 3, 4, 8}, nil)
	S.Add(D, D)
	if S.Sum() != 2*D.Sum() || S.ID() != -1 || D.ID() != 7 {
		Te.Errorf("wrong sum %v or IDs %d %d", S, S.ID(), D.ID())
	}
	fmt.Println(D)
}

func TestHistoIO(Te *testing.T) {
	M := NewMatrix(3, 3, []float64{0, 1, 2, 3, 4, 8})
	M.Fill()
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	M.NewHisto(0, 1, nil, rawdata, 1)
	M.AddData(2, 2, 0.1, 0.2)
	j, err := json.Marshal(M)
	if err != nil {
		Te.Fatal(err)
	}
	M2 := new(Matrix)
	if err := json.Unmarshal(j, M2); err != nil {
		Te.Fatal(err)
	}
	if r, c := M2.Dims(); r != 3 || c != 3 {
		Te.Fatalf("wrong dimensions %d %d", r, c)
	}
	if !floats.Equal(M2.View(0, 1).View(), M.View(0, 1).View()) || M2.View(2, 2).View()[0] != 2 {
		Te.Errorf("the matrix changed after a JSON round trip:\n%v\n%v", M, M2)
	}
	if err := M.Check(3, 0); err == nil {
		Te.Error("row 3 is out of range")
	}
	sums, err := M.FromAll(func(D *Data) (float64, error) { return D.Sum(), nil })
	if err != nil {
		Te.Fatal(err)
	}
	if sums[2][2] != 2 || sums[1][1] != 0 {
		Te.Errorf("wrong sums %v", sums)
	}
}

var _ plotter.GridXYZ = (*Rama)(nil)

func TestRama(Te *testing.T) {
	if _, err := NewRama(7); err == nil {
		Te.Error("7 doesn't divide 360")
	}
	R, err := NewRama(10)
	if err != nil {
		Te.Fatal(err)
	}
	if c, r := R.Dims(); c != 36 || r != 36 {
		Te.Fatalf("wrong dimensions %d %d", c, r)
	}
	phi := []float64{-65, -63, -61, -120, 180, math.NaN()}
	psi := []float64{-45, -42, -41, 130, 180, 0}
	if err := R.Add(phi, psi); err != nil {
		Te.Fatal(err)
	}
	if err := R.Add(phi[:2], psi); err == nil {
		Te.Error("phi and psi of different lengths should be an error")
	}
	if R.Total() != 5 {
		Te.Errorf("expected 5 pairs, got %d", R.Total())
	}
	//-65,-63 and -61 fall in the bin [-70,-60) [-50,-40), 11 and 13.
	if R.Z(11, 13) != 3 || R.Max() != 3 {
		Te.Errorf("wrong count %v or maximum %v", R.Z(11, 13), R.Max())
	}
	if R.X(11) != -65 || R.Y(13) != -45 {
		Te.Errorf("wrong bin centers %v %v", R.X(11), R.Y(13))
	}
	//180 is the same as -180
	if R.Z(0, 0) != 1 || math.Abs(R.Density(0, 0)-0.2) > 1e-12 {
		Te.Errorf("wrong count at the corner %v", R.Z(0, 0))
	}
	j, err := json.Marshal(R)
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(len(j), "bytes of JSON")
}
