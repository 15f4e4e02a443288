package chart

import "testing"

func TestSpecEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec Spec
		want bool
	}{
		{name: "pie without slices", spec: Spec{Kind: KindPie}, want: true},
		{name: "pie with zero slices", spec: Spec{Kind: KindPie, Slices: []Slice{{Label: "Success"}, {Label: "Failure"}}}, want: true},
		{name: "pie with one positive slice", spec: Spec{Kind: KindPie, Slices: []Slice{{Label: "Success", Value: 2}, {Label: "Failure"}}}, want: false},
		{name: "scatter without points", spec: Spec{Kind: KindScatter, Series: []Series{{Name: "FT"}}}, want: true},
		{name: "scatter with points", spec: Spec{Kind: KindScatter, Series: []Series{{Name: "FT", Points: []Point{{X: 1, Y: 1}}}}}, want: false},
		{name: "unknown kind", spec: Spec{Kind: "bar"}, want: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.spec.Empty(); got != tc.want {
				t.Fatalf("Empty() = %t, want %t", got, tc.want)
			}
		})
	}
}

func TestSpecTotals(t *testing.T) {
	t.Parallel()

	pie := Spec{Kind: KindPie, Slices: []Slice{{Value: 1.5}, {Value: 2.5}}}
	if got := pie.SliceTotal(); got != 4 {
		t.Fatalf("SliceTotal() = %v, want 4", got)
	}
	scatter := Spec{Kind: KindScatter, Series: []Series{
		{Name: "a", Points: []Point{{X: 1}, {X: 2}}},
		{Name: "b", Points: []Point{{X: 3}}},
	}}
	if got := scatter.PointCount(); got != 3 {
		t.Fatalf("PointCount() = %d, want 3", got)
	}
}
