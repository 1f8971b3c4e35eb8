package sim

import "testing"

func TestSegmentsIntersect_Crossing(t *testing.T) {
	if !SegmentsIntersect(V3(-1, 0, 0), V3(1, 0, 0), V3(0, 0, -1), V3(0, 0, 1)) {
		t.Fatal("perpendicular segments through the origin should intersect")
	}
}

func TestSegmentsIntersect_Parallel(t *testing.T) {
	if SegmentsIntersect(V3(0, 0, 0), V3(10, 0, 0), V3(0, 0, 1), V3(10, 0, 1)) {
		t.Fatal("parallel segments must not intersect")
	}
}

func TestSegmentsIntersect_Collinear(t *testing.T) {
	// Overlapping collinear segments give 0/0; treated as no crossing.
	if SegmentsIntersect(V3(0, 0, 0), V3(10, 0, 0), V3(5, 0, 0), V3(15, 0, 0)) {
		t.Fatal("collinear segments must report no intersection")
	}
}

func TestSegmentsIntersect_ShortOfEdge(t *testing.T) {
	if SegmentsIntersect(V3(0, 0, 0), V3(0, 0, 5), V3(-5, 0, 7.5), V3(5, 0, 7.5)) {
		t.Fatal("segment ending before the edge should not intersect")
	}
}

func TestSegmentsIntersect_TouchingEndpoint(t *testing.T) {
	if !SegmentsIntersect(V3(0, 0, 0), V3(0, 0, 5), V3(-1, 0, 5), V3(1, 0, 5)) {
		t.Fatal("an endpoint lying on the other segment counts as an intersection")
	}
}

func TestSegmentsIntersect_ZeroLength(t *testing.T) {
	// Degenerate point segment: denominator is zero, must not panic.
	_ = SegmentsIntersect(V3(1, 0, 1), V3(1, 0, 1), V3(0, 0, 0), V3(2, 0, 2))
}

func TestRect_ContainsIsStrict(t *testing.T) {
	r := Rect{Center: V3(0, 0, 0), HalfX: 1, HalfZ: 2}
	if !r.Contains(V3(0.5, 0, 1.5)) {
		t.Fatal("interior point should be contained")
	}
	if r.Contains(V3(1, 0, 0)) {
		t.Fatal("border point must not be contained")
	}
	if r.Contains(V3(0, 0, -2.5)) {
		t.Fatal("outside point must not be contained")
	}
}

func TestRect_CornersWinding(t *testing.T) {
	r := Rect{Center: V3(-9, 1, 1), HalfX: 9, HalfZ: 1}
	k := r.Corners()
	want := [4]Vec3{{X: 0, Z: 2}, {X: -18, Z: 2}, {X: -18, Z: 0}, {X: 0, Z: 0}}
	if k != want {
		t.Fatalf("corners = %v, want %v", k, want)
	}
}

func TestWall_OccludesAcross(t *testing.T) {
	w := Wall{Rect: Rect{Center: V3(5, 0, 0), HalfX: 1, HalfZ: 3}}
	if !w.Occludes(V3(0, 0, 0), V3(10, 0, 0)) {
		t.Fatal("sight line through the wall should be occluded")
	}
	if w.Occludes(V3(0, 0, 5), V3(10, 0, 5)) {
		t.Fatal("sight line passing beside the wall should be clear")
	}
}

func TestWall_OccludesWhenEndpointBuried(t *testing.T) {
	w := Wall{Rect: Rect{Center: V3(0, 0, 2.5), HalfX: 5, HalfZ: 5}}
	if !w.Occludes(V3(0, 0, 0), V3(0, 0, 5)) {
		t.Fatal("a sight line inside the wall is occluded")
	}
}
