package render

import "github.com/taigrr/meshkit/pkg/math3d"

// clipDistances returns the signed distance of a clip-space point to the
// six view volume planes, ordered left, right, bottom, top, near, far.
// A point is inside when every distance is non-negative.
func clipDistances(v math3d.Vec4) [6]float32 {
	return [6]float32{
		v.W + v.X,
		v.W - v.X,
		v.W + v.Y,
		v.W - v.Y,
		v.W + v.Z,
		v.W - v.Z,
	}
}

func insideClip(v math3d.Vec4) bool {
	for _, d := range clipDistances(v) {
		if d < 0 {
			return false
		}
	}
	return true
}

// clipLine trims the clip-space segment a-b to the view volume
// (Liang-Barsky in homogeneous coordinates). ok is false when nothing of
// the segment is visible.
func clipLine(a, b math3d.Vec4) (math3d.Vec4, math3d.Vec4, bool) {
	da := clipDistances(a)
	db := clipDistances(b)

	t0, t1 := float32(0), float32(1)
	for i := range da {
		switch {
		case da[i] < 0 && db[i] < 0:
			return a, b, false
		case da[i] < 0:
			t0 = max(t0, da[i]/(da[i]-db[i]))
		case db[i] < 0:
			t1 = min(t1, da[i]/(da[i]-db[i]))
		}
		if t0 > t1 {
			return a, b, false
		}
	}

	d := b.Sub(a)
	return a.Add(d.Scale(t0)), a.Add(d.Scale(t1)), true
}
