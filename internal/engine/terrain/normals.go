package terrain

import gomath "math"

// ComputeNormals returns per-vertex normals for an indexed triangle list.
// Face normals are accumulated unnormalized, so larger triangles weigh more,
// then each vertex sum is normalized. Vertices touched by no triangle (or
// only by degenerate ones) get +Y.
func ComputeNormals(positions []float32, indices []uint32) []float32 {
	normals := make([]float32, len(positions))

	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t]*3, indices[t+1]*3, indices[t+2]*3
		e1 := [3]float32{
			positions[ib] - positions[ia],
			positions[ib+1] - positions[ia+1],
			positions[ib+2] - positions[ia+2],
		}
		e2 := [3]float32{
			positions[ic] - positions[ia],
			positions[ic+1] - positions[ia+1],
			positions[ic+2] - positions[ia+2],
		}
		n := cross(e1, e2)
		for _, i := range [3]uint32{ia, ib, ic} {
			normals[i] += n[0]
			normals[i+1] += n[1]
			normals[i+2] += n[2]
		}
	}

	for i := 0; i < len(normals); i += 3 {
		n := normalize([3]float32{normals[i], normals[i+1], normals[i+2]})
		normals[i], normals[i+1], normals[i+2] = n[0], n[1], n[2]
	}
	return normals
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 1e-8 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
