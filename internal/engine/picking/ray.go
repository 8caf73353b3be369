// Package picking maps the pointer to a contribution cell by ray casting
// against the terrain mesh and drives the hover highlight and tooltip.
package picking

import (
	gomath "math"

	"github.com/Faultbox/contribscape/internal/engine/terrain"
	"github.com/Faultbox/contribscape/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    [3]float32
	Direction [3]float32 // Normalized direction
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min [3]float32
	Max [3]float32
}

// NDCToRay converts normalized device coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func NDCToRay(ndcX, ndcY float32, invViewProj math.Mat4) Ray {
	// Unproject near and far points
	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	// Perspective divide
	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := [3]float32{nearWorld[0], nearWorld[1], nearWorld[2]}
	dir := [3]float32{
		farWorld[0] - nearWorld[0],
		farWorld[1] - nearWorld[1],
		farWorld[2] - nearWorld[2],
	}

	rayLen := float32(gomath.Sqrt(float64(dir[0]*dir[0] + dir[1]*dir[1] + dir[2]*dir[2])))
	if rayLen > 0 {
		dir[0] /= rayLen
		dir[1] /= rayLen
		dir[2] /= rayLen
	}

	return Ray{Origin: origin, Direction: dir}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) [3]float32 {
	return [3]float32{
		r.Origin[0] + t*r.Direction[0],
		r.Origin[1] + t*r.Direction[1],
		r.Origin[2] + t*r.Direction[2],
	}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-gomath.MaxFloat32)
	tmax := float32(gomath.MaxFloat32)

	for axis := range 3 {
		if r.Direction[axis] != 0 {
			t1 := (box.Min[axis] - r.Origin[axis]) / r.Direction[axis]
			t2 := (box.Max[axis] - r.Origin[axis]) / r.Direction[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = max(tmin, t1)
			tmax = min(tmax, t2)
		} else if r.Origin[axis] < box.Min[axis] || r.Origin[axis] > box.Max[axis] {
			return 0, false
		}
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// triangleEpsilon rejects rays parallel to the triangle plane.
const triangleEpsilon = 1e-7

// IntersectTriangle tests the ray against triangle (a, b, c) from both sides
// using the Möller–Trumbore algorithm. Hits behind the origin are ignored.
func (r Ray) IntersectTriangle(a, b, c [3]float32) (t float32, hit bool) {
	e1 := sub(b, a)
	e2 := sub(c, a)
	p := cross(r.Direction, e2)
	det := dot(e1, p)
	if det > -triangleEpsilon && det < triangleEpsilon {
		return 0, false
	}
	inv := 1 / det

	s := sub(r.Origin, a)
	u := dot(s, p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := cross(s, e1)
	v := dot(r.Direction, q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = dot(e2, q) * inv
	if t < 0 {
		return 0, false
	}
	return t, true
}

// Hit is the closest intersection of a ray with a mesh.
type Hit struct {
	Point    [3]float32
	Distance float32
	Triangle int
}

// IntersectMesh returns the closest triangle hit of r against m. The mesh
// bounds are tested first so misses far from the terrain stay cheap.
func IntersectMesh(r Ray, m *terrain.Mesh) (Hit, bool) {
	if m == nil || m.TriangleCount() == 0 {
		return Hit{}, false
	}
	if _, ok := r.IntersectAABB(AABB{Min: m.Bounds.Min, Max: m.Bounds.Max}); !ok {
		return Hit{}, false
	}

	best := Hit{Distance: float32(gomath.MaxFloat32), Triangle: -1}
	for tri := range m.TriangleCount() {
		a, b, c := m.Triangle(tri)
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best.Distance {
			best.Distance = t
			best.Triangle = tri
		}
	}
	if best.Triangle < 0 {
		return Hit{}, false
	}
	best.Point = r.At(best.Distance)
	return best, true
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
