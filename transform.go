package stickfigure

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// localTransform computes the affine matrix that places a segment inside its
// parent's frame. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Rotate(rotation) -> Translate(anchor, 0)
//
// so the segment pivots about its own origin, which sits anchor units along
// the parent's x axis.
func localTransform(anchor, rotationDeg float64) [6]float64 {
	sin, cos := math.Sincos(degToRad(rotationDeg))
	return [6]float64{cos, sin, -sin, cos, anchor, 0}
}

// rootTransform places the root segment at (x, y) in world space.
func rootTransform(x, y, rotationDeg float64) [6]float64 {
	sin, cos := math.Sincos(degToRad(rotationDeg))
	return [6]float64{cos, sin, -sin, cos, x, y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Transform is a world-space affine matrix produced by composition. It is
// exported so renderers can map local points (decoration corners, pivot
// markers) without recomputing the chain.
type Transform [6]float64

// Apply maps a point from the transform's local space to world space.
func (t Transform) Apply(x, y float64) Vec2 {
	wx, wy := transformPoint(t, x, y)
	return Vec2{wx, wy}
}

// Inverse maps a world-space point back into the transform's local space.
func (t Transform) Inverse(x, y float64) Vec2 {
	lx, ly := transformPoint(invertAffine(t), x, y)
	return Vec2{lx, ly}
}
