package world

// Unit cube faces, two triangles each, positions in [-1, 1] and a shared normal
// per face.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [6][3]float32
}{
	// NORTH
	{[3]float32{0, 0, 1}, [6][3]float32{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {1, 1, 1}, {-1, 1, 1}, {-1, -1, 1}}},
	// SOUTH
	{[3]float32{0, 0, -1}, [6][3]float32{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {-1, 1, -1}, {1, 1, -1}, {1, -1, -1}}},
	// WEST
	{[3]float32{-1, 0, 0}, [6][3]float32{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, 1}, {-1, 1, -1}, {-1, -1, -1}}},
	// EAST
	{[3]float32{1, 0, 0}, [6][3]float32{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, -1}, {1, 1, 1}, {1, -1, 1}}},
	// TOP
	{[3]float32{0, 1, 0}, [6][3]float32{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, 1, 1}}},
	// BOTTOM
	{[3]float32{0, -1, 0}, [6][3]float32{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {1, -1, 1}, {-1, -1, 1}, {-1, -1, -1}}},
}

// Every face walks its quad in the same order, so one UV pattern fits all.
var faceUVs = [6][2]float32{{0, 0}, {1, 0}, {1, 1}, {1, 1}, {0, 1}, {0, 0}}

// CubeVertexCount is the number of vertices in a CubeMesh.
const CubeVertexCount = 36

// CubeMesh is a non-indexed cube centred on the origin.
type CubeMesh struct {
	Vertices []float32 // xyz
	UVs      []float32 // uv
	Normals  []float32 // xyz
}

// NewCubeMesh builds a cube with the given half-extent.
func NewCubeMesh(halfExtent float32) *CubeMesh {
	m := &CubeMesh{
		Vertices: make([]float32, 0, CubeVertexCount*3),
		UVs:      make([]float32, 0, CubeVertexCount*2),
		Normals:  make([]float32, 0, CubeVertexCount*3),
	}
	for _, f := range cubeFaces {
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, c[0]*halfExtent, c[1]*halfExtent, c[2]*halfExtent)
			m.UVs = append(m.UVs, faceUVs[i][0], faceUVs[i][1])
			m.Normals = append(m.Normals, f.normal[0], f.normal[1], f.normal[2])
		}
	}
	return m
}

// CubeWireframeVertices are the 12 edges of a unit cube as line pairs, spanning
// [-0.5, 0.5] on each axis.
var CubeWireframeVertices = []float32{
	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, -0.5, -0.5, 0.5,
	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	-0.5, 0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
	-0.5, -0.5, -0.5, -0.5, 0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	-0.5, -0.5, 0.5, -0.5, 0.5, 0.5,
}
