package main

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	bvh "github.com/mirstar13/go-bvh"
)

// mat4 is a column-major 4x4 matrix, kept local to the visualizer so it
// doesn't need to resurrect the teacher's full Matrix4x4/Transform/
// Camera stack for the sake of drawing wireframe boxes.
type mat4 [16]float32

func mat4Identity() mat4 {
	return mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func mat4Mul(a, b mat4) mat4 {
	var r mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[col*4+k]
			}
			r[col*4+row] = sum
		}
	}
	return r
}

func mat4Perspective(fovYRadians, aspect, near, far float32) mat4 {
	f := float32(1.0 / math.Tan(float64(fovYRadians)/2))
	var m mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = (2 * far * near) / (near - far)
	return m
}

func mat4LookAt(eye, center, up bvh.Vector3) mat4 {
	f := normalize(subVec(center, eye))
	s := normalize(cross(f, up))
	u := cross(s, f)

	var m mat4
	m[0], m[4], m[8] = float32(s.X), float32(s.Y), float32(s.Z)
	m[1], m[5], m[9] = float32(u.X), float32(u.Y), float32(u.Z)
	m[2], m[6], m[10] = float32(-f.X), float32(-f.Y), float32(-f.Z)
	m[15] = 1
	m[12] = -float32(s.X*eye.X + s.Y*eye.Y + s.Z*eye.Z)
	m[13] = -float32(u.X*eye.X + u.Y*eye.Y + u.Z*eye.Z)
	m[14] = float32(f.X*eye.X + f.Y*eye.Y + f.Z*eye.Z)
	return m
}

func subVec(a, b bvh.Vector3) bvh.Vector3 {
	return bvh.Vector3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func normalize(v bvh.Vector3) bvh.Vector3 {
	l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if l < 1e-10 {
		return bvh.Vector3{X: 0, Y: 1, Z: 0}
	}
	return bvh.Vector3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

func cross(a, b bvh.Vector3) bvh.Vector3 {
	return bvh.Vector3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

const lineVertexShaderSrc = `#version 410 core
layout (location = 0) in vec3 position;
layout (location = 1) in vec3 color;
uniform mat4 view;
uniform mat4 projection;
out vec3 fragColor;
void main() {
    gl_Position = projection * view * vec4(position, 1.0);
    fragColor = color;
}
` + "\x00"

const lineFragmentShaderSrc = `#version 410 core
in vec3 fragColor;
out vec4 outColor;
void main() {
    outColor = vec4(fragColor, 1.0);
}
` + "\x00"

// orbitCamera is a simplified version of win_input.go's
// CameraController auto-orbit mode: it has no manual WASD path since
// bvhdebug's window is read-only, just a slow orbit around the tree's
// root bounds so every box is visible from some angle over time.
type orbitCamera struct {
	center bvh.Vector3
	radius float64
	angle  float64
}

func (c *orbitCamera) step(dt float64) {
	c.angle += dt * 0.3
}

func (c *orbitCamera) eye() bvh.Vector3 {
	return bvh.Vector3{
		X: c.center.X + c.radius*math.Cos(c.angle),
		Y: c.center.Y + c.radius*0.4,
		Z: c.center.Z + c.radius*math.Sin(c.angle),
	}
}

// runWindow opens a glfw/OpenGL core-profile window and draws the
// tree's nodes as wireframe boxes, colored by depth, orbiting slowly.
// Grounded on renderer_opengl.go's Initialize/createLineShaderProgram/
// addLineVertex pipeline, trimmed to a single line-list draw call.
func runWindow(tree *bvh.Tree) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	width, height := 1024, 768
	window, err := glfw.CreateWindow(width, height, "bvhdebug", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)

	program, err := newLineProgram()
	if err != nil {
		return err
	}
	defer gl.DeleteProgram(program)

	vertices := wireframeVertices(tree)
	vao, vbo := uploadLines(vertices)
	defer gl.DeleteVertexArrays(1, &vao)
	defer gl.DeleteBuffers(1, &vbo)

	root := rootBounds(tree)
	extent := root.Extent()
	diag := math.Sqrt(extent.X*extent.X + extent.Y*extent.Y + extent.Z*extent.Z)
	cam := &orbitCamera{center: root.Center(), radius: diag*0.8 + 10}

	viewUniform := gl.GetUniformLocation(program, gl.Str("view\x00"))
	projUniform := gl.GetUniformLocation(program, gl.Str("projection\x00"))

	lastTime := glfw.GetTime()
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - lastTime
		lastTime = now
		cam.step(dt)

		gl.ClearColor(0.05, 0.05, 0.08, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		gl.UseProgram(program)
		view := mat4LookAt(cam.eye(), cam.center, bvh.Vector3{X: 0, Y: 1, Z: 0})
		proj := mat4Perspective(float32(math.Pi)/3, float32(width)/float32(height), 0.1, 10000)
		gl.UniformMatrix4fv(viewUniform, 1, false, &view[0])
		gl.UniformMatrix4fv(projUniform, 1, false, &proj[0])

		gl.BindVertexArray(vao)
		gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/6))

		window.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

func rootBounds(tree *bvh.Tree) bvh.AABB {
	var root bvh.AABB
	first := true
	tree.WalkNodes(func(n bvh.NodeInfo) {
		if first {
			root = n.Bounds
			first = false
		}
	})
	return root
}

func newLineProgram() (uint32, error) {
	vertexShader, err := compileShader(lineVertexShaderSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(lineFragmentShaderSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		return 0, fmt.Errorf("link program: %s", log)
	}
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		return 0, fmt.Errorf("compile shader: %s", log)
	}
	return shader, nil
}

// wireframeVertices flattens every tree node's AABB into a line-list
// vertex buffer (position + color per vertex), colored by depth so
// nested boxes are visually distinguishable.
func wireframeVertices(tree *bvh.Tree) []float32 {
	var verts []float32
	tree.WalkNodes(func(n bvh.NodeInfo) {
		r, g, b := depthColor(n.Depth)
		appendBoxEdges(&verts, n.Bounds, r, g, b)
	})
	return verts
}

func depthColor(depth int) (r, g, b float32) {
	t := float32(depth%8) / 8
	return 0.2 + 0.6*t, 0.8 - 0.5*t, 0.9 - 0.7*t
}

func appendBoxEdges(verts *[]float32, box bvh.AABB, r, g, b float32) {
	corners := [8]bvh.Vector3{
		{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Min.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Min.Z},
		{X: box.Min.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Min.Y, Z: box.Max.Z},
		{X: box.Max.X, Y: box.Max.Y, Z: box.Max.Z},
		{X: box.Min.X, Y: box.Max.Y, Z: box.Max.Z},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		for _, idx := range e {
			p := corners[idx]
			*verts = append(*verts, float32(p.X), float32(p.Y), float32(p.Z), r, g, b)
		}
	}
}

func uploadLines(vertices []float32) (vao, vbo uint32) {
	gl.GenVertexArrays(1, &vao)
	gl.BindVertexArray(vao)

	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	return vao, vbo
}
