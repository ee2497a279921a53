package render

import (
	_ "embed"
)

//go:embed shaders/cube.vert
var cubeVertexShader string

//go:embed shaders/cube.frag
var cubeFragmentShader string
