package core

import "github.com/go-gl/glfw/v3.3/glfw"

const (
	Key1      = int(glfw.Key1)
	Key2      = int(glfw.Key2)
	Key3      = int(glfw.Key3)
	Key4      = int(glfw.Key4)
	Key5      = int(glfw.Key5)
	Key6      = int(glfw.Key6)
	KeyC      = int(glfw.KeyC)
	KeyP      = int(glfw.KeyP)
	KeyR      = int(glfw.KeyR)
	KeyEscape = int(glfw.KeyEscape)
	KeyRight  = int(glfw.KeyRight)
	KeyLeft   = int(glfw.KeyLeft)
	KeyDown   = int(glfw.KeyDown)
	KeyUp     = int(glfw.KeyUp)
)
