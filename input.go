package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arena/ecs/component"
)

var abilityKeys = [4]ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// pollInput maps keyboard, mouse and the first gamepad to one tick of player
// intent. Aim points from the player toward the cursor.
func pollInput(cam camera, playerX, playerY float64) component.Input {
	var in component.Input

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		in.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		in.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.MoveY += 1
	}

	mx, my := ebiten.CursorPosition()
	wx, wy := cam.toWorld(float64(mx), float64(my))
	in.AimX, in.AimY = unit(wx-playerX, wy-playerY)

	in.Attack = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) || inpututil.IsKeyJustPressed(ebiten.KeyJ)
	for i, k := range abilityKeys {
		in.Ability[i] = inpututil.IsKeyJustPressed(k)
	}
	in.DefenseHeld = ebiten.IsKeyPressed(ebiten.Key3)
	in.Interact = inpututil.IsKeyJustPressed(ebiten.KeyE)

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		gid := ids[0]
		lx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickVertical)
		if lx*lx+ly*ly > 0.09 {
			in.MoveX, in.MoveY = lx, ly
		}
		rx := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisRightStickVertical)
		if rx*rx+ry*ry > 0.09 {
			in.AimX, in.AimY = unit(rx, ry)
		}
		in.Attack = in.Attack || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		in.Ability[0] = in.Ability[0] || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		in.Ability[1] = in.Ability[1] || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightTop)
		in.Ability[2] = in.Ability[2] || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.DefenseHeld = in.DefenseHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonFrontBottomLeft)
		in.Ability[3] = in.Ability[3] || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonFrontBottomRight)
		in.Interact = in.Interact || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightRight)
	}
	return in
}

func unit(x, y float64) (float64, float64) {
	d := math.Hypot(x, y)
	if d == 0 {
		return 0, 0
	}
	return x / d, y / d
}

// camera centers the view on a world point.
type camera struct {
	x, y          float64
	scale         float64
	width, height float64
}

func (c camera) toScreen(x, y float64) (float32, float32) {
	return float32((x-c.x)*c.scale + c.width/2), float32((y-c.y)*c.scale + c.height/2)
}

func (c camera) toWorld(sx, sy float64) (float64, float64) {
	return (sx-c.width/2)/c.scale + c.x, (sy-c.height/2)/c.scale + c.y
}
