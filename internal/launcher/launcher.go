// Package launcher implements the point-and-click front end that picks a
// trace algorithm and acceleration structure, gathers the scene paths and
// render size, and starts cmd/raytracer as a subprocess — the Go
// counterpart to the reference's pygame button launcher (console.py).
//
// The reference uses tkinter's native file-open dialog; the example pack
// carries no native file-dialog library, so scene paths are entered as
// editable text fields instead (§6, external-collaborator liberty).
// Likewise the reference plots results with matplotlib; no plotting
// library appears anywhere in the pack, so this package only lists
// (ResultFiles) and deletes (DeleteResults) the results files. The
// launcher window does not display results.
package launcher

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	screenWidth  = 1000
	screenHeight = 1000
)

var (
	colWhite    = color.RGBA{255, 255, 255, 255}
	colDarkBlue = color.RGBA{0, 51, 102, 255}
	colLightBlu = color.RGBA{51, 153, 255, 255}
	colGrey     = color.RGBA{200, 200, 200, 255}
	colDarkRed  = color.RGBA{153, 0, 0, 255}
	colOrange   = color.RGBA{255, 128, 0, 255}
	colBlack    = color.RGBA{0, 0, 0, 255}
)

// textField is one editable text input box.
type textField struct {
	label string
	rect  image.Rectangle
	value string
}

// toggleButton is one click-to-toggle button.
type toggleButton struct {
	label    string
	rect     image.Rectangle
	selected bool
	group    string // buttons sharing a group are mutually exclusive
}

// State owns the launcher's full UI state: the trace-algorithm and
// acceleration-structure buttons, the scene/scene-config/size text
// fields, and which field (if any) currently has keyboard focus.
type State struct {
	algoButtons  []*toggleButton
	accelButtons []*toggleButton
	fields       []*textField
	focused      *textField

	raytracerPath string
	status        string
}

// New builds the launcher's initial layout, mirroring console.py's
// vertically-stacked button column and trailing input boxes.
func New(raytracerPath string) *State {
	const (
		buttonW = 250
		buttonH = 50
		pad     = 20
		startY  = 80
	)
	x := (screenWidth - buttonW) / 2

	s := &State{raytracerPath: raytracerPath}

	algoLabels := []string{"Raytracing", "Pathtracing"}
	for i, label := range algoLabels {
		y := startY + i*(buttonH+pad)
		s.algoButtons = append(s.algoButtons, &toggleButton{
			label:    label,
			rect:     image.Rect(x, y, x+buttonW, y+buttonH),
			selected: i == 0,
			group:    "algo",
		})
	}

	accelLabels := []string{"BVH", "KD-Tree", "Uniform Grid", "Mesh-BVH", "No-Structure"}
	for i, label := range accelLabels {
		y := startY + (len(algoLabels)+i)*(buttonH+pad)
		s.accelButtons = append(s.accelButtons, &toggleButton{
			label:    label,
			rect:     image.Rect(x, y, x+buttonW, y+buttonH),
			selected: i == 0,
			group:    "accel",
		})
	}

	fieldY := startY + (len(algoLabels)+len(accelLabels))*(buttonH+pad) + 30
	fieldLabels := []string{"scene (.obj)", "scene config (.json)", "width", "height", "fov"}
	defaults := []string{"", "", "800", "600", "60"}
	for i, label := range fieldLabels {
		y := fieldY + i*(buttonH+10)
		s.fields = append(s.fields, &textField{
			label: label,
			rect:  image.Rect(x, y, x+buttonW, y+buttonH),
			value: defaults[i],
		})
	}

	return s
}

// HandleClick processes a mouse click at (x,y): toggling a button, giving
// a text field keyboard focus, or (if the click lands outside every
// button and field) clearing the focus. It never starts the render; see
// Launch.
func (s *State) HandleClick(x, y int) {
	p := image.Pt(x, y)

	for _, b := range s.algoButtons {
		if p.In(b.rect) {
			s.selectInGroup(s.algoButtons, b)
			return
		}
	}
	for _, b := range s.accelButtons {
		if p.In(b.rect) {
			s.selectInGroup(s.accelButtons, b)
			return
		}
	}
	for _, f := range s.fields {
		if p.In(f.rect) {
			s.focused = f
			return
		}
	}
	s.focused = nil
}

func (s *State) selectInGroup(group []*toggleButton, chosen *toggleButton) {
	for _, b := range group {
		b.selected = b == chosen
	}
}

// TypeRune appends a character to the focused field, if any.
func (s *State) TypeRune(r rune) {
	if s.focused == nil {
		return
	}
	s.focused.value += string(r)
}

// Backspace removes the last character of the focused field.
func (s *State) Backspace() {
	if s.focused == nil || len(s.focused.value) == 0 {
		return
	}
	s.focused.value = s.focused.value[:len(s.focused.value)-1]
}

// Launch starts cmd/raytracer with the arguments built from the current
// button/field state, mirroring console.py's start_program: it builds the
// flag list and hands it to a subprocess rather than blocking the GUI.
func (s *State) Launch() error {
	scenePath := s.fields[0].value
	sceneConfig := s.fields[1].value
	if scenePath == "" || sceneConfig == "" {
		s.status = "scene and scene config are required"
		return fmt.Errorf("launcher: %s", s.status)
	}

	width := s.fields[2].value
	height := s.fields[3].value
	fov := s.fields[4].value

	algo := "raytracing"
	for _, b := range s.algoButtons {
		if b.selected && b.label == "Pathtracing" {
			algo = "pathtracing"
		}
	}

	accel := accelFlagValue(s.selectedAccel())

	args := []string{
		"--acceleration-structure", accel,
		"--scene", scenePath,
		"--scene-config", sceneConfig,
		"--width", width,
		"--height", height,
		"--fov", fov,
		"--trace-algorithm", algo,
	}

	cmd := exec.Command(s.raytracerPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		s.status = fmt.Sprintf("failed to start: %v", err)
		return err
	}
	s.status = fmt.Sprintf("started pid %d", cmd.Process.Pid)
	return nil
}

func (s *State) selectedAccel() string {
	for _, b := range s.accelButtons {
		if b.selected {
			return b.label
		}
	}
	return "BVH"
}

func accelFlagValue(label string) string {
	switch label {
	case "BVH":
		return "bvh"
	case "KD-Tree":
		return "kd-tree"
	case "Uniform Grid":
		return "grid"
	case "Mesh-BVH":
		return "mesh_bvh"
	case "No-Structure":
		return "no-structure"
	default:
		return "bvh"
	}
}

// ResultFiles lists the *_efficiency.txt files under dir, sorted, standing
// in for console.py's check_results directory scan.
func ResultFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("launcher: read %q: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), "_efficiency.txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// DeleteResults removes every *_efficiency.txt file under dir, mirroring
// console.py's delete_results.
func DeleteResults(dir string) error {
	names, err := ResultFiles(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("launcher: remove %q: %w", name, err)
		}
	}
	return nil
}

// Render rasterizes the current UI into an RGB byte buffer suitable for
// display.Surface.Present — the launcher reuses the same software-buffer
// presentation path as the renderer itself instead of a second GL drawing
// backend.
func (s *State) Render() []byte {
	img := image.NewRGBA(image.Rect(0, 0, screenWidth, screenHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{colWhite}, image.Point{}, draw.Src)

	for _, b := range s.algoButtons {
		drawButton(img, b)
	}
	for _, b := range s.accelButtons {
		drawButton(img, b)
	}
	for _, f := range s.fields {
		drawField(img, f, f == s.focused)
	}

	drawLabel(img, 20, 20, s.status, colDarkRed)

	return rgbaToRGB(img)
}

func drawButton(img *image.RGBA, b *toggleButton) {
	fill := colGrey
	if b.selected {
		fill = colLightBlu
	}
	draw.Draw(img, b.rect, &image.Uniform{fill}, image.Point{}, draw.Src)
	drawBorder(img, b.rect, colDarkBlue)
	drawLabel(img, b.rect.Min.X+10, b.rect.Min.Y+b.rect.Dy()/2+5, b.label, colBlack)
}

func drawField(img *image.RGBA, f *textField, focused bool) {
	fill := colWhite
	border := colDarkBlue
	if focused {
		border = colOrange
	}
	draw.Draw(img, f.rect, &image.Uniform{fill}, image.Point{}, draw.Src)
	drawBorder(img, f.rect, border)
	text := f.label + ": " + f.value
	drawLabel(img, f.rect.Min.X+10, f.rect.Min.Y+f.rect.Dy()/2+5, text, colBlack)
}

func drawBorder(img *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, c color.Color) {
	if text == "" {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{c},
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// rgbaToRGB drops the alpha channel to match the render pipeline's 3-byte
// RGB pixel format (§4.8).
func rgbaToRGB(img *image.RGBA) []byte {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			idx := (y*w + x) * 3
			out[idx+0] = byte(r >> 8)
			out[idx+1] = byte(g >> 8)
			out[idx+2] = byte(b >> 8)
		}
	}
	return out
}
