// Package tui is a thin interactive shell over the geometry kernel: it
// renders the diagram as character cells and turns cursor keys into group
// movements. All geometry decisions live in the drag and routing packages.
package tui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"

	"stockflow/core"
	"stockflow/drag"
	"stockflow/export"
	"stockflow/geometry"
)

// step sizes per keypress, in diagram units (one character cell).
const (
	stepX = export.CellWidth
	stepY = export.CellHeight
)

// Run opens an interactive view of the diagram. Tab cycles the selection,
// the cursor keys drag the selected element, and q or Escape quits. The
// final element set is returned so the caller can save it.
func Run(elements []core.Element) ([]core.Element, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return elements, err
	}
	if err := s.Init(); err != nil {
		return elements, err
	}
	defer s.Fini()
	s.SetStyle(tcell.StyleDefault)

	els := append([]core.Element(nil), elements...)
	selectable := selectableIDs(els)
	selIdx := 0

	for {
		draw(s, els, current(selectable, selIdx))
		s.Show()

		switch ev := s.PollEvent().(type) {
		case *tcell.EventResize:
			s.Sync()
		case *tcell.EventKey:
			var dx, dy float64
			switch {
			case ev.Key() == tcell.KeyEscape || ev.Rune() == 'q':
				return els, nil
			case ev.Key() == tcell.KeyTab:
				if len(selectable) > 0 {
					selIdx = (selIdx + 1) % len(selectable)
				}
				continue
			case ev.Key() == tcell.KeyLeft:
				dx = -stepX
			case ev.Key() == tcell.KeyRight:
				dx = stepX
			case ev.Key() == tcell.KeyUp:
				dy = -stepY
			case ev.Key() == tcell.KeyDown:
				dy = stepY
			default:
				continue
			}

			uid := current(selectable, selIdx)
			if uid == 0 {
				continue
			}
			// The kernel's convention: new coordinate = old - delta.
			delta := geometry.Point{X: -dx, Y: -dy}
			changed := drag.ApplyGroupMovement(els, map[int]bool{uid: true}, delta, nil, -1)
			els = merge(els, changed)
		}
	}
}

func current(ids []int, idx int) int {
	if len(ids) == 0 {
		return 0
	}
	return ids[idx%len(ids)]
}

// selectableIDs lists the draggable elements in a stable order.
func selectableIDs(els []core.Element) []int {
	var ids []int
	for _, el := range els {
		switch el.(type) {
		case core.Stock, core.Aux, core.Flow, core.Cloud, core.Module:
			ids = append(ids, el.UID())
		}
	}
	sort.Ints(ids)
	return ids
}

// merge applies a change set to the element list, preserving order.
func merge(els []core.Element, changed map[int]core.Element) []core.Element {
	if len(changed) == 0 {
		return els
	}
	out := make([]core.Element, len(els))
	for i, el := range els {
		if nel, ok := changed[el.UID()]; ok {
			out[i] = nel
		} else {
			out[i] = el
		}
	}
	return out
}

func draw(s tcell.Screen, els []core.Element, selected int) {
	s.Clear()
	grid := export.ASCIIGrid(els)
	for y, row := range grid.Cells {
		for x, r := range row {
			if r != ' ' {
				s.SetContent(x, y, r, nil, tcell.StyleDefault)
			}
		}
	}

	// Mark the selected element.
	if el, ok := find(els, selected); ok {
		x, y := core.Position(el)
		cx, cy := grid.Cell(x, y)
		st := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
		s.SetContent(cx, cy, '@', nil, st)
	}

	_, h := s.Size()
	status := fmt.Sprintf(" [%d] tab: next  arrows: drag  q: quit", selected)
	st := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		s.SetContent(i, h-1, r, nil, st)
	}
}

func find(els []core.Element, uid int) (core.Element, bool) {
	for _, el := range els {
		if el.UID() == uid {
			return el, true
		}
	}
	return nil, false
}
