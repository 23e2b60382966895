package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 2)

	s.DrawTextColored(1, 0, "2048", ColorOrange)
	cell := s.GetCell(2, 0)
	if cell.Rune != '0' || cell.Color != ColorOrange {
		t.Errorf("GetCell(2, 0) = %+v, expected '0' in orange", cell)
	}

	s.Set(2, 0, 'x')
	if s.GetCell(2, 0).Color != ColorDefault {
		t.Error("Set should reset color to default")
	}

	s.Clear()
	if s.GetCell(1, 0) != (Cell{Rune: ' ', Color: ColorDefault}) {
		t.Error("Clear should reset cells to blank")
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawBox(NewRect(0, 0, 5, 3))

	expected := "┌───┐\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox output:\n%s\nexpected:\n%s", s.String(), expected)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "2048")

	if got := s.Row(0); got != "   2048    " {
		t.Errorf("Row(0) = %q", got)
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(4, 4)
	s.DrawRect(NewRect(1, 1, 2, 2), '#')

	if s.Row(1) != " ## " || s.Row(2) != " ## " || s.Row(0) != "    " {
		t.Errorf("DrawRect produced:\n%s", s.String())
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(4, 2)
	s.DrawText(0, 0, "abcd")

	s.Resize(2, 3)
	if s.Width() != 2 || s.Height() != 3 {
		t.Fatalf("Resize size = %dx%d", s.Width(), s.Height())
	}
	if s.Row(0) != "ab" {
		t.Errorf("Resize should keep content, got %q", s.Row(0))
	}
	if strings.TrimSpace(s.Row(2)) != "" {
		t.Errorf("New rows should be blank, got %q", s.Row(2))
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(3, 1)
	if s.Row(5) != "   " {
		t.Errorf("Row(5) = %q, expected blanks", s.Row(5))
	}
}
