package charts

import (
	"fmt"

	"salesreport/internal/dataprocessing"
)

// Kind selects how a panel is drawn
type Kind int

const (
	KindBar Kind = iota
	KindPie
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindPie:
		return "pie"
	default:
		return "bar"
	}
}

// Descriptor declares one panel of the figure. Cells are row-major grid
// indices; a panel spanning several cells must cover a rectangle.
type Descriptor struct {
	Dimension string
	Title     string
	Kind      Kind
	Cells     []int
}

// DefaultDescriptors returns the five panels of the sales report: four bar
// charts on the first row and first cell of the second, and the product line
// pie across the remaining two cells
func DefaultDescriptors(cols dataprocessing.Columns) []Descriptor {
	return []Descriptor{
		{Dimension: cols.Gender, Title: "Ventas por Género", Kind: KindBar, Cells: []int{0}},
		{Dimension: cols.Branch, Title: "Ventas por Supermercado", Kind: KindBar, Cells: []int{1}},
		{Dimension: cols.City, Title: "Ventas por Ciudad", Kind: KindBar, Cells: []int{2}},
		{Dimension: cols.CustomerType, Title: "Ventas por Tipo de Clientes", Kind: KindBar, Cells: []int{3}},
		{Dimension: cols.ProductLine, Title: "Ventas por Línea de Productos", Kind: KindPie, Cells: []int{4, 5}},
	}
}

// Grid is the panel layout of a figure
type Grid struct {
	Rows int
	Cols int
}

// span returns the first and last row and column covered by cells
func (g Grid) span(cells []int) (row0, col0, row1, col1 int, err error) {
	if len(cells) == 0 {
		return 0, 0, 0, 0, fmt.Errorf("descriptor covers no cells")
	}
	row0, col0 = g.Rows, g.Cols
	row1, col1 = -1, -1
	for _, c := range cells {
		if c < 0 || c >= g.Rows*g.Cols {
			return 0, 0, 0, 0, fmt.Errorf("cell %d is outside the %dx%d grid", c, g.Rows, g.Cols)
		}
		r, col := c/g.Cols, c%g.Cols
		row0, row1 = min(row0, r), max(row1, r)
		col0, col1 = min(col0, col), max(col1, col)
	}
	if (row1-row0+1)*(col1-col0+1) != len(cells) {
		return 0, 0, 0, 0, fmt.Errorf("cells %v do not form a rectangle", cells)
	}
	return row0, col0, row1, col1, nil
}

// validateDescriptors checks that every panel has a dimension and that no two
// panels share a grid cell
func validateDescriptors(grid Grid, descriptors []Descriptor) error {
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return fmt.Errorf("grid must have at least one row and column, got %dx%d", grid.Rows, grid.Cols)
	}
	used := make(map[int]string)
	for _, d := range descriptors {
		if d.Dimension == "" {
			return fmt.Errorf("panel %q has no dimension", d.Title)
		}
		if _, _, _, _, err := grid.span(d.Cells); err != nil {
			return fmt.Errorf("panel %q: %w", d.Title, err)
		}
		for _, c := range d.Cells {
			if other, ok := used[c]; ok {
				return fmt.Errorf("panels %q and %q both use cell %d", other, d.Title, c)
			}
			used[c] = d.Title
		}
	}
	return nil
}
