// Package charts renders the composite sales chart figure.
//
// A figure is a grid of panels. Each panel is described by a Descriptor
// naming the dimension it groups by, its title, its kind (bar or pie) and the
// grid cells it covers. Compose sums the measure per dimension value, renders
// every descriptor with go-chart, and pastes the panels into one PNG.
//
//	fig, err := charts.Compose(table, charts.DefaultOptions(cols))
//	if err != nil {
//	    return err
//	}
//	defer fig.Close()
//	png := fig.Bytes()
package charts
