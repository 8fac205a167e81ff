// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// multidim_inspect prints the geometry, the flat view and the boxed view of a nested JSON array.
//
// Usage:
//
//	multidim_inspect [flags] '[[1, 2], [3]]'
//	echo '[["ab", "c"], []]' | multidim_inspect -dtype=string -strings_as_scalars -default=- -
//	multidim_inspect -dtype=float16 -bounds=4,4,2 @~/data/riddled.json
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/gomlx/multidim/pkg/core/boxedview"
	"github.com/gomlx/multidim/pkg/core/dtypes"
	"github.com/gomlx/multidim/pkg/core/flatview"
	"github.com/gomlx/multidim/pkg/core/geometry"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/gomlx/multidim/pkg/support/fsutil"
	"github.com/gomlx/multidim/pkg/support/xslices"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagDType = flag.String("dtype", "float64", "Scalar type used to decode the leaves of the JSON array, "+
		"one of the dtypes names (e.g.: int32, float16, bool, string).")
	flagStringsAsScalars = flag.Bool("strings_as_scalars", false,
		"With -dtype=string, treat strings as scalars, instead of ranges of bytes.")
	flagBounds = xslices.Flag("bounds", nil,
		"Comma-separated apparent bounds for the boxed view, one per dimension. Defaults to the natural bounds.",
		strconv.Atoi)
	flagDefault = flag.String("default", "0", "Default value of the filled cells of the boxed view. "+
		"It is parsed as JSON, except for -dtype=string.")
	flagColor = flag.Bool("color", false, "Render tables with colors.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing JSON array to inspect, \"@<file>\" or \"-\" to read it from stdin. See 'multidim_inspect -help'")
		os.Exit(1)
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'multidim_inspect -help'.")
		os.Exit(1)
	}
	if *flagColor {
		lipgloss.SetColorProfile(termenv.TrueColor)
	} else {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	data, err := fsutil.ReadArg(args[0], os.Stdin)
	if err != nil {
		klog.Errorf("Failed to read input: %+v", err)
		os.Exit(1)
	}
	if err := report(data); err != nil {
		klog.Errorf("Failed to inspect %q: %+v", data, err)
		os.Exit(1)
	}
}

// config of one inspection, taken from the flags.
type config struct {
	dtype        dtypes.DType
	classifier   []shapes.ScalarClassifier
	bounds       []int
	defaultValue any
}

func configFromFlags() (*config, error) {
	dtype, found := dtypes.MapOfNames[*flagDType]
	if !found || dtype == dtypes.InvalidDType {
		return nil, errors.Errorf("unknown -dtype=%q", *flagDType)
	}
	cfg := &config{dtype: dtype, bounds: *flagBounds}
	defaultDType := dtype
	if *flagStringsAsScalars {
		cfg.classifier = []shapes.ScalarClassifier{shapes.StringsAsScalars{}}
	} else if dtype == dtypes.String {
		// Leaves are the bytes of the strings.
		defaultDType = dtypes.Uint8
	}
	var err error
	cfg.defaultValue, err = parseScalar(*flagDefault, defaultDType)
	if err != nil {
		return nil, errors.WithMessage(err, "parsing -default")
	}
	return cfg, nil
}

func report(data []byte) error {
	cfg, err := configFromFlags()
	if err != nil {
		return err
	}
	value, err := decode(data, cfg.dtype)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Geometry"))
	geometryTable, err := renderGeometry(value, cfg)
	if err != nil {
		return err
	}
	fmt.Println(geometryTable)

	fmt.Println(titleStyle.Render("Flat"))
	flat, err := renderFlat(value, cfg)
	if err != nil {
		return err
	}
	fmt.Println(flat)

	fmt.Println(titleStyle.Render("Boxed"))
	boxed, err := renderBoxed(value, cfg)
	if err != nil {
		return err
	}
	fmt.Println(boxed)
	return nil
}

func renderGeometry(value any, cfg *config) (string, error) {
	g, err := geometry.Of(value, cfg.classifier...)
	if err != nil {
		return "", err
	}
	desc := must.M1(shapes.Describe(reflect.TypeOf(value), cfg.classifier...))
	table := newPlainTable(false, lipgloss.Right, lipgloss.Left)
	table.Row("type", desc.Type.String())
	table.Row("scalar type", desc.Scalar.String())
	table.Row("dtype", desc.DType().String())
	table.Row("dimensionality", strconv.Itoa(g.Dimensionality()))
	table.Row("bounds", fmt.Sprint(g.Bounds))
	table.Row("# scalars", humanize.Comma(int64(g.NumScalars)))
	table.Row("capacity", humanize.Comma(int64(g.Capacity())))
	table.Row("jagged", strconv.FormatBool(g.IsJagged()))
	return table.Render(), nil
}

func renderFlat(value any, cfg *config) (string, error) {
	view, err := flatview.Of[any](value, cfg.classifier...)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, view.Len())
	for _, scalar := range view.All() {
		parts = append(parts, formatScalar(scalar))
	}
	return fmt.Sprintf("%s scalars: [%s]", humanize.Comma(int64(len(parts))), strings.Join(parts, ", ")), nil
}

// renderBoxed renders 2-dimensional views as a table of rows, and others as one row per cell.
// Filled cells are rendered with a different style.
func renderBoxed(value any, cfg *config) (string, error) {
	view, err := boxedview.Of(value, cfg.defaultValue, cfg.bounds, cfg.classifier...)
	if err != nil {
		return "", err
	}
	bounds := view.Bounds()
	if len(bounds) == 2 {
		table := newTableWithFills(true, lipgloss.Right)
		header := make([]string, 1+bounds[1])
		for col := range bounds[1] {
			header[col+1] = strconv.Itoa(col)
		}
		table.Table.Headers(header...)
		for row := range bounds[0] {
			cells := make([]string, 1+bounds[1])
			cells[0] = strconv.Itoa(row)
			var filled []int
			for col := range bounds[1] {
				proxy := view.At(row, col)
				cells[col+1] = formatScalar(proxy.Get())
				if !proxy.Physical() {
					filled = append(filled, col+1)
				}
			}
			table.Row(filled, cells...)
		}
		return table.Table.Render(), nil
	}

	table := newTableWithFills(true, lipgloss.Right, lipgloss.Left)
	table.Table.Headers("#", "coordinates", "value")
	for flatIdx, coords := range geometry.Iter(bounds) {
		proxy := view.At(coords...)
		var filled []int
		if !proxy.Physical() {
			filled = []int{2}
		}
		table.Row(filled, strconv.Itoa(flatIdx), fmt.Sprint(coords), formatScalar(proxy.Get()))
	}
	return table.Table.Render(), nil
}

func formatScalar(scalar any) string {
	if str, ok := scalar.(string); ok {
		return strconv.Quote(str)
	}
	return fmt.Sprint(scalar)
}
