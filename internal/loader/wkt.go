package loader

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"heatgrid/internal/geom"
)

// ParseMultiPoint parses POINT(x y) or MULTIPOINT(x y, ...), also in the
// MULTIPOINT((x y), ...) form, into data coordinates. "MULTIPOINT EMPTY"
// yields no points. Coordinates must be integers.
func ParseMultiPoint(wkt string) ([]geom.Point, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	var kind string
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"):
		kind = "multipoint"
	case strings.HasPrefix(up, "POINT"):
		kind = "point"
	default:
		return nil, errors.New("unsupported wkt type")
	}
	if strings.HasSuffix(up, "EMPTY") {
		return nil, nil
	}
	i := strings.Index(s, "(")
	j := strings.LastIndex(s, ")")
	if i < 0 || j <= i {
		return nil, fmt.Errorf("wkt %s: invalid", kind)
	}

	var pts []geom.Point
	for _, tup := range strings.Split(s[i+1:j], ",") {
		tup = strings.Trim(strings.TrimSpace(tup), "()")
		parts := strings.Fields(tup)
		if len(parts) < 2 {
			continue
		}
		x, err1 := parseInt(parts[0])
		y, err2 := parseInt(parts[1])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("wkt %s: bad coordinate %q", kind, tup)
		}
		pts = append(pts, geom.Point{X: x, Y: y})
	}
	if len(pts) == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	if kind == "point" && len(pts) > 1 {
		return nil, errors.New("wkt point: more than one coordinate")
	}
	return pts, nil
}

// parseInt accepts "3" and "3.0" but not "3.5".
func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s is not an integer", s)
	}
	return int(f), nil
}

// FormatMultiPoint writes pts sorted, as MULTIPOINT (x y, ...).
func FormatMultiPoint(pts []geom.Point) string {
	if len(pts) == 0 {
		return "MULTIPOINT EMPTY"
	}
	sorted := append([]geom.Point(nil), pts...)
	geom.SortPoints(sorted)
	var b strings.Builder
	b.WriteString("MULTIPOINT (")
	for i, p := range sorted {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d %d", p.X, p.Y)
	}
	b.WriteString(")")
	return b.String()
}
