package imaging

import (
	"fmt"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
)

// DefaultFilter is used when no resample algorithm is named.
const DefaultFilter = "lanczos"

var filters = map[string]imaging.ResampleFilter{
	"nearest":    imaging.NearestNeighbor,
	"box":        imaging.Box,
	"linear":     imaging.Linear,
	"bilinear":   imaging.Linear,
	"hermite":    imaging.Hermite,
	"mitchell":   imaging.MitchellNetravali,
	"catmullrom": imaging.CatmullRom,
	"bicubic":    imaging.CatmullRom,
	"bspline":    imaging.BSpline,
	"gaussian":   imaging.Gaussian,
	"bartlett":   imaging.Bartlett,
	"lanczos":    imaging.Lanczos,
	"hann":       imaging.Hann,
	"hamming":    imaging.Hamming,
	"blackman":   imaging.Blackman,
	"welch":      imaging.Welch,
	"cosine":     imaging.Cosine,
}

// ParseFilter maps an algorithm name to a resample filter. Names are case
// insensitive; "" selects DefaultFilter.
func ParseFilter(name string) (imaging.ResampleFilter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultFilter
	}
	f, ok := filters[key]
	if !ok {
		return imaging.ResampleFilter{}, fmt.Errorf("unknown resample algorithm %q (available: %s)", name, strings.Join(FilterNames(), ", "))
	}
	return f, nil
}

// FilterNames lists the accepted algorithm names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(filters))
	for n := range filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
