// Package ranking derives average ratings and orders cafes for the
// "best cafes" view. Everything here is pure computation over already
// loaded records.
package ranking

import (
	"math"
	"sort"

	"cafehub/model"
)

// TopCount is how many leading cafes the presentation treats as the
// ranked podium.
const TopCount = 3

// Average returns the arithmetic mean of the rating values rounded to one
// decimal place. An empty set averages to 0 so display code never deals
// with NaN.
func Average(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	avg := float64(sum) / float64(len(values))
	return math.Round(avg*10) / 10
}

// CafeAverage averages the ratings loaded on a cafe.
func CafeAverage(cafe model.Cafe) float64 {
	values := make([]int, len(cafe.Ratings))
	for i, r := range cafe.Ratings {
		values[i] = r.Value
	}
	return Average(values)
}

// Rank orders cafes by descending average rating. The sort is stable, so
// ties keep the caller's fetch order.
func Rank(cafes []model.Cafe) []model.Cafe {
	ranked := make([]model.Cafe, len(cafes))
	copy(ranked, cafes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return CafeAverage(ranked[i]) > CafeAverage(ranked[j])
	})
	return ranked
}

// TopSplit separates the leading TopCount cafes from the remainder. With
// TopCount or fewer cafes the remainder is empty.
func TopSplit(ranked []model.Cafe) (top, rest []model.Cafe) {
	if len(ranked) <= TopCount {
		return ranked, nil
	}
	return ranked[:TopCount], ranked[TopCount:]
}
