package taste

import "math"

// Similarity computes a weighted cosine similarity between two vectors on
// a 0-100 scale. Each dimension is scaled by its static weight and, when a
// confidence vector is supplied, by the confidence for that dimension, so
// low-confidence preferences contribute less to both the dot product and
// the magnitude normalization. Zero-magnitude inputs yield 0, not NaN.
func Similarity(a, b Vector, confidence Confidence) float64 {
	dims := make(map[Dimension]struct{}, len(a)+len(b))
	for dim := range a {
		dims[dim] = struct{}{}
	}
	for dim := range b {
		dims[dim] = struct{}{}
	}

	var dot, magA, magB float64
	for dim := range dims {
		weight := 1.0
		if w, ok := dimensionWeights[dim]; ok {
			weight = w
		}
		if confidence != nil {
			if c, ok := confidence[dim]; ok {
				weight *= clamp01(c)
			}
		}

		wa := a[dim] * weight
		wb := b[dim] * weight
		dot += wa * wb
		magA += wa * wa
		magB += wb * wb
	}

	if magA == 0 || magB == 0 {
		return 0
	}

	cosine := dot / (math.Sqrt(magA) * math.Sqrt(magB))

	// Map [-1,1] onto [0,100] so downstream thresholds work on one scale
	return (cosine + 1) / 2 * 100
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
