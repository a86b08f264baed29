package taste

// genreToDimension maps catalog genre ids to preference dimensions.
// Movie and TV genre ids live in disjoint namespaces, so both appear here.
// Unmapped genres contribute nothing to the content vector.
var genreToDimension = map[int]Dimension{
	// Movie genres
	28:    DimActionAdventure, // Action
	12:    DimActionAdventure, // Adventure
	10752: DimActionAdventure, // War
	37:    DimActionAdventure, // Western
	35:    DimComedy,          // Comedy
	18:    DimDrama,           // Drama
	36:    DimDrama,           // History
	878:   DimSciFiFantasy,    // Science Fiction
	14:    DimSciFiFantasy,    // Fantasy
	27:    DimHorrorThriller,  // Horror
	53:    DimHorrorThriller,  // Thriller
	80:    DimCrimeMystery,    // Crime
	9648:  DimCrimeMystery,    // Mystery
	16:    DimAnimationFamily, // Animation
	10751: DimAnimationFamily, // Family
	99:    DimDocumentary,     // Documentary
	10749: DimRomance,         // Romance

	// TV genres
	10759: DimActionAdventure, // Action & Adventure
	10765: DimSciFiFantasy,    // Sci-Fi & Fantasy
	10768: DimActionAdventure, // War & Politics
	10762: DimAnimationFamily, // Kids
	10766: DimDrama,           // Soap
	10763: DimDocumentary,     // News
}

// Anchors for the recency dimension: titles released at or before the base
// year score 0, titles at the base year plus the span or later score 1.
const (
	recencyBaseYear = 2000
	recencySpan     = 25
)

// Scale anchors for the mainstream dimension
const (
	popularityScale = 100
	voteCountScale  = 2000
)

// Vectorize maps a catalog item's metadata into the taste vector space.
// Deterministic and pure; the genre table above is the versioned contract
// shared with the onboarding profile builder.
func Vectorize(genreIDs []int, popularity float64, voteCount int, releaseYear int, originalLanguage string) Vector {
	v := Vector{}

	for _, id := range genreIDs {
		if dim, ok := genreToDimension[id]; ok {
			v[dim] = 1
		}
	}

	if releaseYear > 0 {
		if recency := clamp01(float64(releaseYear-recencyBaseYear) / recencySpan); recency > 0 {
			v[DimRecency] = recency
		}
	}

	mainstream := clamp01(popularity/popularityScale)*0.6 + clamp01(float64(voteCount)/voteCountScale)*0.4
	if mainstream > 0 {
		v[DimMainstream] = mainstream
	}

	if originalLanguage != "" && originalLanguage != "en" {
		v[DimInternational] = 1
	}

	return v
}
