package copynumber

// Config holds the empirically tuned thresholds of the extension passes.
type Config struct {
	// MinDepthWindowCount is the depth-window count at which a diploid region
	// is trusted on its own in ExtendDiploid.
	MinDepthWindowCount int
	// MinDepthWindowCountAtCentromere replaces MinDepthWindowCount when the
	// next supported boundary in the direction of extension is the centromere.
	MinDepthWindowCountAtCentromere int

	BAFTolerance            float64
	LargeSampleBAFCount     int
	LargeSampleBAFTolerance float64
	MinToleranceBAFCount    int

	MinCopyNumberTolerance      float64
	RelativeCopyNumberTolerance float64

	// MinInformativeBAFCount is the bafCount below which ExtendDiploidBAF
	// infers the BAF of a diploid region from its neighbours.
	MinInformativeBAFCount int
	MaxLOHMinorAllele      float64

	MinNonDiploidRatio float64
	MaxNonDiploidRatio float64

	DeletedCopyNumber    float64
	FallbackPloidyWeight float64

	// Threads bounds the number of chromosomes processed at once.
	Threads int
}

// DefaultConfig returns the thresholds used when none are given.
func DefaultConfig() Config {
	return Config{
		MinDepthWindowCount:             30,
		MinDepthWindowCountAtCentromere: 150,
		BAFTolerance:                    0.03,
		LargeSampleBAFCount:             1000,
		LargeSampleBAFTolerance:         0.01,
		MinToleranceBAFCount:            10,
		MinCopyNumberTolerance:          0.3,
		RelativeCopyNumberTolerance:     0.2,
		MinInformativeBAFCount:          1,
		MaxLOHMinorAllele:               0.5,
		MinNonDiploidRatio:              0.25,
		MaxNonDiploidRatio:              4,
		DeletedCopyNumber:               0.5,
		FallbackPloidyWeight:            0.5,
		Threads:                         1,
	}
}
