package glyphatlas

// Line height thresholds for the atlas page height tiers.
const (
	mediumTierMinHeight = 25 // line heights above 24 use the medium tier
	largeTierMinHeight  = 49 // line heights above 48 use the large tier
)

// AtlasConfig holds atlas page configuration.
type AtlasConfig struct {
	// PageWidth is the width of every atlas page.
	// Default: 1024
	PageWidth int

	// SmallHeight, MediumHeight and LargeHeight are the page heights
	// used for faces whose line height is at most 24, at most 48, and
	// above 48 pixels.
	// Defaults: 128, 256, 512
	SmallHeight  int
	MediumHeight int
	LargeHeight  int

	// ScratchIncrement is the granularity, in rows, by which the
	// rasterization scratch buffer grows. Must be a power of 2.
	// Default: 64
	ScratchIncrement int
}

// DefaultAtlasConfig returns default configuration.
func DefaultAtlasConfig() AtlasConfig {
	return AtlasConfig{
		PageWidth:        1024,
		SmallHeight:      128,
		MediumHeight:     256,
		LargeHeight:      512,
		ScratchIncrement: 64,
	}
}

// Validate checks if the configuration is valid.
func (c *AtlasConfig) Validate() error {
	if c.PageWidth < 16 {
		return &AtlasConfigError{Field: "PageWidth", Reason: "must be at least 16"}
	}
	if c.PageWidth > 8192 {
		return &AtlasConfigError{Field: "PageWidth", Reason: "must be at most 8192"}
	}
	if c.SmallHeight < 16 {
		return &AtlasConfigError{Field: "SmallHeight", Reason: "must be at least 16"}
	}
	if c.MediumHeight < c.SmallHeight {
		return &AtlasConfigError{Field: "MediumHeight", Reason: "must be at least SmallHeight"}
	}
	if c.LargeHeight < c.MediumHeight {
		return &AtlasConfigError{Field: "LargeHeight", Reason: "must be at least MediumHeight"}
	}
	if c.LargeHeight > 8192 {
		return &AtlasConfigError{Field: "LargeHeight", Reason: "must be at most 8192"}
	}
	if c.ScratchIncrement < 1 || c.ScratchIncrement&(c.ScratchIncrement-1) != 0 {
		return &AtlasConfigError{Field: "ScratchIncrement", Reason: "must be a power of 2"}
	}
	return nil
}

// tierHeight returns the page height for faces with the given line height.
func (c *AtlasConfig) tierHeight(lineHeight int) int {
	switch {
	case lineHeight >= largeTierMinHeight:
		return c.LargeHeight
	case lineHeight >= mediumTierMinHeight:
		return c.MediumHeight
	default:
		return c.SmallHeight
	}
}

// AtlasConfigError represents a configuration validation error.
type AtlasConfigError struct {
	Field  string
	Reason string
}

func (e *AtlasConfigError) Error() string {
	return "glyphatlas: invalid atlas config." + e.Field + ": " + e.Reason
}
