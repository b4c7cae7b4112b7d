package shared

const (
	// DefaultMaxLoad is the default max load factor for a CBG table.
	// Above this ratio Reserve/insert triggers a rehash.
	DefaultMaxLoad = 0.9001

	// DefaultGrowFactor is the factor a table's bucket count is
	// multiplied by on rehash.
	DefaultGrowFactor = 1.2

	// DefaultSize is the element count a new table reserves room for at
	// construction (9 bins at the default max load factor).
	DefaultSize = 8

	// MinBucketWidth and MaxBucketWidth bound the supported anchored
	// window widths k.
	MinBucketWidth = 2
	MaxBucketWidth = 4

	// LabelMax is the saturating value (L_MAX) a bin's label clamps to.
	LabelMax = 7
)
