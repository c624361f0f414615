package domain

// Config holds the behaviour switches the usecases care about.
type Config struct {
	// DedupeCategoryLinks skips linking an item to a category it already has.
	DedupeCategoryLinks bool `yaml:"dedupeCategoryLinks"`
}
