package facility

// CachedFormats returns the number of compiled formats held in the cache.
func (f *Facility) CachedFormats() int {
	return int(f.formatCount.Load())
}
