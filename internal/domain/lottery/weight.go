package lottery

// WeightFunc maps a user's recent usage count to a draw weight. Any
// implementation must be strictly positive and monotonically decreasing so
// that frequent winners are de-prioritized.
type WeightFunc func(usageCount int) float64

// InverseUsageWeight is the default policy: 1 / (1 + usageCount). A user with
// no recent bookings draws at weight 1; each win halves, thirds, ... their
// relative chance.
func InverseUsageWeight(usageCount int) float64 {
	if usageCount < 0 {
		usageCount = 0
	}
	return 1.0 / float64(1+usageCount)
}
