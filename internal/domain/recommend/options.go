package recommend

// Option applies a configuration option to the RatingRecommender.
type Option func(*RatingRecommender)

// WithGenreWeights sets per-genre weights from configuration. Non-positive
// weights are dropped.
func WithGenreWeights(weights map[string]float64, defaultWeight float64) Option {
	return func(r *RatingRecommender) {
		r.genreWeights = make(map[string]float64, len(weights))
		for genre, w := range weights {
			if w > 0 {
				r.genreWeights[genre] = w
			}
		}
		if defaultWeight > 0 {
			r.defaultWeight = defaultWeight
		}
	}
}
