// Package recommendation suggests this week's movies from a customer's history.
package recommendation

import (
	"slices"

	"github.com/google/uuid"
)

// Movie is the view of a film the recommender works on.
type Movie interface {
	GetID() uuid.UUID
	GenreIDs() []uuid.UUID
	GetAgeRestriction() string
}

// Recommend returns the candidates that share at least one genre or the exact
// age restriction with at least one watched movie.
//
// Candidates are deduplicated by ID and returned in the order they first
// matched. Callers should not rely on that order.
func Recommend[M Movie](watched, candidates []M) []M {
	recommended := make([]M, 0)
	seen := make(map[uuid.UUID]struct{})

	for _, candidate := range candidates {
		for _, movie := range watched {
			if !matches(candidate, movie) {
				continue
			}
			if _, ok := seen[candidate.GetID()]; !ok {
				seen[candidate.GetID()] = struct{}{}
				recommended = append(recommended, candidate)
			}
			break
		}
	}

	return recommended
}

// matches walks the candidate's genres; a candidate without genres never matches.
func matches(candidate, watched Movie) bool {
	watchedGenres := watched.GenreIDs()
	for _, genre := range candidate.GenreIDs() {
		if slices.Contains(watchedGenres, genre) ||
			candidate.GetAgeRestriction() == watched.GetAgeRestriction() {
			return true
		}
	}
	return false
}
