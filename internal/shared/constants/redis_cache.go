package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the movieapp backend
// Pattern: movieapp:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // 24 hours - for genres and languages
	TTL_STATIC_MEDIUM = 12 * time.Hour // 12 hours - for movie details
	TTL_STATIC_SHORT  = 6 * time.Hour  // 6 hours - for user profiles
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // 1 hour - for this week's movies
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // 15 minutes - for recommendations
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 30 * time.Second // 30 seconds - for seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "movieapp"
)

// ================== GENRES & LANGUAGES ==================

const (
	CACHE_KEY_GENRES_ALL    = CACHE_PREFIX + ":genres:list:all"
	CACHE_KEY_GENRE_BY_SLUG = CACHE_PREFIX + ":genres:detail:slug:" // + genre-slug

	CACHE_KEY_LANGUAGES_ALL = CACHE_PREFIX + ":languages:list:all"
)

const (
	TTL_GENRES    = TTL_STATIC_LONG // 24 hours
	TTL_LANGUAGES = TTL_STATIC_LONG // 24 hours
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIE_DETAIL = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
	CACHE_KEY_MOVIES_WEEK  = CACHE_PREFIX + ":movies:week:"        // + week-start yyyy-mm-dd
)

const (
	TTL_MOVIE_DETAIL = TTL_STATIC_MEDIUM     // 12 hours
	TTL_MOVIES_WEEK  = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== SESSIONS MODULE ==================

const (
	CACHE_KEY_SESSION_SEAT_MAP = CACHE_PREFIX + ":sessions:seatmap:uuid:" // + session-id
)

const (
	TTL_SESSION_SEAT_MAP = TTL_REALTIME_SHORT // 30 seconds
)

// ================== CUSTOMERS MODULE ==================

const (
	CACHE_KEY_CUSTOMER_RECOMMENDATIONS = CACHE_PREFIX + ":customers:recommendations:uuid:" // + customer-id:week-start
)

const (
	TTL_CUSTOMER_RECOMMENDATIONS = TTL_SEMI_STATIC_QUICK // 15 minutes
)

// ================== AUTH MODULE ==================

const (
	CACHE_KEY_USER_PROFILE = CACHE_PREFIX + ":auth:user:profile:uuid:" // + user-id
)

const (
	TTL_USER_PROFILE = TTL_STATIC_SHORT // 6 hours
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_GENRES_ALL          = CACHE_PREFIX + ":genres:*"
	PATTERN_INVALIDATE_MOVIES_ALL          = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_MOVIES_WEEK         = CACHE_PREFIX + ":movies:week:*"
	PATTERN_INVALIDATE_RECOMMENDATIONS_ALL = CACHE_PREFIX + ":customers:recommendations:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildGenreBySlugKey(slug string) string {
	return CACHE_KEY_GENRE_BY_SLUG + slug
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

// BuildWeekMoviesKey keys the week listing by the Monday it starts on.
// Example: BuildWeekMoviesKey(monday) -> "movieapp:movies:week:2026-10-19"
func BuildWeekMoviesKey(weekStart time.Time) string {
	return CACHE_KEY_MOVIES_WEEK + weekStart.Format(time.DateOnly)
}

func BuildSeatMapKey(sessionID string) string {
	return CACHE_KEY_SESSION_SEAT_MAP + sessionID
}

// BuildRecommendationsKey scopes recommendations to the week they were computed from.
// Example: BuildRecommendationsKey(id, monday) -> "movieapp:customers:recommendations:uuid:<id>:2026-10-19"
func BuildRecommendationsKey(customerID string, weekStart time.Time) string {
	return CACHE_KEY_CUSTOMER_RECOMMENDATIONS + customerID + ":" + weekStart.Format(time.DateOnly)
}

// BuildCustomerRecommendationsPattern matches every week's recommendations of one customer.
func BuildCustomerRecommendationsPattern(customerID string) string {
	return CACHE_KEY_CUSTOMER_RECOMMENDATIONS + customerID + ":*"
}

func BuildUserProfileKey(userID string) string {
	return fmt.Sprintf("%s%s", CACHE_KEY_USER_PROFILE, userID)
}
