package feed

import (
	"sort"

	"ripple/internal/models"
)

// Suggestion scoring weights. Mutual connections weigh far more than raw
// follower counts.
const (
	followerWeight = 0.1
	mutualWeight   = 10.0
	maxSuggestions = 3
)

// ScoredUser pairs a suggestion candidate with its relevance score.
type ScoredUser struct {
	User  models.User
	Score float64
}

// Suggestions ranks follow candidates for the actor. Candidates are every
// user except the actor and the users the actor already follows. Each
// candidate scores followerWeight per real follower plus mutualWeight per
// mutual connection (a user the actor follows who also follows the
// candidate). Only candidates with a positive score are kept, sorted by
// score descending with ties broken by ascending user ID, capped at
// maxSuggestions.
func Suggestions(actorID string, users []models.User, follows []models.Follow) []ScoredUser {
	following := make(map[string]bool)
	for _, f := range follows {
		if f.FollowerID == actorID {
			following[f.FollowingID] = true
		}
	}

	var scored []ScoredUser
	for _, candidate := range users {
		if candidate.ID == actorID || following[candidate.ID] {
			continue
		}

		score := float64(RealFollowerCount(follows, candidate.ID)) * followerWeight

		mutuals := 0
		for _, f := range follows {
			if f.FollowingID == candidate.ID && following[f.FollowerID] {
				mutuals++
			}
		}
		score += float64(mutuals) * mutualWeight

		if score > 0 {
			scored = append(scored, ScoredUser{User: candidate, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].User.ID < scored[j].User.ID
	})

	if len(scored) > maxSuggestions {
		scored = scored[:maxSuggestions]
	}
	return scored
}
