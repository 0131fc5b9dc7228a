package app

import (
	"math/rand"

	"github.com/brandlink/brandlink-be/model"
)

// SampleUsers draws a uniform sample without replacement, used for the
// suggested-profiles and featured-agencies views. Order is randomized.
func SampleUsers(users []*model.User, n int) []*model.User {
	if n > len(users) {
		n = len(users)
	}
	shuffled := make([]*model.User, len(users))
	copy(shuffled, users)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}
