package controllers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/brandlink/brandlink-be/app"
	appDb "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
	"github.com/brandlink/brandlink-be/util"
)

const PoolRefreshInterval = time.Minute * 20

// SuggestionController keeps the profile pool for the suggested-profiles and
// featured-agencies views in process and samples from it per request, so the
// feed path never pays for a full profile scan.
type SuggestionController struct {
	db             appDb.UserDatabase
	cachedPool     []*model.User
	cachedPoolLock sync.Mutex
	refreshTicker  *time.Ticker
}

func NewSuggestionController(c context.Context, db appDb.UserDatabase) (*SuggestionController, error) {
	controller := &SuggestionController{
		db: db,
	}
	if err := controller.updateCachedPool(c); err != nil {
		return nil, err
	}

	refreshTicker := time.NewTicker(PoolRefreshInterval)
	controller.refreshTicker = refreshTicker
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Println("recovered while attempting to update the suggestion pool", r)
			}
		}()
		for range refreshTicker.C {
			controller.attemptToUpdateCachedPool(c)
		}
	}()

	return controller, nil
}

// SuggestProfiles samples n profiles uniformly without replacement,
// excluding the viewer's own profile.
func (sc *SuggestionController) SuggestProfiles(viewerId string, n int) []*model.User {
	sc.cachedPoolLock.Lock()
	pool := sc.cachedPool
	sc.cachedPoolLock.Unlock()

	candidates := make([]*model.User, 0, len(pool))
	for _, user := range pool {
		if user.Id == viewerId {
			continue
		}
		candidates = append(candidates, user)
	}
	return app.SampleUsers(candidates, n)
}

// NotifyProfileCreated refreshes the pool out of band so a new profile shows
// up before the next tick.
func (sc *SuggestionController) NotifyProfileCreated(c context.Context) {
	go sc.attemptToUpdateCachedPool(c)
}

func (sc *SuggestionController) CreateProfile(c context.Context, user *model.User) *util.HTTPError {
	if err := sc.db.CreateUser(c, user); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	sc.NotifyProfileCreated(c)
	return nil
}

func (sc *SuggestionController) attemptToUpdateCachedPool(c context.Context) {
	if err := sc.updateCachedPool(c); err != nil {
		log.Println("an error occurred while updating the suggestion pool", err)
	}
}

func (sc *SuggestionController) updateCachedPool(c context.Context) error {
	users, err := sc.db.GetUsers(c)
	if err != nil {
		return err
	}
	sc.cachedPoolLock.Lock()
	defer sc.cachedPoolLock.Unlock()
	sc.cachedPool = users
	return nil
}
