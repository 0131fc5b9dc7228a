package mem

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	db2 "github.com/brandlink/brandlink-be/db"
	"github.com/brandlink/brandlink-be/model"
)

// MemDB implements db.Database in process. Each post owns a mutex, so
// concurrent engagement against the same post serializes the same way the
// MySQL store's row lock does, while operations on different posts run in
// parallel. Reads copy under the post lock and can therefore never observe a
// half-applied write.
type MemDB struct {
	mu     sync.RWMutex
	posts  map[int64]*postRecord
	users  map[string]*model.User
	nextId int64
}

type postRecord struct {
	mu sync.Mutex

	id        int64
	creatorId string
	category  model.Category
	kind      model.Kind
	text      string
	media     *model.Media
	event     *model.Event
	occasion  *model.Occasion
	job       *model.JobOpening
	document  *model.Document
	trending  bool
	createdAt time.Time

	likes    map[string]struct{}
	comments []*commentRecord
	poll     *pollRecord
}

type commentRecord struct {
	id        int64
	creatorId string
	text      string
	createdAt time.Time
	replies   []*replyRecord
}

type replyRecord struct {
	id        int64
	creatorId string
	text      string
	createdAt time.Time
}

type pollRecord struct {
	question string
	options  []string
	votes    []int
	voters   map[string]struct{}
	endDate  time.Time
}

func GetDatabase() *MemDB {
	return &MemDB{
		posts: make(map[int64]*postRecord),
		users: make(map[string]*model.User),
	}
}

func (mdb *MemDB) Close() error {
	return nil
}

func (mdb *MemDB) allocId() int64 {
	mdb.nextId++
	return mdb.nextId
}

func (mdb *MemDB) getPost(id int64) (*postRecord, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()
	record, ok := mdb.posts[id]
	if !ok {
		return nil, db2.ErrNotFound
	}
	return record, nil
}

func (mdb *MemDB) CreatePost(ctx context.Context, req *db2.CreatePost) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	record := &postRecord{
		id:        mdb.allocId(),
		creatorId: req.CreatorId,
		category:  req.Category,
		kind:      req.Kind,
		text:      req.Text,
		media:     req.Media,
		event:     req.Event,
		occasion:  req.Occasion,
		job:       req.Job,
		document:  req.Document,
		createdAt: time.Now(),
		likes:     make(map[string]struct{}),
	}
	if req.Poll != nil {
		record.poll = &pollRecord{
			question: req.Poll.Question,
			options:  append([]string{}, req.Poll.Options...),
			votes:    make([]int, len(req.Poll.Options)),
			voters:   make(map[string]struct{}),
			endDate:  req.Poll.EndDate,
		}
	}
	mdb.posts[record.id] = record
	return record.id, nil
}

func (mdb *MemDB) GetPostById(ctx context.Context, id int64, opts *db2.PostQueryOpts) (*model.Post, error) {
	record, err := mdb.getPost(id)
	if err != nil {
		return nil, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	post := mdb.buildPost(record, opts.LikeHistoryOf)
	post.Comments = mdb.buildComments(record)
	return post, nil
}

func (mdb *MemDB) GetPosts(ctx context.Context, query *db2.PostsListQuery) ([]*model.Post, error) {
	mdb.mu.RLock()
	records := make([]*postRecord, 0, len(mdb.posts))
	for _, record := range mdb.posts {
		records = append(records, record)
	}
	mdb.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool {
		if records[i].createdAt.Equal(records[j].createdAt) {
			return records[i].id > records[j].id
		}
		return records[i].createdAt.After(records[j].createdAt)
	})

	// an id this store never issued degrades to date-only paging instead of
	// silently dropping equal-timestamp records
	lastId := int64(0)
	hasLastId := false
	if query.LastId != "" {
		if parsed, err := strconv.ParseInt(query.LastId, 10, 64); err == nil {
			lastId = parsed
			hasLastId = true
		}
	}

	posts := make([]*model.Post, 0, query.Limit)
	for _, record := range records {
		if int16(len(posts)) >= query.Limit {
			break
		}
		if query.From != nil {
			afterCursor := record.createdAt.Before(*query.From) ||
				(record.createdAt.Equal(*query.From) && (!hasLastId || record.id < lastId))
			if !afterCursor {
				continue
			}
		}
		record.mu.Lock()
		match := (query.Category == nil || record.category == *query.Category) &&
			(!query.TrendingOnly || record.trending) &&
			(query.ByUser == "" || record.creatorId == query.ByUser)
		var post *model.Post
		if match {
			post = mdb.buildPost(record, query.LikeHistoryOf)
		}
		record.mu.Unlock()
		if post != nil {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (mdb *MemDB) SetTrending(ctx context.Context, postId int64, trending bool) error {
	record, err := mdb.getPost(postId)
	if err != nil {
		return err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	record.trending = trending
	return nil
}

func (mdb *MemDB) ToggleLike(ctx context.Context, postId int64, userId string) (*model.LikeStatus, error) {
	record, err := mdb.getPost(postId)
	if err != nil {
		return nil, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	if _, liked := record.likes[userId]; liked {
		delete(record.likes, userId)
		return &model.LikeStatus{IsLiked: false, LikesCount: len(record.likes)}, nil
	}
	record.likes[userId] = struct{}{}
	return &model.LikeStatus{IsLiked: true, LikesCount: len(record.likes)}, nil
}

func (mdb *MemDB) AppendComment(ctx context.Context, req *db2.CreateComment) (*model.Comment, error) {
	record, err := mdb.getPost(req.PostId)
	if err != nil {
		return nil, err
	}

	mdb.mu.Lock()
	commentId := mdb.allocId()
	mdb.mu.Unlock()

	record.mu.Lock()
	defer record.mu.Unlock()
	comment := &commentRecord{
		id:        commentId,
		creatorId: req.CreatorId,
		text:      req.Text,
		createdAt: time.Now(),
	}
	record.comments = append(record.comments, comment)
	return mdb.buildComment(comment), nil
}

func (mdb *MemDB) AppendReply(ctx context.Context, req *db2.CreateReply) (*model.Reply, error) {
	record, err := mdb.getPost(req.PostId)
	if err != nil {
		return nil, err
	}

	mdb.mu.Lock()
	replyId := mdb.allocId()
	mdb.mu.Unlock()

	record.mu.Lock()
	defer record.mu.Unlock()
	for _, comment := range record.comments {
		if comment.id != req.CommentId {
			continue
		}
		reply := &replyRecord{
			id:        replyId,
			creatorId: req.CreatorId,
			text:      req.Text,
			createdAt: time.Now(),
		}
		comment.replies = append(comment.replies, reply)
		return mdb.buildReply(reply), nil
	}
	// reply ids never match here: replies are not commentable
	return nil, db2.ErrNotFound
}

func (mdb *MemDB) CastVote(ctx context.Context, postId int64, userId string, option string, now time.Time) (map[string]int, error) {
	record, err := mdb.getPost(postId)
	if err != nil {
		return nil, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	poll := record.poll
	if poll == nil {
		return nil, db2.ErrNoPoll
	}
	if now.After(poll.endDate) {
		return nil, db2.ErrPollExpired
	}
	if _, voted := poll.voters[userId]; voted {
		return nil, db2.ErrAlreadyVoted
	}
	optionIdx := -1
	for i, label := range poll.options {
		if label == option {
			optionIdx = i
			break
		}
	}
	if optionIdx == -1 {
		return nil, db2.ErrInvalidOption
	}
	poll.voters[userId] = struct{}{}
	poll.votes[optionIdx]++
	return poll.tally(), nil
}

func (mdb *MemDB) GetPoll(ctx context.Context, postId int64, opts *db2.PostQueryOpts) (*model.Poll, error) {
	record, err := mdb.getPost(postId)
	if err != nil {
		return nil, err
	}
	record.mu.Lock()
	defer record.mu.Unlock()
	if record.poll == nil {
		return nil, db2.ErrNoPoll
	}
	return mdb.buildPoll(record.poll, opts.LikeHistoryOf), nil
}

func (mdb *MemDB) CreateUser(ctx context.Context, user *model.User) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	copied := *user
	mdb.users[user.Id] = &copied
	return nil
}

func (mdb *MemDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()
	user, ok := mdb.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (mdb *MemDB) GetUsers(ctx context.Context) ([]*model.User, error) {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()
	users := make([]*model.User, 0, len(mdb.users))
	for _, user := range mdb.users {
		copied := *user
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Id < users[j].Id })
	return users, nil
}

func (pr *pollRecord) tally() map[string]int {
	tally := make(map[string]int, len(pr.options))
	for i, label := range pr.options {
		tally[label] = pr.votes[i]
	}
	return tally
}

// buildPost must be called with record.mu held
func (mdb *MemDB) buildPost(record *postRecord, viewerId string) *model.Post {
	_, isLiked := record.likes[viewerId]
	post := &model.Post{
		Id:           record.id,
		Creator:      mdb.displayableCreator(record.creatorId),
		Category:     record.category,
		Kind:         record.kind,
		Text:         record.text,
		Media:        record.media,
		Event:        record.event,
		Occasion:     record.occasion,
		Job:          record.job,
		Document:     record.document,
		LikeCount:    len(record.likes),
		CommentCount: len(record.comments),
		IsLiked:      viewerId != "" && isLiked,
		Trending:     record.trending,
		CreatedAt:    record.createdAt,
	}
	if record.poll != nil {
		post.Poll = mdb.buildPoll(record.poll, viewerId)
	}
	return post
}

func (mdb *MemDB) buildPoll(poll *pollRecord, viewerId string) *model.Poll {
	_, hasVoted := poll.voters[viewerId]
	built := &model.Poll{
		Question: poll.question,
		Options:  append([]string{}, poll.options...),
		Votes:    poll.tally(),
		EndDate:  poll.endDate,
		HasVoted: viewerId != "" && hasVoted,
	}
	built.TotalVotes = len(poll.voters)
	return built
}

func (mdb *MemDB) buildComments(record *postRecord) []*model.Comment {
	comments := make([]*model.Comment, len(record.comments))
	for i, comment := range record.comments {
		comments[i] = mdb.buildComment(comment)
	}
	return comments
}

func (mdb *MemDB) buildComment(comment *commentRecord) *model.Comment {
	replies := make([]*model.Reply, len(comment.replies))
	for i, reply := range comment.replies {
		replies[i] = mdb.buildReply(reply)
	}
	return &model.Comment{
		Id:        comment.id,
		Creator:   mdb.displayableCreator(comment.creatorId),
		Text:      comment.text,
		Replies:   replies,
		CreatedAt: comment.createdAt,
	}
}

func (mdb *MemDB) buildReply(reply *replyRecord) *model.Reply {
	return &model.Reply{
		Id:        reply.id,
		Creator:   mdb.displayableCreator(reply.creatorId),
		Text:      reply.text,
		CreatedAt: reply.createdAt,
	}
}

func (mdb *MemDB) displayableCreator(creatorId string) *model.DisplayableUser {
	mdb.mu.RLock()
	defer mdb.mu.RUnlock()
	if user, ok := mdb.users[creatorId]; ok {
		return user.Displayable()
	}
	return &model.DisplayableUser{Id: creatorId}
}
