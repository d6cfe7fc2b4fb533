package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"mathtutor-be/internal/entity"
	"mathtutor-be/internal/repository/contract"
	"mathtutor-be/internal/repository/specification"
	"mathtutor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories backing service tests. Specifications are matched
// by type switch, mirroring the filters the SQL implementations apply.

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type fakeStore struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	threads  map[uuid.UUID]*entity.Thread
	messages map[uuid.UUID]*entity.Message
	shares   map[uuid.UUID]*entity.ShareRecord
	counters map[string]*entity.UsageCounter
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		threads:  make(map[uuid.UUID]*entity.Thread),
		messages: make(map[uuid.UUID]*entity.Message),
		shares:   make(map[uuid.UUID]*entity.ShareRecord),
		counters: make(map[string]*entity.UsageCounter),
	}
}

func counterKey(userId uuid.UUID, date string, feature string) string {
	return userId.String() + "|" + date + "|" + feature
}

type fakeUnitOfWork struct {
	store *fakeStore
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository {
	return &fakeUserRepository{store: u.store}
}
func (u *fakeUnitOfWork) ThreadRepository() contract.ThreadRepository {
	return &fakeThreadRepository{store: u.store}
}
func (u *fakeUnitOfWork) MessageRepository() contract.MessageRepository {
	return &fakeMessageRepository{store: u.store}
}
func (u *fakeUnitOfWork) ArtifactRepository() contract.ArtifactRepository {
	return &fakeArtifactRepository{}
}
func (u *fakeUnitOfWork) ShareRepository() contract.ShareRepository {
	return &fakeShareRepository{store: u.store}
}
func (u *fakeUnitOfWork) UsageRepository() contract.UsageRepository {
	return &fakeUsageRepository{store: u.store}
}

type fakeRepositoryFactory struct {
	store *fakeStore
}

func newFakeFactory() (*fakeStore, unitofwork.RepositoryFactory) {
	store := newFakeStore()
	return store, &fakeRepositoryFactory{store: store}
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &fakeUnitOfWork{store: f.store}
}

// applyListSpecs peels ordering and pagination off a spec list so the
// per-entity matchers only see filters.
func applyListSpecs(specs []specification.Specification) (filters []specification.Specification, orderBy *specification.OrderBy, page *specification.Pagination) {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.OrderBy:
			o := s
			orderBy = &o
		case specification.Pagination:
			p := s
			page = &p
		default:
			filters = append(filters, spec)
		}
	}
	return filters, orderBy, page
}

func paginate[T any](items []T, page *specification.Pagination) []T {
	if page == nil {
		return items
	}
	if page.Offset > 0 {
		if page.Offset >= len(items) {
			return nil
		}
		items = items[page.Offset:]
	}
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

// --- users ---

type fakeUserRepository struct {
	store *fakeStore
}

func matchUser(u *entity.User, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return u.Id == s.ID
	case specification.FilterBy:
		switch s.Field {
		case "external_id":
			return u.ExternalId == s.Value
		case "subscription_id":
			return u.SubscriptionId != nil && *u.SubscriptionId == s.Value
		}
	}
	return false
}

func (r *fakeUserRepository) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *user
	r.store.users[user.Id] = &copied
	return nil
}

func (r *fakeUserRepository) Update(ctx context.Context, user *entity.User) error {
	return r.Create(ctx, user)
}

func (r *fakeUserRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	users, err := r.FindAll(ctx, specs...)
	if err != nil || len(users) == 0 {
		return nil, err
	}
	return users[0], nil
}

func (r *fakeUserRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filters, _, page := applyListSpecs(specs)
	var out []*entity.User
	for _, u := range r.store.users {
		ok := true
		for _, f := range filters {
			if !matchUser(u, f) {
				ok = false
				break
			}
		}
		if ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return paginate(out, page), nil
}

func (r *fakeUserRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	users, err := r.FindAll(ctx, specs...)
	return int64(len(users)), err
}

func (r *fakeUserRepository) UpdateStreak(ctx context.Context, id uuid.UUID, streakCount int, lastActivityDate string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	date := lastActivityDate
	u.StreakCount = streakCount
	u.LastActivityDate = &date
	return nil
}

func (r *fakeUserRepository) ResetStaleStreaks(ctx context.Context, cutoffDate string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var affected int64
	for _, u := range r.store.users {
		stale := (u.StreakCount > 0 && u.LastActivityDate == nil) ||
			(u.LastActivityDate != nil && *u.LastActivityDate < cutoffDate)
		if stale {
			u.StreakCount = 0
			u.LastActivityDate = nil
			affected++
		}
	}
	return affected, nil
}

func (r *fakeUserRepository) SetPlan(ctx context.Context, id uuid.UUID, plan contract.PlanUpdate) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[id]
	if !ok {
		return fmt.Errorf("user %s not found", id)
	}
	u.IsPro = plan.IsPro
	u.PlanProductId = plan.PlanProductId
	u.SubscriptionId = plan.SubscriptionId
	u.CustomerId = plan.CustomerId
	u.CurrentPeriodEnd = plan.CurrentPeriodEnd
	return nil
}

func (r *fakeUserRepository) FindBySubscriptionId(ctx context.Context, subscriptionId string) (*entity.User, error) {
	return r.FindOne(ctx, specification.Filter("subscription_id", subscriptionId))
}

// --- threads ---

type fakeThreadRepository struct {
	store *fakeStore
}

func matchThread(t *entity.Thread, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return t.Id == s.ID
	case specification.ByUserId:
		return t.UserId == s.UserId
	case specification.BookmarkedOnly:
		return t.Bookmarked
	}
	return false
}

func (r *fakeThreadRepository) Create(ctx context.Context, thread *entity.Thread) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *thread
	r.store.threads[thread.Id] = &copied
	return nil
}

func (r *fakeThreadRepository) Update(ctx context.Context, thread *entity.Thread) error {
	return r.Create(ctx, thread)
}

func (r *fakeThreadRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.threads, id)
	return nil
}

func (r *fakeThreadRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Thread, error) {
	threads, err := r.FindAll(ctx, specs...)
	if err != nil || len(threads) == 0 {
		return nil, err
	}
	return threads[0], nil
}

func (r *fakeThreadRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Thread, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filters, _, page := applyListSpecs(specs)
	var out []*entity.Thread
	for _, t := range r.store.threads {
		ok := true
		for _, f := range filters {
			if !matchThread(t, f) {
				ok = false
				break
			}
		}
		if ok {
			copied := *t
			out = append(out, &copied)
		}
	}
	return paginate(out, page), nil
}

func (r *fakeThreadRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	threads, err := r.FindAll(ctx, specs...)
	return int64(len(threads)), err
}

func (r *fakeThreadRepository) IncrementMessageCount(ctx context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.threads[id]
	if !ok {
		return fmt.Errorf("thread %s not found", id)
	}
	t.MessageCount++
	return nil
}

func (r *fakeThreadRepository) SetMessageCount(ctx context.Context, id uuid.UUID, count int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.threads[id]
	if !ok {
		return fmt.Errorf("thread %s not found", id)
	}
	t.MessageCount = count
	return nil
}

func (r *fakeThreadRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string, preview string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	t, ok := r.store.threads[id]
	if !ok {
		return fmt.Errorf("thread %s not found", id)
	}
	t.Title = title
	t.Preview = preview
	return nil
}

// --- messages ---

type fakeMessageRepository struct {
	store *fakeStore
}

func matchMessage(m *entity.Message, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return m.Id == s.ID
	case specification.ByThreadId:
		return m.ThreadId == s.ThreadId
	}
	return false
}

func (r *fakeMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	copied := *message
	r.store.messages[message.Id] = &copied
	return nil
}

func (r *fakeMessageRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error) {
	messages, err := r.FindAll(ctx, specs...)
	if err != nil || len(messages) == 0 {
		return nil, err
	}
	return messages[0], nil
}

func (r *fakeMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filters, orderBy, page := applyListSpecs(specs)
	var out []*entity.Message
	for _, m := range r.store.messages {
		ok := true
		for _, f := range filters {
			if !matchMessage(m, f) {
				ok = false
				break
			}
		}
		if ok {
			copied := *m
			out = append(out, &copied)
		}
	}
	if orderBy != nil && orderBy.Field == "ord" {
		sort.Slice(out, func(i, j int) bool {
			if orderBy.Desc {
				return out[i].Order > out[j].Order
			}
			return out[i].Order < out[j].Order
		})
	}
	return paginate(out, page), nil
}

func (r *fakeMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	messages, err := r.FindAll(ctx, specs...)
	return int64(len(messages)), err
}

func (r *fakeMessageRepository) MaxOrder(ctx context.Context, threadId uuid.UUID) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	max := -1
	for _, m := range r.store.messages {
		if m.ThreadId == threadId && m.Order > max {
			max = m.Order
		}
	}
	return max, nil
}

// --- shares ---

type fakeShareRepository struct {
	store *fakeStore
}

func matchShare(rec *entity.ShareRecord, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByID:
		return rec.Id == s.ID
	case specification.ByUserId:
		return rec.UserId == s.UserId
	case specification.ByItem:
		return string(rec.ItemKind) == s.Kind && rec.ItemId == s.ItemId
	case specification.ActiveOnly:
		return rec.Active
	}
	return false
}

func (r *fakeShareRepository) Create(ctx context.Context, record *entity.ShareRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.shares {
		if existing.ItemKind == record.ItemKind && existing.ItemId == record.ItemId {
			return gorm.ErrDuplicatedKey
		}
	}
	copied := *record
	r.store.shares[record.Id] = &copied
	return nil
}

func (r *fakeShareRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ShareRecord, error) {
	records, err := r.FindAll(ctx, specs...)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return records[0], nil
}

func (r *fakeShareRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ShareRecord, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filters, _, page := applyListSpecs(specs)
	var out []*entity.ShareRecord
	for _, rec := range r.store.shares {
		ok := true
		for _, f := range filters {
			if !matchShare(rec, f) {
				ok = false
				break
			}
		}
		if ok {
			copied := *rec
			out = append(out, &copied)
		}
	}
	return paginate(out, page), nil
}

func (r *fakeShareRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	rec, ok := r.store.shares[id]
	if !ok {
		return fmt.Errorf("share %s not found", id)
	}
	rec.Active = active
	rec.UpdatedAt = time.Now()
	return nil
}

func (r *fakeShareRepository) DeactivateByItem(ctx context.Context, kind string, itemId uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, rec := range r.store.shares {
		if string(rec.ItemKind) == kind && rec.ItemId == itemId {
			rec.Active = false
		}
	}
	return nil
}

// --- usage counters ---

type fakeUsageRepository struct {
	store *fakeStore
}

func matchCounter(c *entity.UsageCounter, spec specification.Specification) bool {
	switch s := spec.(type) {
	case specification.ByUserId:
		return c.UserId == s.UserId
	case specification.ByUsageDate:
		return c.UsageDate == s.Date
	}
	return false
}

func (r *fakeUsageRepository) IncrementAndGet(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	key := counterKey(userId, date, feature)
	c, ok := r.store.counters[key]
	if !ok {
		c = &entity.UsageCounter{
			Id:        uuid.New(),
			UserId:    userId,
			UsageDate: date,
			Feature:   feature,
		}
		r.store.counters[key] = c
	}
	c.Count++
	return c.Count, nil
}

func (r *fakeUsageRepository) GetCount(ctx context.Context, userId uuid.UUID, date string, feature string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if c, ok := r.store.counters[counterKey(userId, date, feature)]; ok {
		return c.Count, nil
	}
	return 0, nil
}

func (r *fakeUsageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UsageCounter, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	filters, _, page := applyListSpecs(specs)
	var out []*entity.UsageCounter
	for _, c := range r.store.counters {
		ok := true
		for _, f := range filters {
			if !matchCounter(c, f) {
				ok = false
				break
			}
		}
		if ok {
			copied := *c
			out = append(out, &copied)
		}
	}
	return paginate(out, page), nil
}

func (r *fakeUsageRepository) DeleteOlderThan(ctx context.Context, date string) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var affected int64
	for key, c := range r.store.counters {
		if c.UsageDate < date {
			delete(r.store.counters, key)
			affected++
		}
	}
	return affected, nil
}

// --- artifacts ---

// fakeArtifactRepository satisfies the contract for services that only need
// the accessor; the share tests exercise thread sharing.
type fakeArtifactRepository struct{}

func (r *fakeArtifactRepository) CreateGraph(ctx context.Context, graph *entity.GraphArtifact) error {
	return nil
}
func (r *fakeArtifactRepository) FindGraph(ctx context.Context, specs ...specification.Specification) (*entity.GraphArtifact, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) FindAllGraphs(ctx context.Context, specs ...specification.Specification) ([]*entity.GraphArtifact, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) CreateFlashcardSet(ctx context.Context, set *entity.FlashcardSet) error {
	return nil
}
func (r *fakeArtifactRepository) FindFlashcardSet(ctx context.Context, specs ...specification.Specification) (*entity.FlashcardSet, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) FindAllFlashcardSets(ctx context.Context, specs ...specification.Specification) ([]*entity.FlashcardSet, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) UpdateFlashcardSetProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error {
	return nil
}
func (r *fakeArtifactRepository) CreateSolution(ctx context.Context, solution *entity.Solution) error {
	return nil
}
func (r *fakeArtifactRepository) FindSolution(ctx context.Context, specs ...specification.Specification) (*entity.Solution, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) FindAllSolutions(ctx context.Context, specs ...specification.Specification) ([]*entity.Solution, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) CreatePracticeTest(ctx context.Context, test *entity.PracticeTest) error {
	return nil
}
func (r *fakeArtifactRepository) FindPracticeTest(ctx context.Context, specs ...specification.Specification) (*entity.PracticeTest, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) FindAllPracticeTests(ctx context.Context, specs ...specification.Specification) ([]*entity.PracticeTest, error) {
	return nil, nil
}
func (r *fakeArtifactRepository) UpdatePracticeTestProgress(ctx context.Context, id uuid.UUID, masteryScore float64, attemptCount int, lastStudiedAt time.Time) error {
	return nil
}
