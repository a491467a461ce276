package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/repository"
)

func cloneWord(w *entity.Word) *entity.Word {
	if w == nil {
		return nil
	}
	copy := *w
	if w.LastReviewedAt != nil {
		t := *w.LastReviewedAt
		copy.LastReviewedAt = &t
	}
	return &copy
}

type fakeWordRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.Word
}

func newFakeWordRepo() *fakeWordRepo {
	return &fakeWordRepo{items: make(map[string]*entity.Word)}
}

func (r *fakeWordRepo) Create(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.UserID == w.UserID && strings.EqualFold(item.English, w.English) {
			return nil, entity.ErrDuplicateWord
		}
	}
	r.items[w.ID] = cloneWord(w)
	return cloneWord(w), nil
}

func (r *fakeWordRepo) Update(ctx context.Context, w *entity.Word) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.items[w.ID]
	if !ok || existing.UserID != w.UserID {
		return nil, entity.ErrWordNotFound
	}
	r.items[w.ID] = cloneWord(w)
	return cloneWord(w), nil
}

func (r *fakeWordRepo) GetByID(ctx context.Context, userID, id string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return nil, entity.ErrWordNotFound
	}
	return cloneWord(item), nil
}

func (r *fakeWordRepo) FindByEnglish(ctx context.Context, userID, english string) (*entity.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, item := range r.items {
		if item.UserID == userID && strings.EqualFold(item.English, english) {
			return cloneWord(item), nil
		}
	}
	return nil, nil
}

func (r *fakeWordRepo) List(ctx context.Context, filter *entity.WordFilter) ([]*entity.Word, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Word
	for _, item := range r.items {
		if item.UserID != filter.UserID {
			continue
		}
		if filter.IsBookmarked != nil && item.IsBookmarked != *filter.IsBookmarked {
			continue
		}
		if filter.MasteryLevelMin != nil && item.MasteryLevel < *filter.MasteryLevelMin {
			continue
		}
		if filter.MasteryLevelMax != nil && item.MasteryLevel > *filter.MasteryLevelMax {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(strings.ToLower(item.English), strings.ToLower(filter.Search)) &&
			!strings.Contains(strings.ToLower(item.Meaning), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, cloneWord(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *fakeWordRepo) Count(ctx context.Context, userID string) (int64, error) {
	words, total, err := r.List(ctx, &entity.WordFilter{UserID: userID})
	_ = words
	return total, err
}

func (r *fakeWordRepo) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok || item.UserID != userID {
		return entity.ErrWordNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeQuizResultRepo struct {
	mu      sync.RWMutex
	results map[string]*entity.QuizResult
	answers map[string][]*entity.WordAnswer

	failCreateResult  bool
	failCreateAnswers bool
}

func newFakeQuizResultRepo() *fakeQuizResultRepo {
	return &fakeQuizResultRepo{
		results: make(map[string]*entity.QuizResult),
		answers: make(map[string][]*entity.WordAnswer),
	}
}

type fakeRepoError struct{ op string }

func (e fakeRepoError) Error() string { return "fake repo failure: " + e.op }

func (r *fakeQuizResultRepo) CreateResult(ctx context.Context, result *entity.QuizResult) (*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.failCreateResult {
		return nil, fakeRepoError{"create result"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *result
	r.results[result.ID] = &copy
	return &copy, nil
}

func (r *fakeQuizResultRepo) CreateAnswers(ctx context.Context, answers []*entity.WordAnswer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.failCreateAnswers {
		return fakeRepoError{"create answers"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range answers {
		copy := *a
		r.answers[a.QuizResultID] = append(r.answers[a.QuizResultID], &copy)
	}
	return nil
}

func (r *fakeQuizResultRepo) GetResult(ctx context.Context, userID, id string) (*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	result, ok := r.results[id]
	if !ok || result.UserID != userID {
		return nil, entity.ErrQuizResultNotFound
	}
	copy := *result
	return &copy, nil
}

func (r *fakeQuizResultRepo) ListResults(ctx context.Context, query *repository.ListQuizResultQuery) ([]*entity.QuizResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.QuizResult
	for _, result := range r.results {
		if result.UserID != query.UserID {
			continue
		}
		if query.QuizType != "" && result.QuizType != query.QuizType {
			continue
		}
		copy := *result
		out = append(out, &copy)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.After(out[j].CompletedAt) })
	if query.Limit > 0 && int(query.Limit) < len(out) {
		out = out[:query.Limit]
	}
	return out, nil
}

func (r *fakeQuizResultRepo) ListAnswers(ctx context.Context, quizResultID string) ([]*entity.WordAnswer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.WordAnswer
	for _, a := range r.answers[quizResultID] {
		copy := *a
		out = append(out, &copy)
	}
	return out, nil
}

type fakeStatsRepo struct {
	mu    sync.RWMutex
	items map[string]*entity.UserStatistics
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{items: make(map[string]*entity.UserStatistics)}
}

func (r *fakeStatsRepo) Get(ctx context.Context, userID string) (*entity.UserStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats, ok := r.items[userID]
	if !ok {
		return nil, entity.ErrStatisticsNotFound
	}
	copy := *stats
	return &copy, nil
}

func (r *fakeStatsRepo) Upsert(ctx context.Context, stats *entity.UserStatistics) (*entity.UserStatistics, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	copy := *stats
	r.items[stats.UserID] = &copy
	return &copy, nil
}

func (r *fakeStatsRepo) ActiveUserIDs(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
