package repository

import (
	"context"
	"sort"

	"kreatiq/internal/model"
)

// ContentIdeaRepository 定义了内容创意的数据操作方法。
// 找不到记录时通过 bool 返回 false，而不是返回错误。
type ContentIdeaRepository interface {
	Create(ctx context.Context, idea model.NewContentIdea) (model.ContentIdea, error)
	FindByID(ctx context.Context, id uint) (model.ContentIdea, bool, error)
	FindAll(ctx context.Context) ([]model.ContentIdea, error)
	Update(ctx context.Context, id uint, update model.ContentIdeaUpdate) (model.ContentIdea, bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type memoryContentIdeaRepository struct {
	store *MemoryStore
}

// NewContentIdeaRepository 创建一个基于 MemoryStore 的 ContentIdeaRepository。
func NewContentIdeaRepository(store *MemoryStore) ContentIdeaRepository {
	return &memoryContentIdeaRepository{store: store}
}

// Create 分配新的 id 并保存内容创意，status 默认为 draft，tags 默认为空。
func (r *memoryContentIdeaRepository) Create(_ context.Context, idea model.NewContentIdea) (model.ContentIdea, error) {
	return r.store.insertContentIdea(idea), nil
}

// FindByID 根据 id 查找内容创意。
func (r *memoryContentIdeaRepository) FindByID(_ context.Context, id uint) (model.ContentIdea, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	idea, ok := r.store.contentIdeas[id]
	if !ok {
		return model.ContentIdea{}, false, nil
	}
	return cloneIdea(idea), true, nil
}

// FindAll 按创建时间倒序返回所有内容创意，时间相同时 id 大的在前。
func (r *memoryContentIdeaRepository) FindAll(_ context.Context) ([]model.ContentIdea, error) {
	r.store.mu.Lock()
	ideas := make([]model.ContentIdea, 0, len(r.store.contentIdeas))
	for _, idea := range r.store.contentIdeas {
		ideas = append(ideas, cloneIdea(idea))
	}
	r.store.mu.Unlock()

	sort.Slice(ideas, func(i, j int) bool {
		if !ideas[i].CreatedAt.Equal(ideas[j].CreatedAt) {
			return ideas[i].CreatedAt.After(ideas[j].CreatedAt)
		}
		return ideas[i].ID > ideas[j].ID
	})
	return ideas, nil
}

// Update 合并部分更新，未设置的字段保留原值。
func (r *memoryContentIdeaRepository) Update(_ context.Context, id uint, update model.ContentIdeaUpdate) (model.ContentIdea, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	idea, ok := r.store.contentIdeas[id]
	if !ok {
		return model.ContentIdea{}, false, nil
	}
	idea = cloneIdea(idea)
	update.Apply(&idea)
	r.store.contentIdeas[id] = idea
	return cloneIdea(idea), true, nil
}

// Delete 删除指定 id 的内容创意，返回记录是否存在。
func (r *memoryContentIdeaRepository) Delete(_ context.Context, id uint) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.contentIdeas[id]; !ok {
		return false, nil
	}
	delete(r.store.contentIdeas, id)
	return true, nil
}
