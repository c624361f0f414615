package usecase

import (
	"context"
	"strings"

	"github.com/totegamma/todolist/internal/domain"
)

// memStore backs the fake repositories below with plain slices.
type memStore struct {
	seq        int64
	items      []domain.Item
	categories []domain.Category
	links      []domain.CategoryItem
}

func (s *memStore) next() int64 {
	s.seq++
	return s.seq
}

func (s *memStore) itemIndex(id int64) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *memStore) linksOf(itemID int64) []domain.CategoryItem {
	var out []domain.CategoryItem
	for _, l := range s.links {
		if l.ItemID == itemID {
			out = append(out, l)
		}
	}
	return out
}

type fakeItemRepo struct{ s *memStore }

func (r fakeItemRepo) List(ctx context.Context, search string) ([]domain.Item, error) {
	out := []domain.Item{}
	for _, it := range r.s.items {
		if search == "" || strings.Contains(it.Description, search) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r fakeItemRepo) Get(ctx context.Context, id int64) (domain.Item, error) {
	i := r.s.itemIndex(id)
	if i < 0 {
		return domain.Item{}, domain.NotFoundError{Resource: "item"}
	}
	return r.s.items[i], nil
}

func (r fakeItemRepo) GetWithCategories(ctx context.Context, id int64) (domain.ItemDetails, error) {
	item, err := r.Get(ctx, id)
	if err != nil {
		return domain.ItemDetails{}, err
	}
	details := domain.ItemDetails{Item: item, Categories: []domain.CategoryLink{}}
	for _, l := range r.s.linksOf(id) {
		for _, c := range r.s.categories {
			if c.ID == l.CategoryID {
				details.Categories = append(details.Categories, domain.CategoryLink{JoinID: l.ID, Category: c})
			}
		}
	}
	return details, nil
}

func (r fakeItemRepo) Create(ctx context.Context, item domain.Item) (domain.Item, error) {
	item.ID = r.s.next()
	r.s.items = append(r.s.items, item)
	return item, nil
}

func (r fakeItemRepo) Update(ctx context.Context, item domain.Item) error {
	i := r.s.itemIndex(item.ID)
	if i < 0 {
		return domain.NotFoundError{Resource: "item"}
	}
	r.s.items[i] = item
	return nil
}

func (r fakeItemRepo) Delete(ctx context.Context, id int64) error {
	i := r.s.itemIndex(id)
	if i < 0 {
		return domain.NotFoundError{Resource: "item"}
	}
	r.s.items = append(r.s.items[:i], r.s.items[i+1:]...)
	kept := r.s.links[:0]
	for _, l := range r.s.links {
		if l.ItemID != id {
			kept = append(kept, l)
		}
	}
	r.s.links = kept
	return nil
}

type fakeCategoryRepo struct{ s *memStore }

func (r fakeCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return r.s.categories, nil
}

func (r fakeCategoryRepo) Options(ctx context.Context) ([]domain.CategoryOption, error) {
	out := make([]domain.CategoryOption, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		out = append(out, domain.CategoryOption{ID: c.ID, Name: c.Name})
	}
	return out, nil
}

func (r fakeCategoryRepo) Create(ctx context.Context, name string) (domain.Category, error) {
	c := domain.Category{ID: r.s.next(), Name: name}
	r.s.categories = append(r.s.categories, c)
	return c, nil
}

type fakeLinkRepo struct{ s *memStore }

// Link mirrors the foreign key: unknown categories are rejected.
func (r fakeLinkRepo) Link(ctx context.Context, categoryID, itemID int64) (domain.CategoryItem, error) {
	known := false
	for _, c := range r.s.categories {
		if c.ID == categoryID {
			known = true
		}
	}
	if !known {
		return domain.CategoryItem{}, domain.NotFoundError{Resource: "category"}
	}
	l := domain.CategoryItem{ID: r.s.next(), CategoryID: categoryID, ItemID: itemID}
	r.s.links = append(r.s.links, l)
	return l, nil
}

func (r fakeLinkRepo) Exists(ctx context.Context, categoryID, itemID int64) (bool, error) {
	for _, l := range r.s.links {
		if l.CategoryID == categoryID && l.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (r fakeLinkRepo) Delete(ctx context.Context, joinID int64) (domain.CategoryItem, error) {
	for i, l := range r.s.links {
		if l.ID == joinID {
			r.s.links = append(r.s.links[:i], r.s.links[i+1:]...)
			return l, nil
		}
	}
	return domain.CategoryItem{}, domain.NotFoundError{Resource: "category item"}
}

type recordingPublisher struct {
	events []domain.ItemEvent
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event domain.ItemEvent) error {
	p.events = append(p.events, event)
	return p.err
}

func newTestItemUsecase(dedupe bool) (*ItemUsecase, *memStore, *recordingPublisher) {
	s := &memStore{}
	pub := &recordingPublisher{}
	uc := NewItemUsecase(
		domain.Config{DedupeCategoryLinks: dedupe},
		fakeItemRepo{s},
		fakeCategoryRepo{s},
		fakeLinkRepo{s},
		pub,
	)
	return uc, s, pub
}
