package animals

import (
	"context"
	"errors"
	"sync"

	"adoptme-web/internal/platform/jsonx"
)

// -------------------------
// Fake backend
// -------------------------

var errBackendDown = errors.New("backend: down")

type fakeBackend struct {
	mu sync.Mutex

	all     []Animal
	mine    []Animal
	recs    Recommendations
	allErr  error
	mineErr error
	recsErr error

	adoptReturns *Animal
	adoptErr     error
	deleteErr    error
	updated      map[int64]Input
	created      []Input
	getErr       error

	deleted    []int64
	listCalls  int
	lastFilter Filter
}

func (b *fakeBackend) ListAnimals(ctx context.Context, f Filter) ([]Animal, error) {
	b.mu.Lock()
	b.listCalls++
	b.lastFilter = f
	b.mu.Unlock()
	if b.allErr != nil {
		return nil, b.allErr
	}
	return append([]Animal(nil), b.all...), nil
}

func (b *fakeBackend) MyAnimals(ctx context.Context) ([]Animal, error) {
	if b.mineErr != nil {
		return nil, b.mineErr
	}
	return append([]Animal(nil), b.mine...), nil
}

func (b *fakeBackend) GetAnimal(ctx context.Context, id int64) (Animal, error) {
	if b.getErr != nil {
		return Animal{}, b.getErr
	}
	for _, a := range b.all {
		if a.ID.Int64() == id {
			if in, ok := b.updated[id]; ok {
				a.Name = in.Name
			}
			return a, nil
		}
	}
	return Animal{}, errors.New("not found")
}

func (b *fakeBackend) CreateAnimal(ctx context.Context, in Input) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.created = append(b.created, in)
	return 100, nil
}

func (b *fakeBackend) UpdateAnimal(ctx context.Context, id int64, in Input) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.updated == nil {
		b.updated = map[int64]Input{}
	}
	b.updated[id] = in
	return nil
}

func (b *fakeBackend) DeleteAnimal(ctx context.Context, id int64) error {
	if b.deleteErr != nil {
		return b.deleteErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *fakeBackend) ToggleAdopt(ctx context.Context, id int64, action AdoptAction) (*Animal, error) {
	return b.adoptReturns, b.adoptErr
}

func (b *fakeBackend) Recommendations(ctx context.Context, n int) (Recommendations, error) {
	if b.recsErr != nil {
		return Recommendations{}, b.recsErr
	}
	return b.recs, nil
}

func (b *fakeBackend) lists() (int, Filter) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.listCalls, b.lastFilter
}

func animal(id int64, name, species, city string) Animal {
	return Animal{ID: jsonx.FlexInt(id), Name: name, Species: species, City: city}
}

func ids(items []Animal) []int64 {
	out := make([]int64, 0, len(items))
	for _, a := range items {
		out = append(out, a.ID.Int64())
	}
	return out
}

func idsOf(v ...int64) []jsonx.FlexInt {
	out := make([]jsonx.FlexInt, 0, len(v))
	for _, id := range v {
		out = append(out, jsonx.FlexInt(id))
	}
	return out
}
