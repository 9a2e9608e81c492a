package animals

import "context"

// Backend es el puerto hacia la API REST; lo implementa adapters/backend.
// Las credenciales salen de la sesión en ctx.
type Backend interface {
	ListAnimals(ctx context.Context, f Filter) ([]Animal, error)
	MyAnimals(ctx context.Context) ([]Animal, error)
	GetAnimal(ctx context.Context, id int64) (Animal, error)
	CreateAnimal(ctx context.Context, in Input) (int64, error)
	UpdateAnimal(ctx context.Context, id int64, in Input) error
	DeleteAnimal(ctx context.Context, id int64) error
	// ToggleAdopt devuelve nil si el backend no manda el registro actualizado.
	ToggleAdopt(ctx context.Context, id int64, action AdoptAction) (*Animal, error)
	Recommendations(ctx context.Context, n int) (Recommendations, error)
}
