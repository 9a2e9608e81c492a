package animals

import (
	"context"
	"sync"
	"time"

	"adoptme-web/internal/platform/jsonx"
	"adoptme-web/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultRecommendations = 12
	// SnapshotTTL: cuánto se sirve la foto de la sesión sin volver al backend.
	SnapshotTTL  = time.Minute
	maxSnapshots = 1000
)

// Service arma la vista de listado y mantiene, por sesión, la última
// foto de las tres colecciones. GET /animais la sirve mientras esté fresca,
// así las mutaciones se ven sin recargar.
type Service struct {
	backend Backend
	log     logger.Logger
	recN    int
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	snapshots map[string]snapshot
}

// snapshot es la foto de una sesión y de quién era al cargarla.
type snapshot struct {
	listing  Listing
	userID   int64
	loadedAt time.Time
}

func NewService(backend Backend, log logger.Logger, recN int) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	if recN <= 0 {
		recN = DefaultRecommendations
	}
	return &Service{
		backend:   backend,
		log:       log,
		recN:      recN,
		ttl:       SnapshotTTL,
		now:       time.Now,
		snapshots: make(map[string]snapshot),
	}
}

// Current devuelve la foto de la sesión si es del mismo usuario, no venció
// y no tiene secciones con error; si no (o con refresh), recarga.
// cached indica si la respuesta salió de la foto.
func (s *Service) Current(ctx context.Context, sessionID string, userID int64, refresh bool) (l Listing, cached bool, err error) {
	if !refresh {
		if snap, ok := s.fresh(sessionID, userID); ok {
			return snap, true, nil
		}
	}
	l, err = s.Load(ctx, sessionID, userID)
	return l, false, err
}

// Load pide all, mine y recomendaciones en paralelo y espera las tres.
// La lista completa se pide sin filtros: los filtros de la vista se
// aplican en memoria (BuildView) con las mismas reglas en los tres tabs.
// Un error por sección no corta las otras; recs que falla queda vacío.
func (s *Service) Load(ctx context.Context, sessionID string, userID int64) (Listing, error) {
	var l Listing

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.All, l.AllErr = s.backend.ListAnimals(gctx, Filter{})
		return nil
	})
	g.Go(func() error {
		l.Mine, l.MineErr = s.backend.MyAnimals(gctx)
		return nil
	})
	g.Go(func() error {
		l.Recs, l.RecsErr = s.backend.Recommendations(gctx, s.recN)
		return nil
	})
	_ = g.Wait()

	// El cliente se fue: no guardamos nada.
	if err := ctx.Err(); err != nil {
		return Listing{}, err
	}

	if l.RecsErr != nil {
		s.log.Warn("recommendations unavailable", map[string]any{"error": l.RecsErr})
		l.Recs = Recommendations{}
	}
	if l.All == nil {
		l.All = []Animal{}
	}
	if l.Mine == nil {
		l.Mine = []Animal{}
	}
	if l.Recs.Items == nil {
		l.Recs.Items = []Animal{}
	}

	s.store(sessionID, userID, l)
	return l, nil
}

// Snapshot devuelve una copia de la última foto de la sesión.
func (s *Service) Snapshot(sessionID string) (Listing, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[sessionID]
	if !ok {
		return Listing{}, false
	}
	return snap.listing.clone(), true
}

func (s *Service) fresh(sessionID string, userID int64) (Listing, bool) {
	if sessionID == "" {
		return Listing{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[sessionID]
	switch {
	case !ok, snap.userID != userID:
		return Listing{}, false
	case s.now().Sub(snap.loadedAt) >= s.ttl:
		return Listing{}, false
	case snap.listing.AllErr != nil || snap.listing.MineErr != nil:
		return Listing{}, false
	}
	return snap.listing.clone(), true
}

// Forget descarta la foto (logout, alta nueva).
func (s *Service) Forget(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.snapshots, sessionID)
}

func (s *Service) Get(ctx context.Context, id int64) (Animal, error) {
	if id <= 0 {
		return Animal{}, ErrInvalidInput
	}
	return s.backend.GetAnimal(ctx, id)
}

func (s *Service) Create(ctx context.Context, sessionID string, in Input) (int64, error) {
	in, err := in.Normalize()
	if err != nil {
		return 0, err
	}
	id, err := s.backend.CreateAnimal(ctx, in)
	if err != nil {
		return 0, err
	}
	s.Forget(sessionID)
	return id, nil
}

// Update guarda y relee el registro; si la relectura falla devuelve
// ok=false y descarta la foto.
func (s *Service) Update(ctx context.Context, sessionID string, id int64, in Input) (Animal, bool, error) {
	if id <= 0 {
		return Animal{}, false, ErrInvalidInput
	}
	in, err := in.Normalize()
	if err != nil {
		return Animal{}, false, err
	}
	if err := s.backend.UpdateAnimal(ctx, id, in); err != nil {
		return Animal{}, false, err
	}

	a, err := s.backend.GetAnimal(ctx, id)
	if err != nil {
		s.log.Warn("reload after update failed", map[string]any{"animal_id": id, "error": err})
		s.Forget(sessionID)
		return Animal{}, false, nil
	}
	s.mutate(sessionID, func(l *Listing) { l.Replace(a) })
	return a, true, nil
}

// Delete exige confirmación; al confirmar, el backend borra y el id sale
// de las tres colecciones.
func (s *Service) Delete(ctx context.Context, sessionID string, id int64, confirmed bool) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.backend.DeleteAnimal(ctx, id); err != nil {
		return err
	}
	s.mutate(sessionID, func(l *Listing) { l.Remove(id) })
	return nil
}

// ToggleAdopt exige confirmación y devuelve el registro como quedó.
func (s *Service) ToggleAdopt(ctx context.Context, sessionID string, id int64, action AdoptAction, confirmed bool) (Animal, error) {
	if id <= 0 {
		return Animal{}, ErrInvalidInput
	}
	if !confirmed {
		return Animal{}, ErrConfirmationRequired
	}

	updated, err := s.backend.ToggleAdopt(ctx, id, action)
	if err != nil {
		return Animal{}, err
	}

	now := s.now()
	var out Animal
	found := false
	s.mutate(sessionID, func(l *Listing) {
		l.ApplyAdopt(id, action, updated, now)
		out, found = l.Find(id)
	})

	if updated != nil {
		return *updated, nil
	}
	if found {
		return out, nil
	}

	// Sin foto ni registro: devolvemos lo mínimo sintetizado.
	return Animal{ID: jsonx.FlexInt(id), AdoptedAt: adoptedStamp(action, now)}, nil
}

func (s *Service) store(sessionID string, userID int64, l Listing) {
	if sessionID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[sessionID]; !ok && len(s.snapshots) >= maxSnapshots {
		for k := range s.snapshots {
			delete(s.snapshots, k)
			break
		}
	}
	s.snapshots[sessionID] = snapshot{listing: l, userID: userID, loadedAt: s.now()}
}

func (s *Service) mutate(sessionID string, fn func(l *Listing)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, ok := s.snapshots[sessionID]
	if !ok {
		return
	}
	next := snap.listing.clone()
	fn(&next)
	snap.listing = next
	s.snapshots[sessionID] = snap
}
