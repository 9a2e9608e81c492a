package animals

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"adoptme-web/internal/middleware"
	"adoptme-web/internal/platform/httpclient"
	"adoptme-web/internal/ports/auth"
	"adoptme-web/internal/ports/session"

	"github.com/go-chi/chi/v5"
)

const (
	promptDelete    = "Excluir anúncio?"
	promptAdopt     = "Marcar como adotado?"
	promptUndoAdopt = "Desfazer adoção?"
)

// RegisterRoutes monta /animais. Se espera que r ya esté detrás del AuthGate.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animais", func(ar chi.Router) {
		ar.Get("/", listHandler(svc))
		ar.Post("/", createHandler(svc))

		ar.Get("/{animalID}", getHandler(svc))
		ar.Put("/{animalID}", updateHandler(svc))

		// Mutaciones con confirmación (confirm=true)
		ar.Post("/{animalID}/delete", deleteHandler(svc))
		ar.Post("/{animalID}/adopt", adoptHandler(svc))
	})
}

type confirmRequest struct {
	Confirm bool `json:"confirm"`
}

type adoptRequest struct {
	Action  string `json:"action"`
	Confirm bool   `json:"confirm"`
}

type createResponse struct {
	ID int64 `json:"id"`
}

// listHandler godoc
// @Summary  Listado de animales (all | mine | recs) con filtros
// @Tags     animais
// @Produce  json
// @Param    tab      query string false "all | mine | recs"
// @Param    especie  query string false "especie"
// @Param    idade    query string false "filhote | adulto | idoso"
// @Param    porte    query string false "porte"
// @Param    cidade   query string false "substring de cidade"
// @Param    refresh  query bool   false "ignora la foto de la sesión"
// @Success  200 {object} View
// @Router   /animais [get]
func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f := ParseFilter(q)
		tab := ParseTab(q.Get("tab"))

		var userID int64
		if u, ok := middleware.CurrentUser(r.Context()); ok {
			userID = u.ID.Int64()
		}
		refresh, _ := strconv.ParseBool(q.Get("refresh"))

		sid, _ := session.IDFromContext(r.Context())
		l, cached, err := svc.Current(r.Context(), sid, userID, refresh)
		if err != nil {
			// request cancelado
			return
		}

		v := BuildView(l, tab, f, userID)
		v.Cached = cached
		writeJSON(w, http.StatusOK, v)
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sid, _ := session.IDFromContext(r.Context())
		id, err := svc.Create(r.Context(), sid, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, createResponse{ID: id})
	}
}

func getHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid animal id")
			return
		}

		a, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid animal id")
			return
		}

		var in Input
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}

		sid, _ := session.IDFromContext(r.Context())
		a, reloaded, err := svc.Update(r.Context(), sid, id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !reloaded {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func deleteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid animal id")
			return
		}

		var req confirmRequest
		if !decodeOptional(r, &req) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		confirmed := req.Confirm || queryConfirm(r)

		sid, _ := session.IDFromContext(r.Context())
		if err := svc.Delete(r.Context(), sid, id, confirmed); err != nil {
			if errors.Is(err, ErrConfirmationRequired) {
				writeConfirm(w, promptDelete)
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "id": id})
	}
}

func adoptHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := animalID(r)
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid animal id")
			return
		}

		var req adoptRequest
		if !decodeOptional(r, &req) {
			writeError(w, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Action == "" {
			req.Action = r.URL.Query().Get("action")
		}
		action, err := ParseAdoptAction(req.Action)
		if err != nil {
			writeError(w, http.StatusBadRequest, "action must be mark or undo")
			return
		}
		confirmed := req.Confirm || queryConfirm(r)

		sid, _ := session.IDFromContext(r.Context())
		a, err := svc.ToggleAdopt(r.Context(), sid, id, action, confirmed)
		if err != nil {
			if errors.Is(err, ErrConfirmationRequired) {
				prompt := promptAdopt
				if action == AdoptUndo {
					prompt = promptUndoAdopt
				}
				writeConfirm(w, prompt)
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, a)
	}
}

func animalID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(chi.URLParam(r, "animalID")), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryConfirm(r *http.Request) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return v
}

// decodeOptional acepta body vacío.
func decodeOptional(r *http.Request, out any) bool {
	if r.Body == nil || r.ContentLength == 0 {
		return true
	}
	err := json.NewDecoder(r.Body).Decode(out)
	return err == nil || errors.Is(err, io.EOF)
}

func writeConfirm(w http.ResponseWriter, prompt string) {
	writeJSON(w, http.StatusPreconditionRequired, map[string]any{
		"error":   ErrConfirmationRequired.Error(),
		"confirm": prompt,
	})
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, auth.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeError(w, httpclient.ProxyStatus(err), err.Error())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
