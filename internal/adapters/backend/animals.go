package backend

import (
	"context"
	"net/http"
	"strconv"

	"adoptme-web/internal/domain/animals"
	"adoptme-web/internal/platform/jsonx"
)

var _ animals.Backend = (*Client)(nil)

// Las listas del backend son arrays JSON; cualquier otra forma es KindParse.

func (c *Client) ListAnimals(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	path := "/animais"
	if q := f.Values().Encode(); q != "" {
		path += "?" + q
	}
	var out []animals.Animal
	if _, err := c.call(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) MyAnimals(ctx context.Context) ([]animals.Animal, error) {
	var out []animals.Animal
	if _, err := c.call(ctx, http.MethodGet, "/animais/mine", nil, &out, true); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) GetAnimal(ctx context.Context, id int64) (animals.Animal, error) {
	var out animals.Animal
	if _, err := c.call(ctx, http.MethodGet, animalPath(id), nil, &out, true); err != nil {
		return animals.Animal{}, err
	}
	return out, nil
}

func (c *Client) CreateAnimal(ctx context.Context, in animals.Input) (int64, error) {
	var out struct {
		ID jsonx.FlexInt `json:"id"`
	}
	if _, err := c.call(ctx, http.MethodPost, "/animais", in, &out, true); err != nil {
		return 0, err
	}
	return out.ID.Int64(), nil
}

func (c *Client) UpdateAnimal(ctx context.Context, id int64, in animals.Input) error {
	_, err := c.call(ctx, http.MethodPut, animalPath(id), in, nil, true)
	return err
}

func (c *Client) DeleteAnimal(ctx context.Context, id int64) error {
	_, err := c.call(ctx, http.MethodDelete, animalPath(id), nil, nil, true)
	return err
}

// ToggleAdopt: PATCH /animais/{id}/adopt {action}. Si la respuesta no trae
// un animal (sin id), devuelve nil.
func (c *Client) ToggleAdopt(ctx context.Context, id int64, action animals.AdoptAction) (*animals.Animal, error) {
	var out animals.Animal
	body := map[string]string{"action": string(action)}
	if _, err := c.call(ctx, http.MethodPatch, animalPath(id)+"/adopt", body, &out, true); err != nil {
		return nil, err
	}
	if out.ID.Int64() == 0 {
		return nil, nil
	}
	return &out, nil
}

// Recommendations: GET /recomendacoes?n=N => {items, ids}. Sin ids se
// derivan de items, en el mismo orden.
func (c *Client) Recommendations(ctx context.Context, n int) (animals.Recommendations, error) {
	var out animals.Recommendations
	path := "/recomendacoes?n=" + strconv.Itoa(n)
	if _, err := c.call(ctx, http.MethodGet, path, nil, &out, true); err != nil {
		return animals.Recommendations{}, err
	}

	out.Items = nonNil(out.Items)
	if len(out.IDs) == 0 && len(out.Items) > 0 {
		out.IDs = make([]jsonx.FlexInt, 0, len(out.Items))
		for _, a := range out.Items {
			out.IDs = append(out.IDs, a.ID)
		}
	}
	if out.IDs == nil {
		out.IDs = []jsonx.FlexInt{}
	}
	return out, nil
}

func animalPath(id int64) string {
	return "/animais/" + strconv.FormatInt(id, 10)
}

func nonNil(items []animals.Animal) []animals.Animal {
	if items == nil {
		return []animals.Animal{}
	}
	return items
}
