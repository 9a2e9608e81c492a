package backend

import (
	"context"
	"net/http"

	"adoptme-web/internal/domain/account"
	"adoptme-web/internal/platform/httpclient"
)

var _ account.Backend = (*Client)(nil)

type profileResponse struct {
	OK     bool             `json:"ok"`
	Perfil *account.Profile `json:"perfil"`
}

// GetProfile: GET /perfil_adotante => {ok, perfil}. 404 o perfil null => found=false.
func (c *Client) GetProfile(ctx context.Context) (account.Profile, bool, error) {
	var out profileResponse
	if _, err := c.call(ctx, http.MethodGet, "/perfil_adotante", nil, &out, true); err != nil {
		if httpclient.StatusOf(err) == http.StatusNotFound {
			return account.Profile{}, false, nil
		}
		return account.Profile{}, false, err
	}
	if out.Perfil == nil {
		return account.Profile{}, false, nil
	}
	return *out.Perfil, true, nil
}

// SaveProfile: POST /perfil_adotante.
func (c *Client) SaveProfile(ctx context.Context, p account.Profile) error {
	_, err := c.call(ctx, http.MethodPost, "/perfil_adotante", p, nil, true)
	return err
}
