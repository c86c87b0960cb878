package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"patio-slots/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// ErrUnitNotFound is returned when the backend has no unit with the requested id.
var ErrUnitNotFound = errors.New("unit not found")

const unitsPath = "/v1/unidade"

// unitDTO is the backend's unit record.
type unitDTO struct {
	ID         int64  `json:"id,omitempty"`
	Codigo     string `json:"codigo"`
	Nome       string `json:"nome"`
	Ativa      bool   `json:"ativa"`
	Observacao string `json:"observacao"`
}

func unitToDTO(u models.Unit) unitDTO {
	return unitDTO{Codigo: u.Code, Nome: u.Name, Ativa: u.Active, Observacao: u.Notes}
}

func (d unitDTO) toModel() models.Unit {
	return models.Unit{ID: d.ID, Code: d.Codigo, Name: d.Nome, Active: d.Ativa, Notes: d.Observacao}
}

// envelope wraps unit responses as {"data": ...}.
type envelope[T any] struct {
	Data T `json:"data"`
}

// ListUnits fetches every unit.
func (c *Client) ListUnits(ctx context.Context) ([]models.Unit, error) {
	var out envelope[[]unitDTO]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&out).
		Get(unitsPath)
	if err := c.check(resp, err, "list units", 0); err != nil {
		return nil, err
	}

	units := make([]models.Unit, 0, len(out.Data))
	for _, d := range out.Data {
		units = append(units, d.toModel())
	}
	return units, nil
}

// CreateUnit creates u and returns it with the id the backend assigned, when it reports one.
func (c *Client) CreateUnit(ctx context.Context, u models.Unit) (models.Unit, error) {
	var out envelope[unitDTO]
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(unitToDTO(u)).
		SetResult(&out).
		Post(unitsPath)
	if err := c.check(resp, err, "create unit", 0); err != nil {
		return models.Unit{}, err
	}

	if out.Data.ID != 0 {
		return out.Data.toModel(), nil
	}
	return u, nil
}

// UpdateUnit replaces unit id with u.
func (c *Client) UpdateUnit(ctx context.Context, id int64, u models.Unit) (models.Unit, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(unitToDTO(u)).
		Put(unitsPath + "/{id}")
	if err := c.check(resp, err, "update unit", id); err != nil {
		return models.Unit{}, err
	}

	u.ID = id
	return u, nil
}

// DeleteUnit removes unit id.
func (c *Client) DeleteUnit(ctx context.Context, id int64) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(unitsPath + "/{id}")
	return c.check(resp, err, "delete unit", id)
}

// check turns transport failures and non-2xx answers into errors. A 404 for a
// specific unit (id != 0) becomes ErrUnitNotFound.
func (c *Client) check(resp *resty.Response, err error, op string, id int64) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if id != 0 && resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %d", ErrUnitNotFound, id)
	}
	if resp.IsError() {
		c.logger.Error("Units API returned error",
			zap.String("op", op),
			zap.Int("status_code", resp.StatusCode()),
		)
		return fmt.Errorf("%s: backend status %d", op, resp.StatusCode())
	}
	return nil
}
