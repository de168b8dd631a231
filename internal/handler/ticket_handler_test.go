package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/entryx/ticketing/internal/assetcode"
	"github.com/entryx/ticketing/internal/dto"
	"github.com/entryx/ticketing/internal/models"
	"github.com/entryx/ticketing/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock TicketService ---

type mockTicketService struct {
	createFn   func(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error)
	updateFn   func(ctx context.Context, assetID uint, callerKey string, upd service.CategoryUpdate) (*models.Asset, error)
	listFn     func(ctx context.Context, eventID uint) ([]models.Asset, error)
	tokenizeFn func(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error)
}

func (m *mockTicketService) CreateCategory(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error) {
	return m.createFn(ctx, in)
}
func (m *mockTicketService) UpdateCategory(ctx context.Context, assetID uint, callerKey string, upd service.CategoryUpdate) (*models.Asset, error) {
	return m.updateFn(ctx, assetID, callerKey, upd)
}
func (m *mockTicketService) ListCategories(ctx context.Context, eventID uint) ([]models.Asset, error) {
	return m.listFn(ctx, eventID)
}
func (m *mockTicketService) Tokenize(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error) {
	return m.tokenizeFn(ctx, assetID, callerKey)
}

// --- Tests ---

func TestCreateCategory_Handler_Success(t *testing.T) {
	svc := &mockTicketService{
		createFn: func(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error) {
			assert.Equal(t, uint(1), in.EventID)
			assert.Equal(t, testWalletKey, in.CallerKey)
			assert.Equal(t, assetcode.SizeMedium, in.Size)
			return &models.Asset{
				ID:           10,
				EventID:      in.EventID,
				Sequence:     1,
				Code:         "ENTRYXX30001",
				Label:        in.Label,
				Size:         in.Size,
				TotalUnits:   in.TotalUnits,
				PricePerUnit: in.PricePerUnit,
			}, nil
		},
	}

	e := echo.New()
	body := `{"label":"General Admission","total_units":500,"price_per_unit":25,"size":"medium"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(svc)
	err := h.CreateCategory(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ENTRYXX30001", resp.Code)
	assert.Equal(t, uint32(1), resp.Sequence)
	assert.Nil(t, resp.Address)
}

func TestCreateCategory_Handler_InvalidBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/categories", strings.NewReader(`{"label":""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(&mockTicketService{})
	err := h.CreateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCreateCategory_Handler_Forbidden(t *testing.T) {
	svc := &mockTicketService{
		createFn: func(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error) {
			return nil, service.ErrNotEventOwner
		},
	}

	e := echo.New()
	body := `{"label":"VIP","total_units":50,"price_per_unit":120}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(svc)
	err := h.CreateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusForbidden, httpErr.Code)
}

func TestCreateCategory_Handler_Overflow(t *testing.T) {
	svc := &mockTicketService{
		createFn: func(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error) {
			return nil, assetcode.ErrAllocationOverflow
		},
	}

	e := echo.New()
	body := `{"label":"One Too Many","total_units":1,"price_per_unit":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(svc)
	err := h.CreateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
}

func TestCreateCategory_Handler_SequenceConflict(t *testing.T) {
	svc := &mockTicketService{
		createFn: func(ctx context.Context, in service.CreateCategoryInput) (*models.Asset, error) {
			return nil, service.ErrSequenceConflict
		},
	}

	e := echo.New()
	body := `{"label":"Contended","total_units":10,"price_per_unit":5}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/1/categories", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(svc)
	err := h.CreateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdateCategory_Handler_Locked(t *testing.T) {
	svc := &mockTicketService{
		updateFn: func(ctx context.Context, assetID uint, callerKey string, upd service.CategoryUpdate) (*models.Asset, error) {
			return nil, service.ErrAssetLocked
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/categories/10", strings.NewReader(`{"total_units":600}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewTicketHandler(svc)
	err := h.UpdateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestUpdateCategory_Handler_RejectsZeroUnits(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/categories/10", strings.NewReader(`{"total_units":0}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewTicketHandler(&mockTicketService{})
	err := h.UpdateCategory(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestTokenize_Handler_Success(t *testing.T) {
	hash := "txhash-1"
	svc := &mockTicketService{
		tokenizeFn: func(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error) {
			return &models.Asset{ID: assetID, Code: "ENTRYXX30001", Address: &hash}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories/10/tokenize", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewTicketHandler(svc)
	err := h.Tokenize(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Address)
	assert.Equal(t, "txhash-1", *resp.Address)
}

func TestTokenize_Handler_AlreadyLocked(t *testing.T) {
	svc := &mockTicketService{
		tokenizeFn: func(ctx context.Context, assetID uint, callerKey string) (*models.Asset, error) {
			return nil, service.ErrAssetLocked
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories/10/tokenize", nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec)
	c.SetParamNames("id")
	c.SetParamValues("10")

	h := NewTicketHandler(svc)
	err := h.Tokenize(c)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
}

func TestListCategories_Handler(t *testing.T) {
	svc := &mockTicketService{
		listFn: func(ctx context.Context, eventID uint) ([]models.Asset, error) {
			return []models.Asset{
				{ID: 10, EventID: eventID, Sequence: 1, Code: "ENTRYXX30001", Label: "GA"},
				{ID: 11, EventID: eventID, Sequence: 2, Code: "ENTRYXX30002", Label: "VIP"},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events/1/categories", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	h := NewTicketHandler(svc)
	err := h.ListCategories(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "ENTRYXX30002", resp[1].Code)
}
