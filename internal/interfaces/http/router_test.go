package http_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/buyitem-api/internal/application/dto"
	"github.com/jhoicas/buyitem-api/internal/application/inventory"
	"github.com/jhoicas/buyitem-api/internal/application/usecase"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/memory"
	"github.com/jhoicas/buyitem-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/buyitem-api/internal/interfaces/http"
	"github.com/jhoicas/buyitem-api/pkg/logger"
	pkgjwt "github.com/jhoicas/buyitem-api/pkg/jwt"
)

// newTestAPI arma la API completa sobre el almacén en memoria.
func newTestAPI(jwtSecret string) *fiber.App {
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ItemUC:    usecase.NewItemUseCase(store.Items(), store),
		UserUC:    usecase.NewUserUseCase(store.Users()),
		StockUC:   inventory.NewStockUseCase(store, store.Items(), store.Reservations(), nil, nil),
		ReportUC:  inventory.NewReportUseCase(store.Items(), pdf.NewMarotoStockReportGenerator("buyitem-api"), 5),
		Storage:   store,
		JWTSecret: jwtSecret,
		Log:       logger.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func postItem(t *testing.T, app *fiber.App, name string, stock int) dto.ItemResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/items",
		fmt.Sprintf(`{"name":%q,"state":"nuevo","market":"retail","stock":%d,"priceTag":5.00}`, name, stock))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ItemResponse](t, resp)
}

func stockOf(t *testing.T, app *fiber.App, id int64) int64 {
	t.Helper()
	resp := call(t, app, http.MethodGet, fmt.Sprintf("/items/%d", id), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return decode[dto.ItemResponse](t, resp).Stock
}

// ─── Stock ───────────────────────────────────────────────────────────────────

func TestRouter_EscenarioWidget(t *testing.T) {
	app := newTestAPI("")
	widget := postItem(t, app, "widget", 10)
	base := fmt.Sprintf("/items/%d", widget.ItemUID)

	resp := call(t, app, http.MethodPost, base+"/dispatch", `{"quantity":3}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body, "dispatch responde sin cuerpo")
	assert.Equal(t, int64(7), stockOf(t, app, widget.ItemUID))

	resp = call(t, app, http.MethodPost, base+"/block", `{"quantity":2}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(5), stockOf(t, app, widget.ItemUID))

	resp = call(t, app, http.MethodPost, base+"/restock", `{"quantity":4}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(9), stockOf(t, app, widget.ItemUID))

	resp = call(t, app, http.MethodPost, base+"/dispatch", `{"quantity":20}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
	assert.Equal(t, int64(9), stockOf(t, app, widget.ItemUID))
}

func TestRouter_CantidadInvalida(t *testing.T) {
	app := newTestAPI("")
	widget := postItem(t, app, "widget", 10)

	resp := call(t, app, http.MethodPost, fmt.Sprintf("/items/%d/restock", widget.ItemUID), `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/items/%d/dispatch", widget.ItemUID), `{"quantity":`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/items/abc/dispatch", `{"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_ID", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPost, "/items/404/dispatch", `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_BlockParaUsuarioYReservas(t *testing.T) {
	app := newTestAPI("")
	widget := postItem(t, app, "widget", 10)
	resp := call(t, app, http.MethodPost, "/user", `{"firstName":"Ana","lastName":"Gómez"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	user := decode[dto.UserResponse](t, resp)

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/items/%d/%d/block", widget.ItemUID, user.UserUID), `{"quantity":4}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(6), stockOf(t, app, widget.ItemUID))

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/items/%d/999/block", widget.ItemUID), `{"quantity":1}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, int64(6), stockOf(t, app, widget.ItemUID))

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/items/%d/reservations", widget.ItemUID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	reservations := decode[[]dto.ReservationResponse](t, resp)
	require.Len(t, reservations, 1)
	assert.Equal(t, user.UserUID, reservations[0].UserUID)
	assert.Equal(t, int64(4), reservations[0].Quantity)
}

// ─── Items CRUD ──────────────────────────────────────────────────────────────

func TestRouter_ItemsCRUD(t *testing.T) {
	app := newTestAPI("")
	widget := postItem(t, app, "widget", 10)
	assert.Equal(t, "widget", widget.Name)

	resp := call(t, app, http.MethodPost, "/items", `{"name":"widget"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/items/%d", widget.ItemUID), `{"state":"usado"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.ItemResponse](t, resp)
	assert.Equal(t, "usado", updated.State)
	assert.Equal(t, "retail", updated.Market)
	assert.Equal(t, int64(10), updated.Stock)

	resp = call(t, app, http.MethodGet, "/items/all", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 1)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/items/%d", widget.ItemUID), "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/items/%d", widget.ItemUID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodDelete, fmt.Sprintf("/items/%d", widget.ItemUID), "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_GetItemsReportaFaltantes(t *testing.T) {
	app := newTestAPI("")
	a := postItem(t, app, "a", 1)
	b := postItem(t, app, "b", 1)

	resp := call(t, app, http.MethodGet, fmt.Sprintf("/items/getItems?idList=%d,77&idList=%d", a.ItemUID, b.ItemUID), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "77", resp.Header.Get(apphttp.HeaderMissingIDs))
	assert.Len(t, decode[[]dto.ItemResponse](t, resp), 2)

	resp = call(t, app, http.MethodGet, "/items/getItems?idList=1,x", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_UpdateItemsTodoONada(t *testing.T) {
	app := newTestAPI("")
	a := postItem(t, app, "a", 1)
	b := postItem(t, app, "b", 1)

	resp := call(t, app, http.MethodPatch, fmt.Sprintf("/items/updateItems?idList=%d,%d", a.ItemUID, b.ItemUID), `{"market":"mayorista"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[[]dto.ItemResponse](t, resp)
	require.Len(t, out, 2)
	assert.Equal(t, "mayorista", out[1].Market)

	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/items/updateItems?idList=%d,999", a.ItemUID), `{"market":"online"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/items/%d", a.ItemUID), "")
	assert.Equal(t, "mayorista", decode[dto.ItemResponse](t, resp).Market)
}

func TestRouter_StockReportPDF(t *testing.T) {
	app := newTestAPI("")
	postItem(t, app, "widget", 10)

	resp := call(t, app, http.MethodGet, "/items/report", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, strings.HasPrefix(string(body), "%PDF"))
}

// ─── Users ───────────────────────────────────────────────────────────────────

func TestRouter_Users(t *testing.T) {
	app := newTestAPI("")
	resp := call(t, app, http.MethodPost, "/user", `{"firstName":"Ana","lastName":"Gómez"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	ana := decode[dto.UserResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/user", `{"firstName":"","lastName":"X"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodPatch, fmt.Sprintf("/user/%d", ana.UserUID), `{"firstName":"  ","lastName":"Ruiz"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[dto.UserResponse](t, resp)
	assert.Equal(t, "Ana", updated.FirstName)
	assert.Equal(t, "Ruiz", updated.LastName)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/user/%d", ana.UserUID), "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/user/all", "")
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 1)

	resp = call(t, app, http.MethodGet, fmt.Sprintf("/user/getUsers?idList=%d,5", ana.UserUID), "")
	assert.Equal(t, "5", resp.Header.Get(apphttp.HeaderMissingIDs))
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 1)

	resp = call(t, app, http.MethodGet, "/user/42", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ─── Ambient ─────────────────────────────────────────────────────────────────

func TestRouter_HealthYRequestID(t *testing.T) {
	app := newTestAPI("")

	resp := call(t, app, http.MethodGet, "/health", "", apphttp.HeaderRequestID, "req-123")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))

	resp = call(t, app, http.MethodGet, "/health", "")
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRouter_ConJWT(t *testing.T) {
	app := newTestAPI(testJWTSecret)

	resp := call(t, app, http.MethodGet, "/items/all", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	admin := tokenForRole(t, pkgjwt.RoleAdmin)
	operator := tokenForRole(t, pkgjwt.RoleOperator)

	resp = call(t, app, http.MethodPost, "/items", `{"name":"widget","stock":3}`, "Authorization", operator)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "operator no puede crear items")

	resp = call(t, app, http.MethodPost, "/items", `{"name":"widget","stock":3}`, "Authorization", admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	widget := decode[dto.ItemResponse](t, resp)

	resp = call(t, app, http.MethodPost, fmt.Sprintf("/items/%d/dispatch", widget.ItemUID), `{"quantity":1}`, "Authorization", operator)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "operator puede mover stock")

	resp = call(t, app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode, "/health es público")
}
