package validate

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type movementRequest struct {
	BatchID  uint `json:"batch_id" validate:"required"`
	Quantity int  `json:"quantity" validate:"gte=0"`
}

func TestValidate(t *testing.T) {
	v := New()
	if err := v.Validate(&movementRequest{BatchID: 1, Quantity: 2}); err != nil {
		t.Fatalf("valid request: %v", err)
	}
	err := v.Validate(&movementRequest{Quantity: -1})
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
	fields := he.Message.(echo.Map)["fields"].(map[string]string)
	if fields["BatchID"] != "required" || fields["Quantity"] != "gte" {
		t.Errorf("fields = %v", fields)
	}
}

func TestBindAndValidate(t *testing.T) {
	e := echo.New()
	e.Validator = New()

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"batch_id": 3, "quantity": 4}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())
	var body movementRequest
	if err := BindAndValidate(c, &body); err != nil {
		t.Fatalf("BindAndValidate: %v", err)
	}
	if body.BatchID != 3 || body.Quantity != 4 {
		t.Errorf("body = %+v", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"batch_id": "x"`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c = e.NewContext(req, httptest.NewRecorder())
	if err := BindAndValidate(c, &body); err == nil {
		t.Error("malformed body should fail")
	}
}
