package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/database/dbtest"
	"github.com/sahilchouksey/online-lms/handlers"
	"github.com/sahilchouksey/online-lms/utils"
	"github.com/sahilchouksey/online-lms/utils/response"
)

type unreachableStore struct{ database.Storage }

func (unreachableStore) HealthCheck() error { return errors.New("dial tcp: connection refused") }

func TestHandleCheckHealth(t *testing.T) {
	store := dbtest.New(t)

	tests := []struct {
		name     string
		store    database.Storage
		wantCode int
		wantErr  string
	}{
		{"database up", store, fiber.StatusOK, ""},
		{"database down", unreachableStore{store}, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, tt.store))

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ping", nil), -1)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.wantCode {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.wantCode)
			}

			var body response.Response
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.wantErr == "" {
				if !body.Success {
					t.Fatalf("expected success envelope, got %+v", body)
				}
				return
			}
			if body.Error == nil || body.Error.Code != tt.wantErr {
				t.Fatalf("error = %+v, want code %s", body.Error, tt.wantErr)
			}
		})
	}
}
