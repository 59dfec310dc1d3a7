package room_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	roomMocks "hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/handlers/room"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*roomMocks.MockRoomService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := roomMocks.NewMockRoomService(ctrl)

	handler := room.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestHandler_CreateRoom(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(svc *roomMocks.MockRoomService)
		wantCode  int
		wantError string
	}{
		{
			name: "creates a room",
			body: `{"number":"101","type":"Deluxe","price":2000,"capacity":2,"images":["https://res.cloudinary.com/demo/a.png"]}`,
			setupMock: func(svc *roomMocks.MockRoomService) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
					return dto.RoomResponse{ID: "r1", Number: req.Number, Images: req.Images}, nil
				})
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing number",
			body:      `{"type":"Deluxe","price":2000,"capacity":2}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "number",
		},
		{
			name:      "blank type",
			body:      `{"number":"101","type":"   ","price":2000,"capacity":2}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "type",
		},
		{
			name:      "price must be positive",
			body:      `{"number":"101","type":"Deluxe","price":0,"capacity":2}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "price",
		},
		{
			name:      "unknown status",
			body:      `{"number":"101","type":"Deluxe","price":10,"capacity":2,"status":"Haunted"}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "status",
		},
		{
			name:      "booked is set by reservations only",
			body:      `{"number":"101","type":"Deluxe","price":10,"capacity":2,"status":"Booked"}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
			wantError: "status",
		},
		{
			name:      "images must be urls",
			body:      `{"number":"101","type":"Deluxe","price":10,"capacity":2,"images":["not a url"]}`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed body",
			body:      `{"number":`,
			setupMock: func(*roomMocks.MockRoomService) {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setupMock(svc)

			recorder := serve(router, http.MethodPost, "/rooms/", tt.body)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantError != "" {
				var body struct {
					Error string `json:"error"`
				}

				require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
				assert.Contains(t, body.Error, tt.wantError)
			}
		})
	}
}

func TestHandler_CreateRoom_KeepsImageURLs(t *testing.T) {
	svc, router := newRouter(t)
	url := "https://res.cloudinary.com/demo/image/upload/v1/hotel/rooms/a.png"

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req dto.CreateRoomRequest) (dto.RoomResponse, error) {
		assert.Equal(t, []string{url}, req.Images)

		return dto.RoomResponse{ID: "r1", Images: req.Images}, nil
	})

	recorder := serve(router, http.MethodPost, "/rooms/", `{"number":"101","type":"Deluxe","price":2000,"capacity":2,"images":["`+url+`"]}`)

	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Data dto.RoomResponse `json:"data"`
	}

	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, []string{url}, body.Data.Images)
}

func TestHandler_UpdateRoom(t *testing.T) {
	t.Run("passes the path id", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Update(gomock.Any(), gomock.Any(), "r1").Return(nil)

		recorder := serve(router, http.MethodPatch, "/rooms/r1", `{"price":2500}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("occupied is set by reservations only", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPatch, "/rooms/r1", `{"status":"Occupied"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("invalid capacity never reaches the service", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPatch, "/rooms/r1", `{"capacity":0}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_CreateRooms_RejectsEmptyBatch(t *testing.T) {
	_, router := newRouter(t)

	recorder := serve(router, http.MethodPost, "/rooms/bulk", `{"rooms":[]}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
