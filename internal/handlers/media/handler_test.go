package media_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"hotel/infras/otel/mocks"
	mediaMocks "hotel/internal/domains/media/mocks"
	"hotel/internal/domains/media/model/dto"
	"hotel/internal/handlers/media"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func uploadRequest(t *testing.T, contentType, folder string) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="upload"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("payload"))
	require.NoError(t, err)

	if folder != "" {
		require.NoError(t, writer.WriteField("folder", folder))
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/media/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req
}

func TestHandler_Upload(t *testing.T) {
	url := "https://res.cloudinary.com/demo/image/upload/v1/hotel/rooms/a.png"

	tests := []struct {
		name        string
		contentType string
		folder      string
		setupMock   func(svc *mediaMocks.MockMedia)
		wantCode    int
	}{
		{
			name:        "uploads an image",
			contentType: "image/png",
			folder:      "rooms",
			setupMock: func(svc *mediaMocks.MockMedia) {
				svc.EXPECT().Upload(gomock.Any(), gomock.Any()).Return(dto.UploadResponse{URL: url, PublicID: "a"}, nil)
			},
			wantCode: http.StatusCreated,
		},
		{
			name:        "rejects other file types before uploading",
			contentType: "application/pdf",
			setupMock:   func(*mediaMocks.MockMedia) {},
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "rejects unknown folders before uploading",
			contentType: "image/png",
			folder:      "../secrets",
			setupMock:   func(*mediaMocks.MockMedia) {},
			wantCode:    http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mediaMocks.NewMockMedia(ctrl)
			tt.setupMock(svc)

			handler := media.New(svc, mocks.NewOtel())
			recorder := httptest.NewRecorder()

			handler.Upload(recorder, uploadRequest(t, tt.contentType, tt.folder))

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantCode != http.StatusCreated {
				return
			}

			var body struct {
				Data dto.UploadResponse `json:"data"`
			}

			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, url, body.Data.URL)
		})
	}
}

func TestHandler_UploadWithoutFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := media.New(mediaMocks.NewMockMedia(ctrl), mocks.NewOtel())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("folder", "rooms"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/media/upload", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	handler.Upload(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.JSONEq(t, `{"error":"file is required"}`, recorder.Body.String())
}
