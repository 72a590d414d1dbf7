package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/review-portal/backend/internal/handlers"
	"github.com/anonto42/review-portal/backend/internal/repositories/mocks"
	"github.com/anonto42/review-portal/backend/internal/services"
	"github.com/anonto42/review-portal/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Data  json.RawMessage    `json:"data"`
	Error *handlers.APIError `json:"error"`
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	return e
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func do(t *testing.T, e *echo.Echo, method, target string, body io.Reader, contentType string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	return do(t, e, method, target, r, echo.MIMEApplicationJSON)
}

func multipartBody(t *testing.T, fields map[string]string, fileField, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

// memoryBlobStore records uploads and hands out predictable URLs.
type memoryBlobStore struct {
	uploads map[string]string
}

func (s *memoryBlobStore) Upload(_ context.Context, name, _ string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.uploads == nil {
		s.uploads = map[string]string{}
	}
	url := "https://blobs.example.com/" + name
	s.uploads[url] = string(data)
	return url, nil
}

type projectEnv struct {
	e             *echo.Echo
	projects      *mocks.ProjectRepository
	comments      *mocks.CommentRepository
	notifications *mocks.NotificationRepository
	blobs         *memoryBlobStore
}

func newProjectEnv() *projectEnv {
	env := &projectEnv{
		e:             newEcho(),
		projects:      &mocks.ProjectRepository{},
		comments:      &mocks.CommentRepository{},
		notifications: &mocks.NotificationRepository{},
		blobs:         &memoryBlobStore{},
	}
	logger := discardLogger()
	notifier := services.NewNotificationService(env.notifications, nil, logger)
	projectService := services.NewProjectService(env.projects, env.comments, env.notifications, notifier, nil, logger)
	commentService := services.NewCommentService(env.comments, env.projects, notifier, logger)

	api := env.e.Group("/api/v1")
	handlers.NewProjectHandler(projectService, commentService, env.blobs).RegisterProjectRoutes(api, api)
	handlers.NewCommentHandler(commentService).RegisterCommentRoutes(api)
	handlers.NewNotificationHandler(notifier).RegisterNotificationRoutes(api)
	return env
}
