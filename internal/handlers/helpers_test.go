package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"github.com/swiftparcel/swiftparcel-backend/internal/payments"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A second pooled connection would see its own empty in-memory DB
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Parcel{},
		&models.Payment{},
		&models.Rider{},
	))

	return db
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func performRequest(r http.Handler, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonUnmarshal(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}

func uintPath(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// stubProvider is a canned checkout provider for handler tests
type stubProvider struct {
	sessions map[string]*payments.Session
	err      error
	created  []payments.CheckoutParams
}

func (s *stubProvider) CreateCheckoutSession(_ context.Context, params payments.CheckoutParams) (*payments.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, params)
	return &payments.Session{
		ID:  fmt.Sprintf("cs_test_%d", len(s.created)),
		URL: "https://checkout.test/session",
	}, nil
}

func (s *stubProvider) RetrieveSession(_ context.Context, sessionID string) (*payments.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("no such session: %s", sessionID)
	}
	return sess, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}
