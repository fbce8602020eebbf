package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/swiftparcel/swiftparcel-backend/internal/config"
	"github.com/swiftparcel/swiftparcel-backend/internal/models"
	"github.com/swiftparcel/swiftparcel-backend/internal/services"
)

func parcelRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.GET("/parcels", GetParcels(db))
	r.GET("/parcels/:id", GetParcel(db))
	r.POST("/parcels", CreateParcel(db))
	r.DELETE("/parcels/:id", DeleteParcel(db))
	r.GET("/tracking/:trackingId", TrackParcel(db))
	return r
}

func TestCreateParcelForcesUnpaid(t *testing.T) {
	db := setupTestDB(t)
	r := parcelRouter(db)

	w := performRequest(r, "POST", "/parcels", gin.H{
		"senderEmail":   "a@x.com",
		"cost":          10,
		"parcelName":    "Box",
		"paymentStatus": "paid", // must be ignored
	}, nil)
	require.Equal(t, 201, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "unpaid", body["paymentStatus"])
	assert.NotEmpty(t, body["createdAt"])
	assert.NotContains(t, body, "trackingId")
}

func TestGetParcelsFilterAndSort(t *testing.T) {
	db := setupTestDB(t)

	older := models.Parcel{SenderEmail: "a@x.com", ParcelName: "Old", Cost: 5,
		PaymentStatus: models.PaymentStatusUnpaid, DeliveryStatus: models.DeliveryStatusPending,
		CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Parcel{SenderEmail: "a@x.com", ParcelName: "New", Cost: 6,
		PaymentStatus: models.PaymentStatusUnpaid, DeliveryStatus: models.DeliveryStatusPending,
		CreatedAt: time.Now()}
	other := models.Parcel{SenderEmail: "b@x.com", ParcelName: "Other", Cost: 7,
		PaymentStatus: models.PaymentStatusUnpaid, DeliveryStatus: models.DeliveryStatusPending}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&other).Error)

	r := parcelRouter(db)
	w := performRequest(r, "GET", "/parcels?email=a@x.com", nil, nil)
	require.Equal(t, 200, w.Code)

	var parcels []models.Parcel
	require.NoError(t, jsonUnmarshal(w.Body.Bytes(), &parcels))
	require.Len(t, parcels, 2)
	assert.Equal(t, "New", parcels[0].ParcelName)
	assert.Equal(t, "Old", parcels[1].ParcelName)
}

func TestGetParcelAbsentIsNullBody(t *testing.T) {
	db := setupTestDB(t)
	r := parcelRouter(db)

	w := performRequest(r, "GET", "/parcels/42", nil, nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "null", w.Body.String())
}

func TestDeleteParcel(t *testing.T) {
	db := setupTestDB(t)
	parcel := seedParcel(t, db, "a@x.com")

	r := parcelRouter(db)
	w := performRequest(r, "DELETE", "/parcels/"+uintPath(parcel.ID), nil, nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["deletedCount"])

	var count int64
	db.Model(&models.Parcel{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestUploadParcelPhotoLocalStorage(t *testing.T) {
	db := setupTestDB(t)
	parcel := seedParcel(t, db, "a@x.com")

	dir := t.TempDir()
	require.NoError(t, services.InitStorage(&config.Config{
		UploadDir: dir,
		BaseURL:   "http://localhost:8080",
	}))

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("photo", "proof.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := gin.New()
	r.POST("/parcels/:id/photo", UploadParcelPhoto(db, nil))

	req := httptest.NewRequest("POST", "/parcels/"+uintPath(parcel.ID)+"/photo", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	photoURL, _ := body["photoUrl"].(string)
	assert.Contains(t, photoURL, "http://localhost:8080/uploads/parcels/")

	var updated models.Parcel
	require.NoError(t, db.First(&updated, parcel.ID).Error)
	assert.Equal(t, models.DeliveryStatusDelivered, updated.DeliveryStatus)
	assert.NotEmpty(t, updated.PhotoURL)

	entries, err := os.ReadDir(filepath.Join(dir, "parcels"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUploadParcelPhotoMissingFile(t *testing.T) {
	db := setupTestDB(t)
	parcel := seedParcel(t, db, "a@x.com")

	require.NoError(t, services.InitStorage(&config.Config{UploadDir: t.TempDir()}))

	r := gin.New()
	r.POST("/parcels/:id/photo", UploadParcelPhoto(db, nil))

	w := performRequest(r, "POST", "/parcels/"+uintPath(parcel.ID)+"/photo", nil, nil)
	assert.Equal(t, 400, w.Code)

	var unchanged models.Parcel
	require.NoError(t, db.First(&unchanged, parcel.ID).Error)
	assert.Equal(t, models.DeliveryStatusPending, unchanged.DeliveryStatus)
}

func TestTrackParcel(t *testing.T) {
	db := setupTestDB(t)

	tracking := "PRCL-20260830-1A2B3C"
	parcel := models.Parcel{SenderEmail: "a@x.com", ParcelName: "Box", Cost: 10,
		PaymentStatus: models.PaymentStatusPaid, DeliveryStatus: models.DeliveryStatusPending,
		TrackingID: &tracking}
	require.NoError(t, db.Create(&parcel).Error)

	r := parcelRouter(db)

	w := performRequest(r, "GET", "/tracking/"+tracking, nil, nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, tracking, body["trackingId"])

	w = performRequest(r, "GET", "/tracking/PRCL-20260830-FFFFFF", nil, nil)
	assert.Equal(t, 404, w.Code)
}
