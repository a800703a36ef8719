package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vibegadget/background-worker-service/internal/app/background-worker/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCreateConsignment_Success(t *testing.T) {
	orderID := uuid.New()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/consignments", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var received entity.ConsignmentRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, orderID, received.OrderID)
		assert.Equal(t, "Aibek Toleu", received.RecipientName)
		assert.Equal(t, "+77010000000", received.Phone)
		assert.Equal(t, "Tastaq 12, apt 7", received.ShippingAddress)
		assert.Equal(t, int64(2150), received.CODAmount)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"tracking_id": "KZ123456"}`))
	}))
	defer server.Close()

	client := NewCourierClient(server.URL, "test-key", 5*time.Second)

	trackingID, err := client.CreateConsignment(context.Background(), &entity.ConsignmentRequest{
		OrderID:         orderID,
		RecipientName:   "Aibek Toleu",
		Phone:           "+77010000000",
		ShippingAddress: "Tastaq 12, apt 7",
		Items:           []entity.ConsignmentItem{{Name: "Wireless Earbuds", Quantity: 2}},
		CODAmount:       2150,
	})

	assert.NoError(t, err)
	assert.Equal(t, "KZ123456", trackingID)
}

func TestCreateConsignment_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewCourierClient(server.URL, "", 5*time.Second)

	_, err := client.CreateConsignment(context.Background(), &entity.ConsignmentRequest{OrderID: uuid.New()})

	assert.Error(t, err)
}

func TestCreateConsignment_EmptyTrackingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tracking_id": ""}`))
	}))
	defer server.Close()

	client := NewCourierClient(server.URL, "", 5*time.Second)

	_, err := client.CreateConsignment(context.Background(), &entity.ConsignmentRequest{OrderID: uuid.New()})

	assert.Error(t, err)
}

func TestSendMessage_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sendMessage", r.URL.Path)

		var received map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "-100200300", received["chat_id"])
		assert.Equal(t, "New order", received["text"])

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewChatBotClient(server.URL, "bot-token", 5*time.Second)

	err := client.SendMessage(context.Background(), "-100200300", "New order")

	assert.NoError(t, err)
}

func TestSendMessage_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewChatBotClient(server.URL, "", 5*time.Second)

	err := client.SendMessage(context.Background(), "-100200300", "New order")

	assert.Error(t, err)
}
