package requests_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chris/tailorshop-ledger/pkg/api"
	handlers "github.com/chris/tailorshop-ledger/pkg/handlers/requests"
	"github.com/chris/tailorshop-ledger/pkg/ledger"
	"github.com/chris/tailorshop-ledger/pkg/models"
	"github.com/chris/tailorshop-ledger/pkg/requests"
	"github.com/chris/tailorshop-ledger/pkg/settings"
	"github.com/chris/tailorshop-ledger/pkg/storage/memory"
	"github.com/chris/tailorshop-ledger/pkg/websockets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	messages []websockets.Message
}

func (p *recordingPublisher) Publish(ctx context.Context, m websockets.Message) error {
	p.messages = append(p.messages, m)
	return nil
}

func setup(t *testing.T) (*handlers.RequestsHandler, *recordingPublisher) {
	t.Helper()
	store := memory.New()
	for _, w := range []models.Worker{
		{Id: "A", CanWithdraw: true, UpiId: "a@upi"},
		{Id: "B"},
	} {
		w := w
		require.NoError(t, store.PutWorker(context.Background(), &w))
	}
	svc := requests.New(store, ledger.NewWriter(store), settings.New(store, nil))
	pub := &recordingPublisher{}
	return handlers.NewRequestsHandler(svc, store, pub), pub
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestAddFundsAndApprove(t *testing.T) {
	h, pub := setup(t)

	rr := httptest.NewRecorder()
	h.CreateRequest(rr, post(`{"user_id":"A","type":"ADD_FUNDS","amount":"1000","utr":"UTR-9"}`))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created api.Request
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.Equal(t, "PENDING", created.Status)

	rr = httptest.NewRecorder()
	h.ApproveRequest(rr, post(""), created.Id)
	require.Equal(t, http.StatusOK, rr.Code)

	var approved api.Request
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &approved))
	assert.Equal(t, "APPROVED", approved.Status)
	require.NotNil(t, approved.TransactionId)

	require.Len(t, pub.messages, 1)
	payload := pub.messages[0].Payload.(websockets.WalletUpdatePayload)
	assert.Equal(t, "1000", payload.NewBalance.String())

	rr = httptest.NewRecorder()
	h.RejectRequest(rr, post(""), created.Id)
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCreateRequestValidation(t *testing.T) {
	t.Run("Missing UTR", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.CreateRequest(rr, post(`{"user_id":"A","type":"ADD_FUNDS","amount":"10"}`))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Insufficient Funds", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.CreateRequest(rr, post(`{"user_id":"A","type":"WITHDRAW","amount":"600","method":"UPI"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Unknown Request", func(t *testing.T) {
		h, _ := setup(t)
		rr := httptest.NewRecorder()

		h.ApproveRequest(rr, post(""), "missing")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestReleaseAndTransfer(t *testing.T) {
	h, pub := setup(t)

	rr := httptest.NewRecorder()
	h.CreateRelease(rr, post(`{"user_id":"A","amount":"250","wallet_type":"Booking"}`))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	h.CreateTransfer(rr, post(`{"from_user_id":"A","to_user_id":"B","amount":"100"}`))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var result api.TransferResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Len(t, result.TransactionIds, 2)

	require.Len(t, pub.messages, 3)
	from := pub.messages[1].Payload.(websockets.WalletUpdatePayload)
	to := pub.messages[2].Payload.(websockets.WalletUpdatePayload)
	assert.Equal(t, "150", from.NewBalance.String())
	assert.Equal(t, "-100", from.Change.String())
	assert.Equal(t, "100", to.NewBalance.String())

	rr = httptest.NewRecorder()
	h.CreateTransfer(rr, post(`{"from_user_id":"A","to_user_id":"B","amount":"1000"}`))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	h.CreateRelease(rr, post(`{"user_id":"A","amount":"5","wallet_type":"Savings"}`))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
