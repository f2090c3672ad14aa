package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

var upgrader = websocket.Upgrader{}

// newChannelServer serves one exchange per connection the way the real
// backend does: read an envelope, answer with a correlated ack.
func newChannelServer(t *testing.T) *httptest.Server {
	t.Helper()

	records := []recordDTO{
		{ID: "stu-1", Name: "Alice", Email: "alice@school.edu", Fees: false},
		{ID: "stu-2", Name: "Bob", Email: "bob@school.edu", Fees: true},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var env requestEnvelope
		if err := conn.ReadJSON(&env); err != nil {
			return
		}

		ack := Ack{RequestID: env.RequestID, Success: true}
		switch env.Event {
		case EventGetStudentDetails:
			ack.Data, _ = json.Marshal(records)

		case EventGetStudent:
			raw, _ := json.Marshal(env.Data)
			var req fetchOneDTO
			json.Unmarshal(raw, &req)
			found := false
			for _, rec := range records {
				if rec.ID == req.ID {
					ack.Data, _ = json.Marshal(rec)
					found = true
				}
			}
			if !found {
				ack.Success = false
				ack.Error = "Student not found"
			}

		case EventUpdateStudent:
			raw, _ := json.Marshal(env.Data)
			var req profileUpdateDTO
			json.Unmarshal(raw, &req)
			ack.Data, _ = json.Marshal(recordDTO{
				ID: req.ID, Name: req.Name, Email: req.Email, Fees: false,
			})

		case EventUpdateFeeStatus:
			raw, _ := json.Marshal(env.Data)
			var req feeStatusDTO
			json.Unmarshal(raw, &req)
			if req.ID == "stu-reject" {
				ack.Success = false
				ack.Error = "Fee update failed"
			}

		default:
			ack.Success = false
			ack.Error = "unknown event " + env.Event
		}

		conn.WriteJSON(ack)
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestChannelFetchAll(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	records, err := channel.FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Wire names sname/fees are mapped to domain names, server order kept.
	assert.Equal(t, student.ID("stu-1"), records[0].ID)
	assert.Equal(t, "Alice", records[0].Name)
	assert.Equal(t, student.FeesUnpaid, records[0].FeesPaid)
	assert.Equal(t, student.FeesPaid, records[1].FeesPaid)
}

func TestChannelFetchOne(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	record, err := channel.FetchOne(context.Background(), "stu-2")
	require.NoError(t, err)
	assert.Equal(t, "Bob", record.Name)
	assert.Equal(t, student.FeesPaid, record.FeesPaid)
}

func TestChannelFetchOneUnknown(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	_, err := channel.FetchOne(context.Background(), "stu-404")
	assert.ErrorIs(t, err, shared.ErrServerRejected)
	assert.Contains(t, err.Error(), "Student not found")
}

func TestChannelUpdateProfile(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	record, err := channel.UpdateProfile(context.Background(), student.ProfileUpdate{
		ID: "stu-1", Name: "Alice B", Email: "alice.b@school.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", record.Name)
	assert.Equal(t, "alice.b@school.edu", record.Email)
}

func TestChannelUpdateFeeStatus(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	assert.NoError(t, channel.UpdateFeeStatus(context.Background(), "stu-1"))
}

func TestChannelUpdateFeeStatusRejected(t *testing.T) {
	srv := newChannelServer(t)
	defer srv.Close()
	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	err := channel.UpdateFeeStatus(context.Background(), "stu-reject")
	assert.ErrorIs(t, err, shared.ErrServerRejected)
	assert.Contains(t, err.Error(), "Fee update failed")
}

func TestChannelUnreachable(t *testing.T) {
	srv := newChannelServer(t)
	srv.Close() // nothing listening anymore

	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))
	_, err := channel.FetchAll(context.Background())
	assert.ErrorIs(t, err, shared.ErrConnectivity)
}

func TestChannelCancelledContext(t *testing.T) {
	// The server never answers; cancellation must close the exchange instead
	// of waiting forever.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		var env requestEnvelope
		conn.ReadJSON(&env)
		<-r.Context().Done()
	}))
	defer srv.Close()

	channel := NewChannel(DefaultChannelConfig(wsURL(srv)))

	ctx, cancel := context.WithCancel(context.Background())
	go cancel()

	_, err := channel.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
