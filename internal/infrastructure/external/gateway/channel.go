package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/feehub/student-fee-portal/internal/domain/shared"
	"github.com/feehub/student-fee-portal/internal/domain/student"
	"github.com/feehub/student-fee-portal/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD CHANNEL
// One gateway call is one scoped connection: dial, send one request envelope,
// wait for the correlated acknowledgement, close. Cancelling the context
// closes the connection, so a torn-down caller can never receive a late ack.
// ══════════════════════════════════════════════════════════════════════════════

// ChannelConfig contains configuration for the record channel.
type ChannelConfig struct {
	// URL is the channel endpoint (ws:// or wss://).
	URL string

	// Token authenticates the handshake. Empty means unauthenticated.
	Token string

	// HandshakeTimeout bounds the dial.
	HandshakeTimeout time.Duration

	// Logger for structured logging.
	Logger *logger.Logger
}

// DefaultChannelConfig returns sensible defaults.
func DefaultChannelConfig(url string) ChannelConfig {
	return ChannelConfig{
		URL:              url,
		HandshakeTimeout: 10 * time.Second,
	}
}

// Channel is the record channel client. It implements student.RecordGateway.
type Channel struct {
	config ChannelConfig
	dialer *websocket.Dialer
	logger *logger.Logger
}

var _ student.RecordGateway = (*Channel)(nil)

// NewChannel creates a record channel client.
func NewChannel(config ChannelConfig) *Channel {
	if config.Logger == nil {
		config.Logger = logger.Default()
	}
	return &Channel{
		config: config,
		dialer: &websocket.Dialer{
			HandshakeTimeout: config.HandshakeTimeout,
		},
		logger: config.Logger.With(logger.Component("record_channel")),
	}
}

func (ch *Channel) header() http.Header {
	if ch.config.Token == "" {
		return nil
	}
	h := http.Header{}
	h.Set("Authorization", "Bearer "+ch.config.Token)
	return h
}

// Request performs one request/acknowledgement exchange on a fresh
// connection. The envelope carries a correlation id; frames with a different
// id are skipped. The connection is closed on every exit path.
func (ch *Channel) Request(ctx context.Context, event string, payload any) (Ack, error) {
	start := time.Now()

	conn, _, err := ch.dialer.DialContext(ctx, ch.config.URL, ch.header())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Ack{}, ctxErr
		}
		return Ack{}, shared.WrapError("gateway", "Request", shared.ErrConnectivity,
			"record channel unreachable", err)
	}
	defer conn.Close()

	env := requestEnvelope{
		RequestID: uuid.NewString(),
		Event:     event,
		Data:      payload,
	}
	if err := conn.WriteJSON(env); err != nil {
		return Ack{}, shared.WrapError("gateway", "Request", shared.ErrConnectivity,
			"send "+event, err)
	}

	acks := make(chan Ack, 1)
	readErrs := make(chan error, 1)
	go func() {
		for {
			var ack Ack
			if err := conn.ReadJSON(&ack); err != nil {
				readErrs <- err
				return
			}
			if ack.RequestID == env.RequestID {
				acks <- ack
				return
			}
		}
	}()

	select {
	case <-ctx.Done():
		// Closing the connection unblocks the reader; the late ack dies with
		// the connection.
		conn.Close()
		return Ack{}, ctx.Err()
	case err := <-readErrs:
		return Ack{}, shared.WrapError("gateway", "Request", shared.ErrConnectivity,
			"await ack for "+event, err)
	case ack := <-acks:
		ch.logger.Debug("channel exchange",
			logger.Event(event),
			logger.RequestID(env.RequestID),
			logger.Bool("success", ack.Success),
			logger.Latency(time.Since(start)))
		return ack, nil
	}
}

// exchange runs Request and turns a success=false acknowledgement into a
// server-rejected error.
func (ch *Channel) exchange(ctx context.Context, op, event string, payload any) (Ack, error) {
	ack, err := ch.Request(ctx, event, payload)
	if err != nil {
		return Ack{}, err
	}
	if !ack.Success {
		message := ack.Error
		if message == "" {
			message = event + " rejected"
		}
		return Ack{}, shared.NewDomainError("gateway", op, shared.ErrServerRejected, message)
	}
	return ack, nil
}

// FetchOne returns the record for the given student id.
func (ch *Channel) FetchOne(ctx context.Context, id student.ID) (*student.Record, error) {
	ack, err := ch.exchange(ctx, "FetchOne", EventGetStudent, fetchOneDTO{ID: id.String()})
	if err != nil {
		return nil, err
	}

	var dto recordDTO
	if err := json.Unmarshal(ack.Data, &dto); err != nil {
		return nil, fmt.Errorf("decode %s ack: %w", EventGetStudent, err)
	}
	record := recordFromDTO(dto)
	return &record, nil
}

// FetchAll returns the full record collection in server order.
func (ch *Channel) FetchAll(ctx context.Context) ([]student.Record, error) {
	ack, err := ch.exchange(ctx, "FetchAll", EventGetStudentDetails, nil)
	if err != nil {
		return nil, err
	}

	var dtos []recordDTO
	if err := json.Unmarshal(ack.Data, &dtos); err != nil {
		return nil, fmt.Errorf("decode %s ack: %w", EventGetStudentDetails, err)
	}
	return recordsFromDTO(dtos), nil
}

// UpdateProfile sends an edited profile and returns the server-confirmed
// record.
func (ch *Channel) UpdateProfile(ctx context.Context, update student.ProfileUpdate) (*student.Record, error) {
	ack, err := ch.exchange(ctx, "UpdateProfile", EventUpdateStudent, profileUpdateToDTO(update))
	if err != nil {
		return nil, err
	}

	var dto recordDTO
	if err := json.Unmarshal(ack.Data, &dto); err != nil {
		return nil, fmt.Errorf("decode %s ack: %w", EventUpdateStudent, err)
	}
	record := recordFromDTO(dto)
	return &record, nil
}

// UpdateFeeStatus asks the server to mark the student's fee as paid.
func (ch *Channel) UpdateFeeStatus(ctx context.Context, id student.ID) error {
	_, err := ch.exchange(ctx, "UpdateFeeStatus", EventUpdateFeeStatus, feeStatusDTO{
		ID:   id.String(),
		Fees: true,
	})
	return err
}
