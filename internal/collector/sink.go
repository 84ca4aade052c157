package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
)

// Sink stores usage events. Storing an event twice must not duplicate it.
type Sink interface {
	Store(ctx context.Context, kind Kind, events []Event) error
}

// LogSink writes each event to the log.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Store(_ context.Context, kind Kind, events []Event) error {
	for _, event := range events {
		s.logger.Info().
			Str("kind", string(kind)).
			Str("guid", event.GUID).
			Time("created_at", event.CreatedAt).
			RawJSON("entity", event.Entity).
			Msg("usage event")
	}

	return nil
}

type publisher interface {
	PublishMsg(ctx context.Context, msg *nats.Msg, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// JetStreamSink publishes each event to <prefix>.<kind>. The event GUID is
// the message id, so JetStream drops events republished within the stream's
// duplicate window.
type JetStreamSink struct {
	js     publisher
	prefix string
}

// NewJetStreamSink creates or updates stream to capture <prefix>.> and
// returns a sink publishing to it.
func NewJetStreamSink(ctx context.Context, js jetstream.JetStream, stream, prefix string) (*JetStreamSink, error) {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       stream,
		Subjects:   []string{prefix + ".>"},
		Duplicates: 24 * time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("creating stream %s: %w", stream, err)
	}

	return &JetStreamSink{js: js, prefix: prefix}, nil
}

// Subject returns the subject events of kind are published to.
func (s *JetStreamSink) Subject(kind Kind) string {
	return s.prefix + "." + string(kind)
}

func (s *JetStreamSink) Store(ctx context.Context, kind Kind, events []Event) error {
	subject := s.Subject(kind)

	for _, event := range events {
		msg := nats.NewMsg(subject)
		msg.Data = event.Raw
		msg.Header.Set(nats.MsgIdHdr, event.GUID)

		_, err := s.js.PublishMsg(ctx, msg)
		if err != nil {
			return fmt.Errorf("publishing event %s to %s: %w", event.GUID, subject, err)
		}
	}

	return nil
}

// PostgresSink inserts events into <kind>_usage_events, ignoring events
// already stored.
type PostgresSink struct {
	db pgConn
}

// NewPostgresSink creates the event tables for kinds if needed.
func NewPostgresSink(ctx context.Context, db pgConn, kinds ...Kind) (*PostgresSink, error) {
	for _, kind := range kinds {
		_, err := db.Exec(ctx, fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id          bigserial PRIMARY KEY,
	guid        text NOT NULL UNIQUE,
	created_at  timestamptz NOT NULL,
	raw_message jsonb NOT NULL
)`, kind.TableName()))
		if err != nil {
			return nil, fmt.Errorf("creating table %s: %w", kind.TableName(), err)
		}
	}

	return &PostgresSink{db: db}, nil
}

func (s *PostgresSink) Store(ctx context.Context, kind Kind, events []Event) error {
	if len(events) == 0 {
		return nil
	}

	query, args := insertEventsQuery(kind, events)

	_, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("inserting into %s: %w", kind.TableName(), err)
	}

	return nil
}

func insertEventsQuery(kind Kind, events []Event) (string, []any) {
	const columns = 3

	var query strings.Builder

	args := make([]any, 0, len(events)*columns)

	fmt.Fprintf(&query, "INSERT INTO %s (guid, created_at, raw_message) VALUES ", kind.TableName())

	for i, event := range events {
		if i > 0 {
			query.WriteString(", ")
		}

		n := i * columns
		fmt.Fprintf(&query, "($%d, $%d, $%d)", n+1, n+2, n+3)

		args = append(args, event.GUID, event.CreatedAt, string(event.Raw))
	}

	query.WriteString(" ON CONFLICT (guid) DO NOTHING")

	return query.String(), args
}
