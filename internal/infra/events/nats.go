package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// DefaultSubject is where saved records are announced.
const DefaultSubject = "ideas.validated"

// Options for Connect.
type Options struct {
	URL            string
	Subject        string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// Publisher announces saved records on a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// Connect dials NATS with reconnect handlers that log through logger.
func Connect(opts Options, logger *zap.Logger) (*Publisher, error) {
	if opts.Subject == "" {
		opts.Subject = DefaultSubject
	}
	nc, err := nats.Connect(opts.URL,
		nats.Name("ideacheck"),
		nats.MaxReconnects(opts.MaxReconnects),
		nats.ReconnectWait(opts.ReconnectWait),
		nats.Timeout(opts.ConnectTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(*nats.Conn) {
			logger.Info("nats connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}
	return &Publisher{conn: nc, subject: opts.Subject}, nil
}

// SavedEvent is the payload published for every saved record.
type SavedEvent struct {
	Type   string               `json:"type"`
	Record *domain.ResultRecord `json:"record"`
}

func (p *Publisher) PublishSaved(_ context.Context, rec *domain.ResultRecord) error {
	data, err := encodeSaved(rec)
	if err != nil {
		return err
	}
	return p.conn.Publish(p.subject, data)
}

// Check reports the connection state for health checks.
func (p *Publisher) Check(context.Context) error {
	if !p.conn.IsConnected() {
		return fmt.Errorf("nats status: %s", p.conn.Status())
	}
	return nil
}

func (p *Publisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}

func encodeSaved(rec *domain.ResultRecord) ([]byte, error) {
	data, err := json.Marshal(SavedEvent{Type: "idea.validated", Record: rec})
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return data, nil
}
