package config

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/url"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wagslane/go-rabbitmq"
	"go.uber.org/zap"
)

func mqURL(mq MQConfig) string {
	scheme := "amqp"
	if mq.TLS {
		scheme = "amqps"
	}
	return fmt.Sprintf("%s://%s:%s@%s:%d/%s", scheme,
		url.QueryEscape(mq.User), url.QueryEscape(mq.Password), mq.Host, mq.Port, url.PathEscape(mq.VHost))
}

func tlsConfig() *tls.Config {
	rootCAs, _ := x509.SystemCertPool()
	return &tls.Config{
		RootCAs:    rootCAs,
		MinVersion: tls.VersionTLS12,
	}
}

// RabbitConn opens a managed connection that reconnects on its own.
func RabbitConn(mq MQConfig, log *zap.Logger) (*rabbitmq.Conn, error) {
	amqpCfg := rabbitmq.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(30 * time.Second),
	}
	if mq.TLS {
		amqpCfg.TLSClientConfig = tlsConfig()
	}

	return rabbitmq.NewConn(
		mqURL(mq),
		rabbitmq.WithConnectionOptionsConfig(amqpCfg),
		rabbitmq.WithConnectionOptionsLogger(log.Named("rabbitmq").Sugar()),
		rabbitmq.WithConnectionOptionsReconnectInterval(5*time.Second),
	)
}

// RabbitPublisher declares the topic exchange and returns a confirming
// publisher bound to it.
func RabbitPublisher(conn *rabbitmq.Conn, exchange, kind string, log *zap.Logger) (*rabbitmq.Publisher, error) {
	return rabbitmq.NewPublisher(
		conn,
		rabbitmq.WithPublisherOptionsLogger(log.Named("rabbitmq").Sugar()),
		rabbitmq.WithPublisherOptionsExchangeName(exchange),
		rabbitmq.WithPublisherOptionsExchangeKind(kind),
		rabbitmq.WithPublisherOptionsExchangeDurable,
		rabbitmq.WithPublisherOptionsExchangeDeclare,
		rabbitmq.WithPublisherOptionsConfirm,
	)
}
