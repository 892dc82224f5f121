// Package mqttlink publishes outbound protocol messages to an MQTT
// broker, one topic per message kind.
package mqttlink

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/embedsim/fwcore/pkg/protocol"
	"github.com/embedsim/fwcore/pkg/protocol/wire"
)

// Transport publishes encoded envelopes. It implements
// protocol.Transport and io.Closer.
type Transport struct {
	client      paho.Client
	topicPrefix string
}

// ClientOptionsFromURL creates ClientOptions from a broker URL. The
// URL path becomes the topic prefix and the client-id query parameter
// selects the client ID.
func ClientOptionsFromURL(brokerURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := strings.TrimPrefix(u.Path, "/")
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}
	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}
	return opts, topicPrefix, nil
}

// NewFromURL creates a transport connected to the broker at
// brokerURL.
func NewFromURL(brokerURL string) (*Transport, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	t := &Transport{
		client:      paho.NewClient(opts),
		topicPrefix: topicPrefix,
	}
	token := t.client.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	glog.Infof("mqtt transport connected: %s", brokerURL)
	return t, nil
}

// Transmit implements protocol.Transport.
func (t *Transport) Transmit(msg *protocol.Message) error {
	data, err := wire.Marshal(msg)
	if err != nil {
		return err
	}
	token := t.client.Publish(t.topic(msg.Kind), 0, false, data)
	token.Wait()
	return token.Error()
}

func (t *Transport) topic(kind protocol.Kind) string {
	return t.topicPrefix + "messages/" + kind.String()
}

// Close implements io.Closer.
func (t *Transport) Close() error {
	t.client.Disconnect(0)
	return nil
}
