// Package announce publishes the current quarter's price classification to an
// MQTT broker so home automation systems can react to expensive quarters.
package announce

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/angas/elkvart-go/config"
	"github.com/angas/elkvart-go/dayahead"
	"github.com/angas/elkvart-go/quarters"
)

type Message struct {
	TimeStart quarters.Key `json:"time_start"`
	LocalTime string       `json:"local_time"`
	SEKPerKWh float64      `json:"sek_per_kwh"`
	Class     string       `json:"class"`
}

type Announcer struct {
	logger *slog.Logger
	client mqtt.Client
	topic  string
}

func New(cnfg config.AppConfigAnnounce) *Announcer {
	logger := slog.Default().With("module", "announce")

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cnfg.Host, cnfg.Port))
	opts.SetClientID("elkvart")
	opts.SetUsername(cnfg.Username)
	opts.SetPassword(cnfg.Password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("announce MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("announce MQTT connection lost", slog.Any("error", err))
	}

	mqtt.CRITICAL = newMqttLogger(logger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(logger, slog.LevelError)
	mqtt.WARN = newMqttLogger(logger, slog.LevelWarn)

	return &Announcer{
		logger: logger,
		client: mqtt.NewClient(opts),
		topic:  cnfg.GetTopic(),
	}
}

func (a *Announcer) Connect() error {
	a.logger.Debug("connecting announce MQTT client")
	if token := a.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	return nil
}

func (a *Announcer) Disconnect() {
	a.client.Disconnect(250)
}

// PublishCurrent announces the quarter containing now, retained so late
// subscribers see the latest classification.
func (a *Announcer) PublishCurrent(snap dayahead.Snapshot) error {
	now := time.Now()
	for _, row := range snap.Rows {
		start := row.Start.Time()
		if now.Before(start) || !now.Before(start.Add(15*time.Minute)) {
			continue
		}

		raw, found := 0.0, false
		for _, r := range snap.Raw {
			if r.Start == row.Start {
				raw, found = r.SEKPerKWh, true
				break
			}
		}
		if !found {
			break
		}

		payload, err := json.Marshal(Message{
			TimeStart: row.Start,
			LocalTime: quarters.HHMM(start),
			SEKPerKWh: raw,
			Class:     snap.Sets.ClassOf(row.Start).String(),
		})
		if err != nil {
			return fmt.Errorf("marshal announcement: %w", err)
		}

		if token := a.client.Publish(a.topic, 0, true, payload); token.Wait() && token.Error() != nil {
			return fmt.Errorf("publish announcement: %w", token.Error())
		}

		a.logger.Debug("published announcement", slog.String("topic", a.topic), slog.String("quarter", string(row.Start)))
		return nil
	}

	return fmt.Errorf("no quarter covering %s in snapshot", now.Format(time.RFC3339))
}
