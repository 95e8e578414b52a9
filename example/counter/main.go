// Command counter is an example Stream Deck plugin: each key press of the
// counter action increments a per-instance count shown as the key title. A
// ticker listener additionally feeds a custom event into the same pipeline.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/snowmerak/streamdeck.go/lib/streamdeck"
	"github.com/snowmerak/streamdeck.go/lib/streamdeck/event"
)

// TickEvent is a custom event emitted by the ticker listener.
type TickEvent struct {
	Payload struct {
		Seq int `json:"seq"`
	} `json:"payload"`
}

func (*TickEvent) EventName() string { return "example.tick" }

// tickerListener emits one example.tick message per interval.
type tickerListener struct {
	interval time.Duration
	stopOnce sync.Once
	stopped  chan struct{}
}

func newTickerListener(interval time.Duration) *tickerListener {
	return &tickerListener{interval: interval, stopped: make(chan struct{})}
}

func (t *tickerListener) EventModels() []event.Model {
	return []event.Model{{
		Name: "example.tick",
		Decode: func(raw []byte) (event.Event, error) {
			ev := new(TickEvent)
			if err := json.Unmarshal(raw, ev); err != nil {
				return nil, err
			}
			return ev, nil
		},
	}}
}

func (t *tickerListener) Produce(ctx context.Context, emit func(raw []byte)) error {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	seq := 0
	for {
		select {
		case <-ticker.C:
			seq++
			emit([]byte(fmt.Sprintf(`{"event":"example.tick","payload":{"seq":%d}}`, seq)))
		case <-ctx.Done():
			return nil
		case <-t.stopped:
			return nil
		}
	}
}

func (t *tickerListener) Stop() {
	t.stopOnce.Do(func() { close(t.stopped) })
}

func main() {
	port := flag.Int("port", 0, "WebSocket port passed by the Stream Deck software")
	pluginUUID := flag.String("pluginUUID", "", "registration id passed by the Stream Deck software")
	registerEvent := flag.String("registerEvent", "registerPlugin", "registration event name")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	manager := streamdeck.New(streamdeck.Config{
		Port:          *port,
		PluginUUID:    *pluginUUID,
		RegisterEvent: *registerEvent,
		Logger:        &logger,
	})

	counts := make(map[string]int)

	counter := streamdeck.NewAction("com.example.counter.increment")
	counter.OnWithSender("keyDown", func(ctx context.Context, ev event.Event, sender *streamdeck.BoundSender) error {
		counts[sender.Context()]++
		return sender.SetTitle(streamdeck.TitleOptions{
			Title: fmt.Sprintf("%d", counts[sender.Context()]),
		})
	})

	watcher := streamdeck.NewGlobalAction()
	watcher.On("applicationDidLaunch", func(ctx context.Context, ev event.Event) error {
		launch := ev.(*event.ApplicationDidLaunch)
		logger.Info().Str("application", launch.Payload.Application).Msg("monitored application launched")
		return nil
	})

	ticker := newTickerListener(30 * time.Second)
	tickWatcher := streamdeck.NewGlobalAction()
	tickWatcher.On("example.tick", func(ctx context.Context, ev event.Event) error {
		logger.Debug().Int("seq", ev.(*TickEvent).Payload.Seq).Msg("tick")
		return nil
	})

	if err := manager.RegisterListener(ticker); err != nil {
		logger.Fatal().Err(err).Msg("register listener")
	}
	for _, a := range []streamdeck.Registrable{counter, watcher, tickWatcher} {
		if err := manager.RegisterAction(a); err != nil {
			logger.Fatal().Err(err).Msg("register action")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := manager.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("plugin exited with error")
		os.Exit(1)
	}
}
