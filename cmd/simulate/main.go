// Command simulate publishes synthetic Callao buoy readings to Kafka so the
// anomaly pipeline can be exercised without hardware.
//
// Usage:
//
//	go run ./cmd/simulate -brokers localhost:9092 -interval 5m -spill-prob 0.05
//
// With -interval 0 one round is sent and the command exits.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/jonboulle/clockwork"
	"github.com/joho/godotenv"
	kafkago "github.com/segmentio/kafka-go"
)

func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		slog.Error("simulate failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	brokers := flag.String("brokers", sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092"), "comma-separated Kafka brokers")
	topic := flag.String("topic", sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "ocean-sensor-readings"), "topic to publish readings to")
	interval := flag.Duration("interval", 0, "time between rounds; 0 sends a single round")
	spillProb := flag.Float64("spill-prob", 0.05, "per-reading probability of a hydrocarbon spike")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one from the clock")
	flag.Parse()

	if *spillProb < 0 || *spillProb > 1 {
		return fmt.Errorf("spill-prob must be within [0, 1], got %v", *spillProb)
	}

	clock := clockwork.NewRealClock()
	s := *seed
	if s == 0 {
		s = uint64(clock.Now().UnixNano())
	}
	gen := &generator{rng: rand.New(rand.NewPCG(s, s>>1)), spillProb: *spillProb}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(sharedcfg.ParseBrokers(*brokers)...),
		Topic:                  *topic,
		Balancer:               &kafkago.Hash{},
		AllowAutoTopicCreation: true,
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("simulating buoys", "buoys", len(callaoBuoys), "topic", *topic, "interval", *interval)

	if err := publishRound(ctx, w, gen, clock.Now()); err != nil {
		return err
	}
	if *interval <= 0 {
		return nil
	}

	ticker := clock.NewTicker(*interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.Chan():
			if err := publishRound(ctx, w, gen, now); err != nil {
				slog.Error("publish round failed", "error", err)
			}
		}
	}
}

// publishRound sends one reading per buoy, keyed by buoy ID so each buoy
// stays on one partition.
func publishRound(ctx context.Context, w *kafkago.Writer, gen *generator, now time.Time) error {
	msgs, err := buildRound(gen, now)
	if err != nil {
		return err
	}
	if err := w.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write readings: %w", err)
	}
	return nil
}

func buildRound(gen *generator, now time.Time) ([]kafkago.Message, error) {
	msgs := make([]kafkago.Message, 0, len(callaoBuoys))
	for _, b := range callaoBuoys {
		r, spill := gen.reading(b, now)
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("marshal reading for %s: %w", b.ID, err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(b.ID),
			Value: data,
			Time:  now,
		})

		log := slog.With("buoy", b.Name, "temperature", *r.TemperatureC, "ph", *r.PHValue, "battery", *r.Battery)
		if spill {
			log.Warn("injected hydrocarbon spike", "hydrocarbon_ppm", *r.HydrocarbonPPM)
		} else {
			log.Info("reading generated")
		}
	}
	return msgs, nil
}
