package exporter

import (
	"context"
	"net/http"
	"time"

	"github.com/ledgerwatch/log/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utxokit/btcpay"
)

// BalanceSource is the slice of the btcpay client the exporter needs.
type BalanceSource interface {
	InspectBalance(ctx context.Context, address string) (*btcpay.BalanceReport, error)
}

// Exporter publishes per-address balances as Prometheus metrics.
type Exporter struct {
	logger    log.Logger
	addresses []string
	source    BalanceSource
	server    *http.Server
	registry  *prometheus.Registry

	balanceSats   *prometheus.GaugeVec
	balanceBTC    *prometheus.GaugeVec
	scrapeDur     prometheus.Summary
	lastSuccessTS prometheus.Gauge
}

func New(listenAddress string, addresses []string, source BalanceSource, parentLogger log.Logger) *Exporter {
	e := &Exporter{
		logger:    parentLogger.New("module", "exporter"),
		addresses: addresses,
		source:    source,
		registry:  prometheus.NewRegistry(),
	}

	e.balanceSats = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "btcpay",
		Name:      "address_balance_sats",
		Help:      "Unspent balance of the address in satoshis",
	}, []string{"address"})
	e.balanceBTC = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "btcpay",
		Name:      "address_balance_btc",
		Help:      "Unspent balance of the address in BTC",
	}, []string{"address"})
	e.scrapeDur = prometheus.NewSummary(prometheus.SummaryOpts{
		Namespace: "btcpay",
		Name:      "scrape_duration_seconds",
		Help:      "Time spent collecting balances from the node",
	})
	e.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "btcpay",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last fully successful collection",
	})
	e.registry.MustRegister(e.balanceSats, e.balanceBTC, e.scrapeDur, e.lastSuccessTS)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	e.server = &http.Server{
		Addr:         listenAddress,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return e
}

func (e *Exporter) Serve() error                       { return e.server.ListenAndServe() }
func (e *Exporter) Shutdown(ctx context.Context) error { return e.server.Shutdown(ctx) }

// Collect refreshes the balance gauges, one address at a time. The node
// allows a single request in flight per client, so collection is
// sequential by design of the transport, not an optimization target.
func (e *Exporter) Collect(ctx context.Context) error {
	start := time.Now()
	defer func() { e.scrapeDur.Observe(time.Since(start).Seconds()) }()

	var firstErr error
	for _, address := range e.addresses {
		report, err := e.source.InspectBalance(ctx, address)
		if err != nil {
			e.logger.Error("Failed to collect balance", "address", address, "err", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		e.balanceSats.WithLabelValues(address).Set(float64(report.TotalSats))
		e.balanceBTC.WithLabelValues(address).Set(float64(report.TotalSats) / 1e8)
	}

	if firstErr == nil {
		e.lastSuccessTS.SetToCurrentTime()
	}
	return firstErr
}
