package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	ConnectedClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_ws_clients",
		Help: "Connected live dashboard clients",
	})
	FramesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_ws_frames_total",
		Help: "Snapshot frames pushed to live dashboard clients",
	})
)

func init() {
	prometheus.MustRegister(ConnectedClients)
	prometheus.MustRegister(FramesSent)
}
