package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	qrRenderCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "assethub",
		Name:      "qr_rendered_total",
		Help:      "Number of asset QR codes rendered.",
	})
	qrScanCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "assethub",
		Name:      "qr_scanned_total",
		Help:      "Number of uploaded QR images by scan result.",
	}, []string{"result"})
)
