package embed

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "filoflix_embed_resolutions_total",
	Help: "Embed source resolutions by outcome and reference shape",
}, []string{"kind", "variant"})

func observe(r *Resolution) {
	resolutions.WithLabelValues(r.Kind.String(), r.Variant.String()).Inc()
}
