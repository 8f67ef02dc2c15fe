package spatial

import "github.com/prometheus/client_golang/prometheus"

// IndexMetrics — метрики Prometheus пространственного индекса.
// Использование:
//
//	m := spatial.NewIndexMetrics("space_game", nil)
//	idx := spatial.NewPositionIndex(m)
//
// Метрики:
// * spatial_cell_switches_total — counter переносов объектов между ячейками
// * spatial_objects — gauge количества объектов в индексе
// * spatial_cells — gauge количества непустых ячеек
type IndexMetrics struct {
	CellSwitches prometheus.Counter
	Objects      prometheus.Gauge
	Cells        prometheus.Gauge
}

// NewIndexMetrics создаёт метрики и регистрирует их. При reg == nil
// используется дефолтный регистр; тесты передают собственный
// prometheus.NewRegistry(), чтобы не конфликтовать между собой.
func NewIndexMetrics(namespace string, reg prometheus.Registerer) *IndexMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &IndexMetrics{
		CellSwitches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spatial_cell_switches_total",
			Help:      "Количество переносов объектов между ячейками индекса.",
		}),
		Objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spatial_objects",
			Help:      "Текущее количество объектов в пространственном индексе.",
		}),
		Cells: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "spatial_cells",
			Help:      "Текущее количество непустых ячеек индекса.",
		}),
	}

	reg.MustRegister(m.CellSwitches, m.Objects, m.Cells)
	return m
}
