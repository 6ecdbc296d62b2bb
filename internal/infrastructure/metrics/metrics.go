package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics содержит все метрики мутационного ядра
type StoreMetrics struct {
	StoresRegisteredTotal prometheus.Counter
	StoreEditsTotal       prometheus.CounterVec
	StoreVerifiedTotal    prometheus.Counter

	InventoryMergesTotal    prometheus.CounterVec
	InventoryMergeDuration  prometheus.Histogram
	InventoryEntriesMerged  prometheus.Counter
	BarcodesAssignedTotal   prometheus.Counter

	EventsPublishedTotal prometheus.CounterVec

	OperationErrorsTotal prometheus.CounterVec
}

func NewStoreMetrics() *StoreMetrics {
	return &StoreMetrics{
		StoresRegisteredTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stores_registered_total",
				Help: "Общее количество зарегистрированных сторов",
			},
		),

		StoreEditsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_edits_total",
				Help: "Общее количество изменений профиля стора",
			},
			[]string{"result"},
		),

		StoreVerifiedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "stores_verified_total",
				Help: "Общее количество верификаций сторов",
			},
		),

		InventoryMergesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "inventory_merges_total",
				Help: "Общее количество мержей инвентаря",
			},
			[]string{"result"},
		),

		InventoryMergeDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inventory_merge_duration_seconds",
				Help:    "Время мержа инвентаря в секундах",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		InventoryEntriesMerged: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "inventory_entries_merged_total",
				Help: "Общее количество обработанных позиций инвентаря",
			},
		),

		BarcodesAssignedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "barcodes_assigned_total",
				Help: "Общее количество баркодов, записанных в каталог",
			},
		),

		EventsPublishedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "update_events_published_total",
				Help: "Общее количество событий, опубликованных на шине",
			},
			[]string{"topic"},
		),

		OperationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_operation_errors_total",
				Help: "Общее количество ошибок операций",
			},
			[]string{"operation"},
		),
	}
}
