package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ChargesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laundry_payment",
			Name:      "charges_total",
			Help:      "QRIS charge attempts by result",
		},
		[]string{"result"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "laundry_payment",
			Name:      "notifications_total",
			Help:      "Applied gateway notifications by mapped payment status",
		},
		[]string{"payment_status"},
	)

	FullyPaidTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "laundry_payment",
			Name:      "fully_paid_total",
			Help:      "Transactions whose settled payments reached the total price",
		},
	)
)

func init() {
	prometheus.MustRegister(ChargesTotal, NotificationsTotal, FullyPaidTotal)
}

func IncCharge(result string) {
	ChargesTotal.WithLabelValues(result).Inc()
}

func IncNotification(paymentStatus string) {
	NotificationsTotal.WithLabelValues(paymentStatus).Inc()
}

func IncFullyPaid() {
	FullyPaidTotal.Inc()
}
