package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// IntakeSubmissionsTotal counts intake submission outcomes by kind.
	IntakeSubmissionsTotal *prometheus.CounterVec
	// BottleScanTotal counts bottle scan outcomes.
	BottleScanTotal *prometheus.CounterVec
	// PaymentWebhookTotal counts inbound payment webhook processing outcomes.
	PaymentWebhookTotal *prometheus.CounterVec
	// CheckoutSessionTotal counts hosted checkout session creation attempts.
	CheckoutSessionTotal *prometheus.CounterVec
	// CampaignEmailTotal counts campaign email delivery outcomes.
	CampaignEmailTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		IntakeSubmissionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intake_submissions_total",
			Help:      "Count of intake submission outcomes.",
		}, []string{"kind", "result"})
		BottleScanTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bottle_scan_total",
			Help:      "Count of bottle scan outcomes.",
		}, []string{"result"})
		PaymentWebhookTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_webhook_total",
			Help:      "Count of processed payment webhooks by outcome.",
		}, []string{"provider", "result"})
		CheckoutSessionTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_session_total",
			Help:      "Count of hosted checkout session creation outcomes.",
		}, []string{"kind", "result"})
		CampaignEmailTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "campaign_email_total",
			Help:      "Count of campaign email delivery outcomes.",
		}, []string{"result"})

		mustRegisterCollector(reg, IntakeSubmissionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				IntakeSubmissionsTotal = v
			}
		})
		mustRegisterCollector(reg, BottleScanTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				BottleScanTotal = v
			}
		})
		mustRegisterCollector(reg, PaymentWebhookTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				PaymentWebhookTotal = v
			}
		})
		mustRegisterCollector(reg, CheckoutSessionTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CheckoutSessionTotal = v
			}
		})
		mustRegisterCollector(reg, CampaignEmailTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				CampaignEmailTotal = v
			}
		})
	})
}

// IncIntakeSubmission bumps the intake counter when metrics are registered.
func IncIntakeSubmission(kind, result string) {
	if IntakeSubmissionsTotal != nil {
		IntakeSubmissionsTotal.WithLabelValues(kind, result).Inc()
	}
}

// IncBottleScan bumps the bottle scan counter when metrics are registered.
func IncBottleScan(result string) {
	if BottleScanTotal != nil {
		BottleScanTotal.WithLabelValues(result).Inc()
	}
}

// IncPaymentWebhook bumps the webhook counter when metrics are registered.
func IncPaymentWebhook(provider, result string) {
	if PaymentWebhookTotal != nil {
		PaymentWebhookTotal.WithLabelValues(provider, result).Inc()
	}
}

// IncCheckoutSession bumps the checkout counter when metrics are registered.
func IncCheckoutSession(kind, result string) {
	if CheckoutSessionTotal != nil {
		CheckoutSessionTotal.WithLabelValues(kind, result).Inc()
	}
}

// IncCampaignEmail bumps the campaign email counter when metrics are registered.
func IncCampaignEmail(result string) {
	if CampaignEmailTotal != nil {
		CampaignEmailTotal.WithLabelValues(result).Inc()
	}
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
