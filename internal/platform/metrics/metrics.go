package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gatekeeper.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	ChallengesIssued   prometheus.Counter
	CaptchaFailures    prometheus.Counter
	Lockouts           prometheus.Counter
	RateLimitDenials   prometheus.Counter
	TokensAdded        prometheus.Counter
	TokensRedeemed     prometheus.Counter
	Escalations        prometheus.Counter
	Resolutions        *prometheus.CounterVec
	IssuanceFailures   prometheus.Counter
	DeliveryFailures   prometheus.Counter
	PendingQueueLength prometheus.Gauge

	reg prometheus.Registerer
}

// New creates and registers all metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		ChallengesIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_challenges_issued_total",
			Help: "Total number of captcha challenges sent",
		}),
		CaptchaFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_captcha_failures_total",
			Help: "Total number of wrong captcha replies",
		}),
		Lockouts: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_lockouts_total",
			Help: "Total number of verification attempts denied by the failure lockout",
		}),
		RateLimitDenials: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_rate_limit_denials_total",
			Help: "Total number of begin-verification requests denied by the request rate limiter",
		}),
		TokensAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_tokens_added_total",
			Help: "Total number of invitation tokens added to the registry",
		}),
		TokensRedeemed: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_tokens_redeemed_total",
			Help: "Total number of invitation tokens redeemed",
		}),
		Escalations: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_escalations_total",
			Help: "Total number of submissions sent to manual review",
		}),
		Resolutions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gatekeeper_review_resolutions_total",
			Help: "Total number of pending entries resolved by an administrator",
		}, []string{"outcome"}),
		IssuanceFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_invite_issuance_failures_total",
			Help: "Total number of failed single-use invite link requests",
		}),
		DeliveryFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "gatekeeper_delivery_failures_total",
			Help: "Total number of best-effort chat notifications that failed",
		}),
		PendingQueueLength: f.NewGauge(prometheus.GaugeOpts{
			Name: "gatekeeper_pending_review_entries",
			Help: "Current number of entries awaiting manual review",
		}),
	}
}

func (m *Metrics) IncChallengesIssued() {
	if m != nil {
		m.ChallengesIssued.Inc()
	}
}

func (m *Metrics) IncCaptchaFailures() {
	if m != nil {
		m.CaptchaFailures.Inc()
	}
}

func (m *Metrics) IncLockouts() {
	if m != nil {
		m.Lockouts.Inc()
	}
}

func (m *Metrics) IncRateLimitDenials() {
	if m != nil {
		m.RateLimitDenials.Inc()
	}
}

func (m *Metrics) AddTokens(n int) {
	if m != nil {
		m.TokensAdded.Add(float64(n))
	}
}

func (m *Metrics) IncTokensRedeemed() {
	if m != nil {
		m.TokensRedeemed.Inc()
	}
}

func (m *Metrics) IncEscalations() {
	if m != nil {
		m.Escalations.Inc()
	}
}

// IncResolutions counts an admin decision; outcome is "approved" or "rejected".
func (m *Metrics) IncResolutions(outcome string) {
	if m != nil {
		m.Resolutions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) IncIssuanceFailures() {
	if m != nil {
		m.IssuanceFailures.Inc()
	}
}

func (m *Metrics) IncDeliveryFailures() {
	if m != nil {
		m.DeliveryFailures.Inc()
	}
}

func (m *Metrics) SetPendingQueueLength(n int) {
	if m != nil {
		m.PendingQueueLength.Set(float64(n))
	}
}

// WatchSize exports size() as gatekeeper_store_entries{store="<name>"}. The
// in-memory stores never evict, so this is how their growth is observed.
func (m *Metrics) WatchSize(store string, size func() int) {
	if m == nil || m.reg == nil {
		return
	}
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "gatekeeper_store_entries",
		Help:        "Current number of entries held by an in-memory store",
		ConstLabels: prometheus.Labels{"store": store},
	}, func() float64 {
		return float64(size())
	}))
}
