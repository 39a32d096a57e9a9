package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corkboard_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// AuthzDecisions counts authorization resolver outcomes by resource kind
	// and decision (allow, deny).
	AuthzDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corkboard_authz_decisions_total",
		Help: "Total authorization decisions by resource kind and outcome",
	}, []string{"kind", "outcome"})

	// AnonymousCredentialFailures counts rejected anonymous credentials.
	// A sustained spike here is a brute-force signal.
	AnonymousCredentialFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corkboard_anonymous_credential_failures_total",
		Help: "Total anonymous credential verification failures",
	})

	// PostViews counts post detail reads (the view-counter side effect).
	PostViews = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corkboard_post_views_total",
		Help: "Total post detail views",
	})

	// ImageUploads counts image uploads by outcome.
	ImageUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corkboard_image_uploads_total",
		Help: "Total image uploads by outcome",
	}, []string{"outcome"})
)
