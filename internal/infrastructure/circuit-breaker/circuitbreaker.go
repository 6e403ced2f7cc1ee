package circuitbreaker

import (
	"github.com/sony/gobreaker/v2"
	"github.com/tilemart/catalog-gateway/pkg/httpclient"
)

func CreateCircuitBreaker(name string) *gobreaker.CircuitBreaker[httpclient.Response] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}

	cb := gobreaker.NewCircuitBreaker[httpclient.Response](st)

	return cb
}
