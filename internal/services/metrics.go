package services

import (
	"time"

	"github.com/swiftport/customs-dashboard/internal/model"
	"github.com/swiftport/customs-dashboard/pkg/prom"
)

func observeStoreOp(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	prom.IncCounterVec(prom.SystemContainers, prom.MetricStoreOperations, op, result)
	prom.AddHistogramVec(prom.SystemContainers, prom.MetricStoreDuration, time.Since(start).Seconds(), op)
}

func observeRisk(rows []Row) {
	counts := map[model.RiskTier]float64{}
	for _, r := range rows {
		counts[r.Risk]++
	}
	for _, tier := range []model.RiskTier{model.RiskNone, model.RiskWarning, model.RiskOverdue} {
		prom.SetGaugeVec(prom.SystemContainers, prom.MetricContainersByRisk, counts[tier], tier.String())
	}
}
