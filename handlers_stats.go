package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"finanzas/pkg/reports"
)

func (s *Server) financialStatisticsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	period := reports.ParsePeriod(c.Query("period"))
	summary, err := s.reports.FinancialSummary(c.Request.Context(), userID, period, time.Now())
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, string(period)+" statistics", summary)
}

func (s *Server) accountStatisticsHandler(c *gin.Context) {
	userID, _ := currentUserID(c)
	summary, err := s.reports.AccountSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codePersistence, "query failed")
		return
	}
	respondOK(c, "account summary", summary)
}
