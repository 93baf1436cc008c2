package data

import (
	"reflect"
	"strings"
	"time"

	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/utils"
)

func getDBColumns(model any) []string {
	modelType := reflect.TypeOf(model)
	dbColumns := make([]string, 0)
	for i := 0; i < modelType.NumField(); i++ {
		field := modelType.Field(i)
		dbTag := field.Tag.Get("db")

		if dbTag != "" && dbTag != "-" {
			dbColumns = append(dbColumns, dbTag)
		}
	}
	return dbColumns
}

func columnList(model any) string {
	return strings.Join(getDBColumns(model), ", ")
}

// observeQuery records the duration and outcome of a query that started at start.
func observeQuery(metricsService metrics.MetricsService, queryType, table string, start time.Time, err error) {
	metricsService.ObserveDBQueryDuration(queryType, table, time.Since(start).Seconds())
	if err != nil {
		metricsService.IncDBQueryError(queryType, table, utils.GetDBErrorType(err))
		return
	}
	metricsService.IncDBQuery(queryType, table)
}
