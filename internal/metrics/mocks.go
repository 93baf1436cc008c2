package metrics

import (
	"github.com/alitto/pond/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// MockMetricsService is a mock implementation of MetricsService
type MockMetricsService struct {
	mock.Mock
}

var _ MetricsService = (*MockMetricsService)(nil)

// NewMockMetricsService creates a new mock metrics service
func NewMockMetricsService() *MockMetricsService {
	return &MockMetricsService{}
}

func (m *MockMetricsService) RegisterPoolMetrics(channel string, pool pond.Pool) {
	m.Called(channel, pool)
}

func (m *MockMetricsService) GetRegistry() *prometheus.Registry {
	args := m.Called()
	return args.Get(0).(*prometheus.Registry)
}

func (m *MockMetricsService) IncNumRequests(endpoint, method string, statusCode int) {
	m.Called(endpoint, method, statusCode)
}

func (m *MockMetricsService) ObserveRequestDuration(endpoint, method string, duration float64) {
	m.Called(endpoint, method, duration)
}

func (m *MockMetricsService) ObserveDBQueryDuration(queryType, table string, duration float64) {
	m.Called(queryType, table, duration)
}

func (m *MockMetricsService) IncDBQuery(queryType, table string) {
	m.Called(queryType, table)
}

func (m *MockMetricsService) IncDBQueryError(queryType, table, errorType string) {
	m.Called(queryType, table, errorType)
}

func (m *MockMetricsService) IncDBTransaction(status string) {
	m.Called(status)
}

func (m *MockMetricsService) ObserveDBTransactionDuration(status string, duration float64) {
	m.Called(status, duration)
}

func (m *MockMetricsService) IncUserAction(action string) {
	m.Called(action)
}

func (m *MockMetricsService) SetLoggedInUser(loggedIn bool) {
	m.Called(loggedIn)
}

func (m *MockMetricsService) ObserveBalanceQueryDuration(source, name string, duration float64) {
	m.Called(source, name, duration)
}

func (m *MockMetricsService) IncBalanceQueryError(source, name string) {
	m.Called(source, name)
}

func (m *MockMetricsService) IncTasks(taskType, status string) {
	m.Called(taskType, status)
}
