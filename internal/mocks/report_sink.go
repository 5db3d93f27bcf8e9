package mocks

import (
	"context"

	"github.com/phrazzld/tasklog-api/internal/job"
	"github.com/stretchr/testify/mock"
)

// MockReportSink implements job.ReportSink with testify/mock expectations.
type MockReportSink struct {
	mock.Mock
}

var _ job.ReportSink = (*MockReportSink)(nil)

// Publish implements job.ReportSink.
func (m *MockReportSink) Publish(ctx context.Context, report job.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
