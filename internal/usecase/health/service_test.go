package health

import (
	"context"
	"errors"
	"testing"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type stubChecker struct{ err error }

func (s stubChecker) HealthCheck(context.Context) error { return s.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(stubPinger{}, stubChecker{})
	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q", report.Status)
	}
	if report.Checks["database"] != CheckOK || report.Checks["geocoder"] != CheckOK {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(stubPinger{err: errors.New("refused")}, stubChecker{})
	report := svc.Check(context.Background())

	if report.Status != Degraded {
		t.Errorf("status = %q", report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("checks = %v", report.Checks)
	}
}

func TestCheck_NilGeocoderSkipped(t *testing.T) {
	svc := New(stubPinger{}, nil)
	report := svc.Check(context.Background())

	if report.Status != Healthy {
		t.Errorf("status = %q", report.Status)
	}
	if _, ok := report.Checks["geocoder"]; ok {
		t.Error("nil geocoder must not be checked")
	}
}
