package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/irctc-booker/internal/domain/booking"
)

const sampleProperties = `irctc_username=traveller42
irctc_password=s3cret
from_station_code=NDLS
to_station_code=CNB
journey_date=15/09/2026
journey_quota=GENERAL
train_number=12034
train_class=CC
passenger_count=1
passenger1=Asha Verma|34|F|LB
upi_id=asha@okbank
`

func writeProperties(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "booking.properties")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	raw, err := Load(writeProperties(t, sampleProperties))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if raw[booking.KeyUsername] != "traveller42" {
		t.Errorf("username = %q", raw[booking.KeyUsername])
	}
	if raw[booking.KeyTrainNumber] != "12034" {
		t.Errorf("train number = %q", raw[booking.KeyTrainNumber])
	}
	if raw["passenger1"] != "Asha Verma|34|F|LB" {
		t.Errorf("passenger record = %q", raw["passenger1"])
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.properties")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadEnvOverridesCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "override-user")
	t.Setenv(EnvPassword, "  override-pass  ")

	raw, err := Load(writeProperties(t, sampleProperties))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if raw[booking.KeyUsername] != "override-user" {
		t.Errorf("username = %q, want env override", raw[booking.KeyUsername])
	}
	if raw[booking.KeyPassword] != "override-pass" {
		t.Errorf("password = %q, want trimmed env override", raw[booking.KeyPassword])
	}
}

func TestLoadFeedsValidator(t *testing.T) {
	raw, err := Load(writeProperties(t, sampleProperties))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, booking.Location())
	plan, err := booking.ParsePlan(raw, now)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if plan.TrainNumber != "12034" || len(plan.Passengers) != 1 {
		t.Errorf("plan = %+v", plan)
	}
}
