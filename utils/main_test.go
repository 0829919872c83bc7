package utils

import (
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// The config package resolves the secret once; set it before anything
	// touches config.Get.
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}
