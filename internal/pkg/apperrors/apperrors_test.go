package apperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrappersMatchSentinels(t *testing.T) {
	cases := []struct {
		err      error
		sentinel error
	}{
		{NotFoundf("photo %s", "p1"), ErrNotFound},
		{ConfigurationMissingf("MEDIA_CLOUD_NAME"), ErrConfigurationMissing},
		{RemoteUnavailablef("store down"), ErrRemoteUnavailable},
		{UploadRejectedf("preset invalid"), ErrUploadRejected},
		{ValidationFailedf("name is required"), ErrValidationFailed},
	}

	for _, c := range cases {
		if !errors.Is(c.err, c.sentinel) {
			t.Errorf("%v should match %v", c.err, c.sentinel)
		}
	}
}

func TestMatchSurvivesFurtherWrapping(t *testing.T) {
	err := fmt.Errorf("outer context: %w", NotFoundf("album %s", "a1"))
	if !errors.Is(err, ErrNotFound) {
		t.Error("wrapped not-found error should still match ErrNotFound")
	}
	if err.Error() != "outer context: not found: album a1" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
