package domain

import "testing"

func TestLookupStatus_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status LookupStatus
		want   string
	}{
		{StatusFound, "FOUND"},
		{StatusNotFound, "NOT_FOUND"},
		{StatusFailed, "FAILED"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("LookupStatus.String() = %q, want %q", got, tt.want)
		}
	}
}
