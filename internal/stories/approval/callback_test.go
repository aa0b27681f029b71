package approval

import (
	"testing"

	"gatebot/internal/apperrors"
)

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Decision
		wantErr bool
	}{
		{
			name: "approve",
			data: "approve:555:2",
			want: Decision{Action: ActionApprove, UserID: 555, Months: 2},
		},
		{
			name: "decline",
			data: "decline:555",
			want: Decision{Action: ActionDecline, UserID: 555},
		},
		{
			name:    "unknown tag",
			data:    "promote:555",
			wantErr: true,
		},
		{
			name:    "approve missing months",
			data:    "approve:555",
			wantErr: true,
		},
		{
			name:    "approve zero months",
			data:    "approve:555:0",
			wantErr: true,
		},
		{
			name:    "decline with trailing field",
			data:    "decline:555:1",
			wantErr: true,
		},
		{
			name:    "non-numeric user id",
			data:    "approve:bob:1",
			wantErr: true,
		},
		{
			name:    "empty payload",
			data:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDecision(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecision(%q) = %+v, want error", tt.data, got)
				}
				if !apperrors.IsKind(err, apperrors.KindValidation) {
					t.Errorf("error kind = %q, want validation", apperrors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecision(%q) unexpected error: %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("ParseDecision(%q) = %+v, want %+v", tt.data, got, tt.want)
			}
		})
	}
}

func TestCallbackDataRoundTrip(t *testing.T) {
	for _, d := range []Decision{
		{Action: ActionApprove, UserID: 7, Months: 3},
		{Action: ActionDecline, UserID: 7},
	} {
		got, err := ParseDecision(d.CallbackData())
		if err != nil {
			t.Fatalf("ParseDecision(%q): %v", d.CallbackData(), err)
		}
		if got != d {
			t.Errorf("round trip = %+v, want %+v", got, d)
		}
	}
}

func TestIsDecisionCallback(t *testing.T) {
	if !IsDecisionCallback("approve:1:1") || !IsDecisionCallback("decline:1") {
		t.Error("decision payloads not recognized")
	}
	if IsDecisionCallback("plan:1") || IsDecisionCallback("proceed") {
		t.Error("non-decision payloads misrecognized")
	}
}
