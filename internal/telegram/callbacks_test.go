package telegram

import (
	"testing"

	"gatebot/internal/apperrors"
	"gatebot/internal/stories/approval"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Callback
		wantErr bool
	}{
		{name: "proceed", data: "proceed", want: ProceedCallback{}},
		{name: "plan tier", data: "plan:2", want: PlanCallback{Months: 2}},
		{
			name: "approve decision",
			data: "approve:555:2",
			want: DecisionCallback{Decision: approval.Decision{Action: approval.ActionApprove, UserID: 555, Months: 2}},
		},
		{
			name: "decline decision",
			data: "decline:555",
			want: DecisionCallback{Decision: approval.Decision{Action: approval.ActionDecline, UserID: 555}},
		},
		{name: "unknown tag", data: "upgrade:1", wantErr: true},
		{name: "plan with garbage", data: "plan:two", wantErr: true},
		{name: "empty", data: "", wantErr: true},
		{name: "malformed decision", data: "approve:555:x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseCallback(%q) = %#v, want error", tt.data, got)
				}
				if !apperrors.IsKind(err, apperrors.KindValidation) {
					t.Errorf("error kind = %q, want validation", apperrors.KindOf(err))
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCallback(%q) unexpected error: %v", tt.data, err)
			}
			if got != tt.want {
				t.Errorf("ParseCallback(%q) = %#v, want %#v", tt.data, got, tt.want)
			}
		})
	}
}
