package model

import "testing"

func TestEffectiveUsername(t *testing.T) {
	tests := []struct {
		name string
		req  RegisterParticipantRequest
		want string
	}{
		{"explicit username wins", RegisterParticipantRequest{Username: "budi01", Phone: "081234567890"}, "budi01"},
		{"falls back to phone", RegisterParticipantRequest{Phone: "081234567890"}, "081234567890"},
		{"blank username falls back", RegisterParticipantRequest{Username: "   ", Phone: "081234567890"}, "081234567890"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.EffectiveUsername(); got != tt.want {
				t.Errorf("EffectiveUsername() = %q, want %q", got, tt.want)
			}
		})
	}
}
