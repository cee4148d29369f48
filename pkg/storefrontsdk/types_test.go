package storefrontsdk_test

import (
	"encoding/json"
	"testing"

	"github.com/Kareem09qyu/Okta/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func TestUserID_Unmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    storefrontsdk.UserID
		wantErr bool
	}{
		{"number", `{"userId":12,"code":"123456"}`, 12, false},
		{"string", `{"userId":"12","code":"123456"}`, 12, false},
		{"padded string", `{"userId":" 7 ","code":"1"}`, 7, false},
		{"missing", `{"code":"123456"}`, 0, false},
		{"null", `{"userId":null}`, 0, false},
		{"empty string", `{"userId":""}`, 0, false},
		{"non numeric", `{"userId":"abc"}`, 0, true},
		{"float", `{"userId":1.5}`, 0, true},
		{"bool", `{"userId":true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req storefrontsdk.TwoFactorCodeRequest
			err := json.Unmarshal([]byte(tt.body), &req)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, req.UserID)
		})
	}
}

func TestTwoFactorCodeRequest_Validate(t *testing.T) {
	require.Nil(t, storefrontsdk.TwoFactorCodeRequest{UserID: 1, Code: "123456"}.Validate())

	errs := storefrontsdk.TwoFactorCodeRequest{}.Validate()
	require.Contains(t, errs, "userId")
	require.Contains(t, errs, "code")
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := storefrontsdk.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "secret123"}
	require.Nil(t, valid.Validate())

	tests := []struct {
		name  string
		req   storefrontsdk.RegisterRequest
		field string
	}{
		{"missing username", storefrontsdk.RegisterRequest{Email: "a@x.com", Password: "secret123"}, "username"},
		{"short username", storefrontsdk.RegisterRequest{Username: "al", Email: "a@x.com", Password: "secret123"}, "username"},
		{"bad username", storefrontsdk.RegisterRequest{Username: "al ice", Email: "a@x.com", Password: "secret123"}, "username"},
		{"bad email", storefrontsdk.RegisterRequest{Username: "alice", Email: "nope", Password: "secret123"}, "email"},
		{"named email", storefrontsdk.RegisterRequest{Username: "alice", Email: "Alice <a@x.com>", Password: "secret123"}, "email"},
		{"short password", storefrontsdk.RegisterRequest{Username: "alice", Email: "a@x.com", Password: "abc"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Contains(t, tt.req.Validate(), tt.field)
		})
	}
}

func TestAddToCartRequest(t *testing.T) {
	req := storefrontsdk.AddToCartRequest{ProductID: 3}
	require.Nil(t, req.Validate())
	require.Equal(t, 1, req.Qty())

	zero := 0
	req.Quantity = &zero
	require.Contains(t, req.Validate(), "quantity")
}
