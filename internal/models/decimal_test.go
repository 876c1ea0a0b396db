package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimal_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		want      string
		wantField string
	}{
		{name: "number", body: `{"amount":123.45}`, want: "123.45"},
		{name: "quoted number", body: `{"amount":"10"}`, want: "10"},
		{name: "text", body: `{"amount":"abc"}`, wantField: "amount"},
		{name: "bool", body: `{"amount":true}`, wantField: "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in CreateTransactionIn
			err := json.Unmarshal([]byte(tt.body), &in)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, in.Amount.String())
				return
			}

			var typeErr *json.UnmarshalTypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, tt.wantField, typeErr.Field)
		})
	}
}
