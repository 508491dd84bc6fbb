package money

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		name    string
		amount  float64
		want    int64
		wantErr bool
	}{
		{name: "whole units", amount: 100, want: 10000},
		{name: "two decimals", amount: 12.34, want: 1234},
		{name: "one decimal", amount: 0.5, want: 50},
		{name: "smallest amount", amount: 0.01, want: 1},
		{name: "zero rejected", amount: 0, wantErr: true},
		{name: "negative rejected", amount: -5, wantErr: true},
		{name: "three decimals rejected", amount: 1.005, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToCents(tt.amount)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCents(t *testing.T) {
	got, err := ParseCents("12.34")
	require.NoError(t, err)
	assert.Equal(t, int64(1234), got)

	_, err = ParseCents("not-a-number")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ParseCents("-1")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestAmountJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		raw, err := json.Marshal(Amount(10000))
		require.NoError(t, err)
		assert.Equal(t, "100", string(raw))

		raw, err = json.Marshal(Amount(1234))
		require.NoError(t, err)
		assert.Equal(t, "12.34", string(raw))

		raw, err = json.Marshal(Amount(-50))
		require.NoError(t, err)
		assert.Equal(t, "-0.5", string(raw))
	})

	t.Run("unmarshal number", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte("12.34"), &a))
		assert.Equal(t, Amount(1234), a)
	})

	t.Run("unmarshal string", func(t *testing.T) {
		var a Amount
		require.NoError(t, json.Unmarshal([]byte(`"100"`), &a))
		assert.Equal(t, Amount(10000), a)
	})

	t.Run("round trip", func(t *testing.T) {
		raw, err := json.Marshal(Amount(99999))
		require.NoError(t, err)
		var a Amount
		require.NoError(t, json.Unmarshal(raw, &a))
		assert.Equal(t, Amount(99999), a)
	})

	t.Run("sub-cent precision rejected", func(t *testing.T) {
		var a Amount
		assert.Error(t, json.Unmarshal([]byte("1.005"), &a))
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "12.34", String(1234))
	assert.Equal(t, "-0.05", String(-5))
	assert.Equal(t, "0.00", String(0))
	assert.InDelta(t, 12.34, Float(1234), 0.0001)
}
