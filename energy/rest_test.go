package energy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTClient_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/materials/NaCl/vasp", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"valid_response": true,
			"response": [
				{"energy_per_atom": -3.0, "formation_energy_per_atom": -1.9},
				{"energy_per_atom": -3.55, "formation_energy_per_atom": -2.1},
				{"energy_per_atom": -3.2, "formation_energy_per_atom": -2.0}
			]
		}`))
	}))
	defer server.Close()

	client := NewRESTClient("test-key", WithBaseURL(server.URL))

	candidates, err := client.Lookup(context.Background(), "NaCl")
	require.NoError(t, err)
	require.Len(t, candidates, 3)

	best, ok := MostStable(candidates)
	require.True(t, ok)
	assert.InDelta(t, -3.55, best.EnergyPerAtom, 1e-9)
	assert.InDelta(t, -2.1, best.FormationEnergyPerAtom, 1e-9)
}

func TestRESTClient_Lookup_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid_response": true, "response": []}`))
	}))
	defer server.Close()

	client := NewRESTClient("test-key", WithBaseURL(server.URL))

	candidates, err := client.Lookup(context.Background(), "HeNe")
	require.NoError(t, err)
	assert.Empty(t, candidates)

	_, ok := MostStable(candidates)
	assert.False(t, ok)
}

func TestRESTClient_Lookup_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewRESTClient("bad-key", WithBaseURL(server.URL))

	_, err := client.Lookup(context.Background(), "NaCl")

	var statusErr *ErrUnexpectedStatus
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, "forbidden", statusErr.Body)
}

func TestRESTClient_Lookup_InvalidResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid_response": false, "error": "API_KEY is not a valid key"}`))
	}))
	defer server.Close()

	client := NewRESTClient("", WithBaseURL(server.URL))

	_, err := client.Lookup(context.Background(), "NaCl")

	var respErr *ErrInvalidResponse
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Message, "API_KEY")
}

func TestRESTClient_Lookup_SingleAttempt(t *testing.T) {
	attempts := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewRESTClient("test-key", WithBaseURL(server.URL))

	_, err := client.Lookup(context.Background(), "Fe2O3")
	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRESTClient_Lookup_EscapesFormula(t *testing.T) {
	var gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid_response": true, "response": []}`))
	}))
	defer server.Close()

	client := NewRESTClient("test-key", WithBaseURL(server.URL))

	_, err := client.Lookup(context.Background(), "Na Cl")
	require.NoError(t, err)
	assert.Equal(t, "/materials/Na%20Cl/vasp", gotPath)
}

func TestMostStable(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       Candidate
		ok         bool
	}{
		{
			name: "picks lowest energy per atom",
			candidates: []Candidate{
				{EnergyPerAtom: -1.0, FormationEnergyPerAtom: -0.5},
				{EnergyPerAtom: -4.2, FormationEnergyPerAtom: -2.3},
				{EnergyPerAtom: -2.1, FormationEnergyPerAtom: -1.1},
			},
			want: Candidate{EnergyPerAtom: -4.2, FormationEnergyPerAtom: -2.3},
			ok:   true,
		},
		{
			name: "single candidate",
			candidates: []Candidate{
				{EnergyPerAtom: -1.0, FormationEnergyPerAtom: -0.5},
			},
			want: Candidate{EnergyPerAtom: -1.0, FormationEnergyPerAtom: -0.5},
			ok:   true,
		},
		{
			name:       "empty",
			candidates: nil,
			want:       Candidate{},
			ok:         false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MostStable(tt.candidates)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
