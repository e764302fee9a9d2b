package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRow(t *testing.T) {
	row := NewRow([]string{"Date", "Amount", "Status"}, []string{"01/15/2024", "$10"})

	require.Len(t, row, 3)
	assert.Equal(t, []string{"Date", "Amount", "Status"}, row.Headers())

	v, ok := row.Get("Status")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = row.Get("status")
	assert.False(t, ok, "Get is an exact header lookup")
}

func TestRowGetReturnsFirstDuplicate(t *testing.T) {
	row := Row{{Header: "Price", Value: "1"}, {Header: "Price", Value: "2"}}
	v, ok := row.Get("Price")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestRowIsBlank(t *testing.T) {
	assert.True(t, NewRow([]string{"A", "B"}, []string{" ", ""}).IsBlank())
	assert.False(t, NewRow([]string{"A", "B"}, []string{" ", "x"}).IsBlank())
	assert.True(t, Row{}.IsBlank())
}

func TestRowJSONKeepsOrder(t *testing.T) {
	row := NewRow([]string{"Zeta", "Alpha", "Mid"}, []string{"1", "2", "3"})

	data, err := json.Marshal(row)
	require.NoError(t, err)
	assert.Equal(t, `{"Zeta":"1","Alpha":"2","Mid":"3"}`, string(data))

	var back Row
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, row, back)
}

func TestRowUnmarshalNonStringValues(t *testing.T) {
	var row Row
	require.NoError(t, json.Unmarshal([]byte(`{"Qty": 12.5, "Note": null, "Ok": true}`), &row))

	assert.Equal(t, Row{
		{Header: "Qty", Value: "12.5"},
		{Header: "Note", Value: ""},
		{Header: "Ok", Value: "true"},
	}, row)

	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &row))
}
