package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResponse_JSONShape(t *testing.T) {
	resp := FormatResponse(Decision{
		Outcome:       OutcomeApproved,
		Amount:        "500,000 INR (Mock Amount)",
		Justification: []string{"covered"},
	})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Decision":"approved","Amount":"500,000 INR (Mock Amount)","Justification":["covered"]}`, string(body))
}

func TestFormatResponse_NilJustification(t *testing.T) {
	resp := FormatResponse(Decision{Outcome: OutcomeRejected, Amount: "0"})

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Decision":"rejected","Amount":"0","Justification":[]}`, string(body))
}

func TestFormatResponse_DoesNotAliasJustification(t *testing.T) {
	d := Decision{Outcome: OutcomeRejected, Amount: "0", Justification: []string{"a"}}
	resp := FormatResponse(d)
	d.Justification[0] = "b"

	assert.Equal(t, "a", resp.Justification[0])
}

func TestFormatError(t *testing.T) {
	err := &FormatError{Cause: "age must be a number", Err: assert.AnError}
	assert.Contains(t, err.Error(), "age must be a number")
	assert.ErrorIs(t, err, assert.AnError)

	plain := &FormatError{Cause: "too few parts"}
	assert.Equal(t, "too few parts", plain.Error())
}
