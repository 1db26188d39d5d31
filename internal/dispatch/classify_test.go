package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyUnauthenticatedAnywhere(t *testing.T) {
	cases := []string{
		"Unauthenticated",
		"request failed: UNAUTHENTICATED token",
		`{"result":{"content":"unauthenticated. please authorize"}}`,
		"some output\nstatus: unAuthenticated\n",
	}
	for _, body := range cases {
		assert.Equal(t, AuthFailure, Classify(body), "body: %s", body)
	}
}

func TestClassifyErrorMarkers(t *testing.T) {
	cases := []string{
		"Error: competition not found",
		"error pushing kernel",
		"  ERROR something broke",
		`{"error": "boom"}`,
		`{"error":""}`, // key present with empty value is still the marker
		"upstream returned server error",
		"500 Internal Error",
	}
	for _, body := range cases {
		assert.Equal(t, OtherError, Classify(body), "body: %s", body)
	}
}

func TestClassifyErrorAsDataIsSuccess(t *testing.T) {
	cases := []string{
		"no errors found in submission",
		`{"message":"rows with error_rate above 0.5 were dropped"}`,
		`{"title":"Understanding Error Bars"}`,
		"downloaded terror-attacks.csv",
		`{"description":"the word error appears here as data"}`,
		"",
		"{}",
		`{"result":{}}`,
	}
	for _, body := range cases {
		assert.Equal(t, Success, Classify(body), "body: %s", body)
	}
}

func TestClassifyAuthFailureWinsOverErrorMarkers(t *testing.T) {
	assert.Equal(t, AuthFailure, Classify(`Error: unauthenticated`))
	assert.Equal(t, AuthFailure, Classify(`{"error":"Unauthenticated."}`))
}
