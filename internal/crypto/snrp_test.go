// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSNRP_HashIsDeterministic(t *testing.T) {
	snrp := SNRP{Salt: []byte("a-fixed-salt"), N: 1024, R: 1, P: 1}

	a, err := snrp.Hash([]byte("secret"))
	require.NoError(t, err)
	b, err := snrp.Hash([]byte("secret"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 32)
}

func TestSNRP_HashDiffersByInput(t *testing.T) {
	snrp := SNRP{Salt: []byte("a-fixed-salt"), N: 1024, R: 1, P: 1}

	a, err := snrp.Hash([]byte("secret-one"))
	require.NoError(t, err)
	b, err := snrp.Hash([]byte("secret-two"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSNRP_JSONRoundTrip(t *testing.T) {
	original := SNRP{Salt: []byte{0x01, 0x02, 0x03, 0xff}, N: 16384, R: 1, P: 1}

	data, err := json.Marshal(original)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"salt_hex":"010203ff"`)

	var decoded SNRP
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, original, decoded)
}

func TestSNRP_UnmarshalJSON_RejectsNonPositiveParams(t *testing.T) {
	var s SNRP
	err := json.Unmarshal([]byte(`{"salt_hex":"aabb","N":0,"r":1,"p":1}`), &s)
	assert.Error(t, err)
}

func TestSNRP_UnmarshalJSON_RejectsEmptySalt(t *testing.T) {
	var s SNRP
	err := json.Unmarshal([]byte(`{"salt_hex":"","N":1024,"r":1,"p":1}`), &s)
	assert.Error(t, err)
}

func TestNewServerSNRP_FixedParams(t *testing.T) {
	salt := []byte("mainnet-salt-32-bytes-xxxxxxxxxx")
	snrp := NewServerSNRP(salt)
	assert.Equal(t, salt, snrp.Salt)
	assert.Equal(t, defaultScryptN, snrp.N)
	assert.Equal(t, defaultScryptR, snrp.R)
	assert.Equal(t, 1, snrp.P)
}

func TestNewClientSNRP_RandomSaltAndCalibratedParams(t *testing.T) {
	calibration := CalibratedParams{N: 32768, R: 2}

	a, err := NewClientSNRP(calibration)
	require.NoError(t, err)
	b, err := NewClientSNRP(calibration)
	require.NoError(t, err)

	assert.Len(t, a.Salt, snrpSaltSize)
	assert.NotEqual(t, a.Salt, b.Salt)
	assert.Equal(t, calibration.N, a.N)
	assert.Equal(t, calibration.R, a.R)
	assert.Equal(t, 1, a.P)
}

func TestCalibrate_ReturnsReferenceParamsWhenTargetMet(t *testing.T) {
	// A near-zero target should let the very first reference probe satisfy
	// it, leaving the reference parameters untouched.
	params, err := Calibrate(time.Nanosecond)
	require.NoError(t, err)
	assert.Equal(t, defaultScryptN, params.N)
	assert.Equal(t, defaultScryptR, params.R)
}

func TestCalibrate_ScalesTowardUnreachableTarget(t *testing.T) {
	// An unreachable target forces scaling all the way to the ceilings.
	params, err := Calibrate(24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, snrpMaxN, params.N)
	assert.Equal(t, snrpMaxR, params.R)
}
