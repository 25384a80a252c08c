// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package account

import "testing"

func TestSettingsDefaults(t *testing.T) {
	s := defaultSettings()
	if s.SecondsAutoLogout != 3600 {
		t.Fatalf("default SecondsAutoLogout = %d, want 3600", s.SecondsAutoLogout)
	}
	if s.DisablePINLogin {
		t.Fatalf("default DisablePINLogin = true, want false")
	}
}
