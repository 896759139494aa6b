// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package pair

import (
	"testing"

	"github.com/firefly/hollows/internal/attrlink"
)

func TestSecurityLabelSecureAndMITM(t *testing.T) {
	got := securityLabel(attrlink.PairingPolicy{RequireSecureConns: true, RequireMITM: true})
	if got != "Secure + MITM" {
		t.Fatalf("securityLabel = %q", got)
	}
}

func TestSecurityLabelUnauthenticated(t *testing.T) {
	got := securityLabel(attrlink.PairingPolicy{})
	if got != "Unauthenticated" {
		t.Fatalf("securityLabel = %q", got)
	}
}
